package handler

import (
	"errors"
	"net/http"

	"github.com/eaglebank/poa-service/shared/middleware"
	"github.com/eaglebank/poa-service/shared/models"
	"github.com/gin-gonic/gin"
)

// respondWithDomainError maps domain errors to their status codes. Anything
// else is a 500 with fallback as the message; the cause is attached to the
// context for the request log.
func respondWithDomainError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrInvalidVariant), errors.Is(err, models.ErrInvalidAuthorization):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrGrantNotAllowed):
		middleware.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrAccountNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateAccount):
		middleware.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		_ = c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
