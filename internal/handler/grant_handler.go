package handler

import (
	"context"
	"net/http"

	"github.com/eaglebank/poa-service/shared/cqrs"
	"github.com/eaglebank/poa-service/shared/middleware"
	"github.com/eaglebank/poa-service/shared/models"
	"github.com/gin-gonic/gin"
)

type GrantCommander interface {
	GrantAccess(context.Context, cqrs.GrantAccessCommand) (models.PowerOfAttorney, error)
}

type GrantQuerier interface {
	FindGrants(context.Context, cqrs.FindGrantsQuery) ([]models.PowerOfAttorney, error)
	ListGrants(context.Context, cqrs.ListGrantsQuery) ([]models.PowerOfAttorney, error)
}

// GrantHandler handles power of attorney HTTP requests.
type GrantHandler struct {
	commands GrantCommander
	queries  GrantQuerier
}

type GrantAccessRequest struct {
	GrantorName   string `json:"grantorName" validate:"required,notblank"`
	GranteeName   string `json:"granteeName" validate:"required,notblank"`
	AccountNumber string `json:"accountNumber" validate:"required,notblank"`
	AccountType   string `json:"accountType" validate:"required,notblank"`
	Authorization string `json:"authorization" validate:"required,notblank"`
}

func NewGrantHandler(commands GrantCommander, queries GrantQuerier) *GrantHandler {
	return &GrantHandler{commands: commands, queries: queries}
}

func (h *GrantHandler) GrantAccess(c *gin.Context) {
	var req GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	grant, err := h.commands.GrantAccess(c.Request.Context(), cqrs.GrantAccessCommand{
		GrantorName:   req.GrantorName,
		GranteeName:   req.GranteeName,
		AccountNumber: req.AccountNumber,
		AccountType:   req.AccountType,
		Authorization: req.Authorization,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to grant access")
		return
	}

	c.JSON(http.StatusCreated, models.ToPowerOfAttorneyView(grant))
}

// ListGrants filters by the granteeName query parameter when present and
// returns every grant otherwise.
func (h *GrantHandler) ListGrants(c *gin.Context) {
	var (
		grants []models.PowerOfAttorney
		err    error
	)
	if grantee, ok := c.GetQuery("granteeName"); ok {
		grants, err = h.queries.FindGrants(c.Request.Context(), cqrs.FindGrantsQuery{GranteeName: grantee})
	} else {
		grants, err = h.queries.ListGrants(c.Request.Context(), cqrs.ListGrantsQuery{})
	}
	if err != nil {
		respondWithDomainError(c, err, "Failed to list grants")
		return
	}

	views := make([]models.PowerOfAttorneyView, len(grants))
	for i, g := range grants {
		views[i] = models.ToPowerOfAttorneyView(g)
	}
	c.JSON(http.StatusOK, views)
}
