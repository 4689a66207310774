package handler

import (
	"context"
	"net/http"

	"github.com/eaglebank/poa-service/shared/cqrs"
	"github.com/eaglebank/poa-service/shared/middleware"
	"github.com/eaglebank/poa-service/shared/models"
	"github.com/gin-gonic/gin"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(context.Context, cqrs.CreateAccountCommand) (models.Account, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(context.Context, cqrs.GetAccountQuery) (models.Account, error)
	ListAccounts(context.Context, cqrs.ListAccountsQuery) ([]models.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

// CreateAccountRequest leaves the accountType value to the domain so an
// unknown type is reported the same way everywhere.
type CreateAccountRequest struct {
	AccountNumber     string   `json:"accountNumber" validate:"required,notblank"`
	AccountHolderName string   `json:"accountHolderName" validate:"required,notblank"`
	AccountType       string   `json:"accountType" validate:"required,notblank"`
	InitialBalance    *float64 `json:"initialBalance"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		AccountNumber:     req.AccountNumber,
		AccountHolderName: req.AccountHolderName,
		AccountType:       req.AccountType,
		InitialBalance:    req.InitialBalance,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, models.ToAccountView(account))
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.queries.ListAccounts(c.Request.Context(), cqrs.ListAccountsQuery{})
	if err != nil {
		respondWithDomainError(c, err, "Failed to list accounts")
		return
	}

	views := make([]models.AccountView, len(accounts))
	for i, a := range accounts {
		views[i] = models.ToAccountView(a)
	}
	c.JSON(http.StatusOK, views)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{
		AccountNumber: c.Param("accountNumber"),
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to get account")
		return
	}

	c.JSON(http.StatusOK, models.ToAccountView(account))
}
