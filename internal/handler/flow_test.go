package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eaglebank/poa-service/internal/command"
	"github.com/eaglebank/poa-service/internal/handler"
	"github.com/eaglebank/poa-service/internal/metrics"
	"github.com/eaglebank/poa-service/internal/query"
	"github.com/eaglebank/poa-service/internal/repository"
	"github.com/eaglebank/poa-service/shared/events"
	"github.com/eaglebank/poa-service/shared/models"
)

// newServer wires the real services over in-memory stores.
func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	accounts := repository.NewInMemoryAccountStore()
	grants := repository.NewInMemoryGrantStore()
	m := metrics.New(prometheus.NewRegistry())
	logger := zap.NewNop()

	r := gin.New()
	handler.RegisterRoutes(r,
		handler.NewAccountHandler(
			command.NewAccountCommandService(accounts, events.Discard{}, m, logger),
			query.NewAccountQueryService(accounts),
		),
		handler.NewGrantHandler(
			command.NewGrantCommandService(accounts, grants, events.Discard{}, m, logger),
			query.NewGrantQueryService(grants),
		),
	)
	return r
}

func send(t *testing.T, r *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAccountAndGrantFlow(t *testing.T) {
	r := newServer(t)
	johnDoe := map[string]any{
		"accountNumber":     "NL123456",
		"accountHolderName": "John Doe",
		"initialBalance":    1000.0,
		"accountType":       "PAYMENT",
	}

	w := send(t, r, http.MethodPost, "/api/v1/accounts", johnDoe)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var account models.AccountView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))
	assert.Equal(t, models.AccountView{
		AccountNumber: "NL123456", AccountHolderName: "John Doe", AccountType: "PAYMENT", Balance: "1000.0",
	}, account)

	w = send(t, r, http.MethodPost, "/api/v1/accounts", johnDoe)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Account already exists with number: NL123456")

	w = send(t, r, http.MethodGet, "/api/v1/accounts/NL123456", nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, grantee := range []string{"Frank Bank", "Pieter Post"} {
		w = send(t, r, http.MethodPost, "/api/v1/power-of-attorney", map[string]any{
			"grantorName":   "John Doe",
			"granteeName":   grantee,
			"accountNumber": "NL123456",
			"accountType":   "PAYMENT",
			"authorization": "READ",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = send(t, r, http.MethodGet, "/api/v1/power-of-attorney?granteeName=Frank%20Bank", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var grants []models.PowerOfAttorneyView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grants))
	require.Len(t, grants, 1)
	assert.Equal(t, "1000.0", grants[0].Account.Balance)
	assert.Equal(t, "John Doe", grants[0].GrantorName)

	w = send(t, r, http.MethodGet, "/api/v1/power-of-attorney", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grants))
	assert.Len(t, grants, 2)

	w = send(t, r, http.MethodGet, "/api/v1/power-of-attorney?granteeName=Nobody", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGrantAgainstMissingAccount(t *testing.T) {
	r := newServer(t)

	w := send(t, r, http.MethodPost, "/api/v1/power-of-attorney", map[string]any{
		"grantorName":   "John Doe",
		"granteeName":   "Frank Bank",
		"accountNumber": "NL000000",
		"accountType":   "PAYMENT",
		"authorization": "WRITE",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NL000000")

	w = send(t, r, http.MethodGet, "/api/v1/power-of-attorney", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGrantByNonHolderIsForbidden(t *testing.T) {
	r := newServer(t)
	w := send(t, r, http.MethodPost, "/api/v1/accounts", map[string]any{
		"accountNumber": "NL01TEST", "accountHolderName": "Alice", "accountType": "SAVINGS",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = send(t, r, http.MethodPost, "/api/v1/power-of-attorney", map[string]any{
		"grantorName":   "Peter",
		"granteeName":   "Bob",
		"accountNumber": "NL01TEST",
		"accountType":   "SAVINGS",
		"authorization": "READ",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "The grantor Peter is not the accountHolder for account NL01TEST")
}
