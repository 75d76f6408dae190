package webapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofiber/fiber/v2"

	"github.com/mhgaber/branchbank/internal/fixtures/memory"
	"github.com/mhgaber/branchbank/pkg/config"
	"github.com/mhgaber/branchbank/pkg/domain"
	"github.com/mhgaber/branchbank/pkg/service/audit"
	"github.com/mhgaber/branchbank/pkg/service/auth"
	"github.com/mhgaber/branchbank/pkg/service/customer"
	"github.com/mhgaber/branchbank/pkg/service/ledger"
	"github.com/mhgaber/branchbank/webapi"
)

func newTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtCfg := config.Jwt{Secret: "test-secret", Expiry: time.Hour}

	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	store.SeedEmployee(domain.Employee{
		ID: 7, FullName: "teller-7", Role: "Teller", PasswordHash: hash,
	})

	app := webapi.NewApp(webapi.Deps{
		Ledger:    ledger.New(store, logger),
		Customers: customer.New(store, logger),
		Audit:     audit.New(store),
		Auth:      auth.New(store, jwtCfg, logger),
		Jwt:       jwtCfg,
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/login", "", fiber.Map{
		"employee_id": 7,
		"password":    "hunter2",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var data struct {
		Token string `json:"token"`
	}
	decodeData(t, resp, &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

func seedAccount(store *memory.Store, id int64, balance string) int64 {
	return store.SeedAccount(domain.Account{
		ID:      id,
		Balance: decimal.RequireFromString(balance),
		Status:  domain.AccountActive,
	})
}

func TestTransfer_RequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)
	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/transfers", "", fiber.Map{
		"from_account_id": 1, "to_account_id": 2, "amount": "10.00",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := newTestApp(t)
	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/login", "", fiber.Map{
		"employee_id": 7, "password": "nope",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTransfer_Success(t *testing.T) {
	app, store := newTestApp(t)
	a := seedAccount(store, 1, "500.00")
	b := seedAccount(store, 2, "200.00")
	token := login(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/transfers", token, fiber.Map{
		"from_account_id": a, "to_account_id": b, "amount": "150.00",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var data struct {
		TransactionID int64 `json:"transaction_id"`
	}
	decodeData(t, resp, &data)
	assert.NotZero(t, data.TransactionID)

	from, _ := store.Account(a)
	to, _ := store.Account(b)
	assert.True(t, from.Balance.Equal(decimal.RequireFromString("350.00")))
	assert.True(t, to.Balance.Equal(decimal.RequireFromString("350.00")))

	// The audit row must name the logged-in employee.
	audits := store.AuditLogs()
	require.Len(t, audits, 1)
	assert.Equal(t, "teller-7", audits[0].PerformedBy)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	app, store := newTestApp(t)
	a := seedAccount(store, 1, "10.00")
	b := seedAccount(store, 2, "0.00")
	token := login(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/transfers", token, fiber.Map{
		"from_account_id": a, "to_account_id": b, "amount": "150.00",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestTransfer_UnknownAccount(t *testing.T) {
	app, store := newTestApp(t)
	a := seedAccount(store, 1, "100.00")
	token := login(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/transfers", token, fiber.Map{
		"from_account_id": a, "to_account_id": 99, "amount": "10.00",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStatement_NewestFirst(t *testing.T) {
	app, store := newTestApp(t)
	vault := seedAccount(store, 10, "1000.00")
	account := seedAccount(store, 1, "0.00")
	token := login(t, app)

	for _, body := range []fiber.Map{
		{"from_account_id": vault, "to_account_id": account, "amount": "100.00"},
		{"from_account_id": account, "to_account_id": vault, "amount": "30.00"},
	} {
		resp := doJSON(t, app, fiber.MethodPost, "/api/v1/transfers", token, body)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/accounts/%d/statement", account), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var lines []domain.StatementLine
	decodeData(t, resp, &lines)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].RunningBalance.Equal(decimal.RequireFromString("70.00")))
	assert.True(t, lines[1].RunningBalance.Equal(decimal.RequireFromString("100.00")))
}

func TestStatement_EmptyAccount(t *testing.T) {
	app, store := newTestApp(t)
	account := seedAccount(store, 1, "0.00")
	token := login(t, app)

	resp := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/accounts/%d/statement", account), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCustomerLifecycle(t *testing.T) {
	app, store := newTestApp(t)
	token := login(t, app)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/customers", token, fiber.Map{
		"full_name": "Omar Farid",
		"email":     "omar@example.com",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		CustomerID int64 `json:"customer_id"`
	}
	decodeData(t, resp, &created)
	require.NotZero(t, created.CustomerID)

	resp = doJSON(t, app, fiber.MethodDelete,
		fmt.Sprintf("/api/v1/customers/%d", created.CustomerID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, exists := store.Customer(created.CustomerID)
	assert.False(t, exists)
}
