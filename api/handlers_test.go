package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed775c6/Stock/api"
	"github.com/Ahmed775c6/Stock/auth"
	"github.com/Ahmed775c6/Stock/ledger"
	"github.com/Ahmed775c6/Stock/report"
	"github.com/Ahmed775c6/Stock/store/sqlite"
	"github.com/Ahmed775c6/Stock/theme"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type testServer struct {
	*httptest.Server
	gate *auth.Gate
}

func newTestServer(t *testing.T) *testServer {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	dir := t.TempDir()
	gate := auth.NewGate(store, filepath.Join(dir, "session.json"), zerolog.Nop())
	_, _, err = gate.EnsureAdmin(context.Background(), "admin", "test-password")
	require.NoError(t, err)

	handler := api.NewHandler(
		ledger.NewInventoryLedger(store),
		ledger.NewSalesLedger(store),
		ledger.NewOrderProcessor(store),
		report.NewEngine(store, "fr"),
		gate,
		theme.NewStore(filepath.Join(dir, "config.json")),
		zerolog.Nop(),
	)

	server := httptest.NewServer(api.NewRouter(handler, []string{"http://localhost:1420"}))
	t.Cleanup(server.Close)
	return &testServer{Server: server, gate: gate}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *http.Response {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func timeNowYear() int { return time.Now().Year() }

func chairBody() map[string]any {
	return map[string]any{
		"name":      "Chair",
		"price":     50.0,
		"quantity":  10,
		"costPrice": 20.0,
		"brand":     "Acme",
		"material":  "wood",
	}
}

func createChair(t *testing.T, ts *testServer) int64 {
	resp := ts.do(t, http.MethodPost, "/api/products", chairBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &created)
	return created.ID
}

// =============================================================================
// PRODUCTS
// =============================================================================

func TestProducts_CreateAndGet(t *testing.T) {
	ts := newTestServer(t)
	id := createChair(t, ts)

	resp := ts.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var product map[string]any
	decodeBody(t, resp, &product)
	assert.Equal(t, "Chair", product["name"])
	assert.Equal(t, 50.0, product["price"])
	assert.Equal(t, 20.0, product["costPrice"])
	assert.NotEmpty(t, product["created_at"])
}

func TestProducts_CreateDuplicateName_Conflict(t *testing.T) {
	ts := newTestServer(t)
	createChair(t, ts)

	resp := ts.do(t, http.MethodPost, "/api/products", chairBody())
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestProducts_ValidationFailure_BadRequest(t *testing.T) {
	ts := newTestServer(t)

	// Missing the required name, negative price
	resp := ts.do(t, http.MethodPost, "/api/products", map[string]any{
		"price":    -1.0,
		"quantity": 5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProducts_GetUnknown_NotFound(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/products/42", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProducts_UpdateAndDelete(t *testing.T) {
	ts := newTestServer(t)
	id := createChair(t, ts)

	body := chairBody()
	body["name"] = "Armchair"
	body["quantity"] = 8
	resp := ts.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", id), body)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// ORDERS AND SALES
// =============================================================================

func orderBody(qty int64) map[string]any {
	return map[string]any{
		"client_name":  "Sami",
		"status":       "Payé",
		"product_name": "Chair",
		"date":         "2025-03-10",
		"quantity":     qty,
	}
}

func TestOrders_Place_CreatesSaleAndDecrementsStock(t *testing.T) {
	ts := newTestServer(t)
	productID := createChair(t, ts)

	resp := ts.do(t, http.MethodPost, "/api/orders", orderBody(3))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/sales", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sales []map[string]any
	decodeBody(t, resp, &sales)
	require.Len(t, sales, 1)
	assert.Equal(t, "Sami", sales[0]["client_name"])
	assert.Equal(t, 150.0, sales[0]["total_amount"])

	resp = ts.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), nil)
	var product map[string]any
	decodeBody(t, resp, &product)
	assert.Equal(t, 7.0, product["quantity"])
}

func TestOrders_InsufficientStock_ConflictWithAmounts(t *testing.T) {
	ts := newTestServer(t)
	createChair(t, ts)

	resp := ts.do(t, http.MethodPost, "/api/orders", orderBody(11))
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Error     string `json:"error"`
		Available *int64 `json:"available"`
		Requested *int64 `json:"requested"`
	}
	decodeBody(t, resp, &body)
	require.NotNil(t, body.Available)
	require.NotNil(t, body.Requested)
	assert.Equal(t, int64(10), *body.Available)
	assert.Equal(t, int64(11), *body.Requested)
}

func TestOrders_UnknownProduct_NotFound(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/orders", orderBody(1))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSales_UpdateAndDelete_ReconcileStock(t *testing.T) {
	ts := newTestServer(t)
	productID := createChair(t, ts)

	resp := ts.do(t, http.MethodPost, "/api/orders", orderBody(3))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &created)

	// Edit quantity 3 -> 1: stock 7 -> 9
	resp = ts.do(t, http.MethodPut, fmt.Sprintf("/api/sales/%d", created.ID), orderBody(1))
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), nil)
	var product map[string]any
	decodeBody(t, resp, &product)
	assert.Equal(t, 9.0, product["quantity"])

	// Delete: stock 9 -> 10
	resp = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/sales/%d", created.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), nil)
	decodeBody(t, resp, &product)
	assert.Equal(t, 10.0, product["quantity"])
}

// =============================================================================
// AUTH
// =============================================================================

func TestAuth_LoginLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "admin",
		"password": "test-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session map[string]any
	decodeBody(t, resp, &session)
	assert.NotEmpty(t, session["token"])
	assert.NotEmpty(t, session["expires_at"])

	resp = ts.do(t, http.MethodGet, "/api/auth/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status struct {
		Valid bool `json:"valid"`
	}
	decodeBody(t, resp, &status)
	assert.True(t, status.Valid)

	resp = ts.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/auth/session", nil)
	decodeBody(t, resp, &status)
	assert.False(t, status.Valid)
}

func TestAuth_ChangePassword_RequiresSession(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"current_password": "test-password",
		"new_password":     "longer-password",
	}

	resp := ts.do(t, http.MethodPost, "/api/auth/password", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "guarded without a session")

	login := ts.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "admin",
		"password": "test-password",
	})
	require.Equal(t, http.StatusOK, login.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/auth/password", body)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAuth_ChangePassword_TooShort(t *testing.T) {
	ts := newTestServer(t)

	login := ts.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "admin",
		"password": "test-password",
	})
	require.Equal(t, http.StatusOK, login.StatusCode)

	resp := ts.do(t, http.MethodPost, "/api/auth/password", map[string]any{
		"current_password": "test-password",
		"new_password":     "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// REPORTS AND THEME
// =============================================================================

func TestReports_Expenses(t *testing.T) {
	ts := newTestServer(t)
	createChair(t, ts)

	year := fmt.Sprintf("%d", timeNowYear())
	resp := ts.do(t, http.MethodGet, "/api/reports/expenses?year="+year, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep struct {
		Period    string  `json:"period"`
		TotalCost float64 `json:"total_cost"`
	}
	decodeBody(t, resp, &rep)
	assert.Equal(t, year, rep.Period)
	assert.Equal(t, 200.0, rep.TotalCost, "10 units at cost 20")

	resp = ts.do(t, http.MethodGet, "/api/reports/expenses", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "a period is required")
}

func TestReports_Invoices(t *testing.T) {
	ts := newTestServer(t)
	createChair(t, ts)
	resp := ts.do(t, http.MethodPost, "/api/orders", orderBody(3))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/reports/invoices?client=Sami", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rep struct {
		ClientName string  `json:"client_name"`
		Total      float64 `json:"total"`
		PaidTotal  float64 `json:"paid_total"`
	}
	decodeBody(t, resp, &rep)
	assert.Equal(t, "Sami", rep.ClientName)
	assert.Equal(t, 150.0, rep.Total)
	assert.Equal(t, 150.0, rep.PaidTotal)

	resp = ts.do(t, http.MethodGet, "/api/reports/invoices?year=2025&month=3", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/reports/invoices", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetrics_Summary(t *testing.T) {
	ts := newTestServer(t)
	createChair(t, ts)

	resp := ts.do(t, http.MethodGet, "/api/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var metrics []struct {
		Title string `json:"title"`
		Value string `json:"value"`
	}
	decodeBody(t, resp, &metrics)
	require.Len(t, metrics, 4)
	assert.Equal(t, "Gains Total", metrics[0].Title)
	assert.Equal(t, "Produits Total", metrics[1].Title)
	assert.Equal(t, "1", metrics[1].Value)
}

func TestTheme_GetAndSet(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/theme", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Theme string `json:"theme"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "system", body.Theme)

	resp = ts.do(t, http.MethodPut, "/api/theme", map[string]any{"theme": "dark"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/theme", nil)
	decodeBody(t, resp, &body)
	assert.Equal(t, "dark", body.Theme)
}
