/*
handlers.go - HTTP handlers for the local operation surface

PURPOSE:
  Exposes the ledgers, order processor, reporting engine and auth gate to
  the UI shell. Handles JSON (de)serialization, shape validation, and the
  error-to-status mapping; all domain logic stays in the domain packages.

REQUEST FLOW:
  1. Decode and validate the body / URL params
  2. Call the domain operation
  3. Serialize the response, or map the error

ERROR HANDLING:
  400: malformed body, failed validation, password policy
  401: bad credentials, missing/expired session
  404: product or sale not found
  409: duplicate product name, insufficient stock (with amounts)
  500: storage failures

SEE ALSO:
  - dto.go: Request/response shapes
  - server.go: Router and middleware stack
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Ahmed775c6/Stock/auth"
	"github.com/Ahmed775c6/Stock/ledger"
	"github.com/Ahmed775c6/Stock/report"
	"github.com/Ahmed775c6/Stock/theme"
)

// Handler holds all dependencies for the HTTP handlers.
type Handler struct {
	Inventory *ledger.InventoryLedger
	Sales     *ledger.SalesLedger
	Orders    *ledger.OrderProcessor
	Reports   *report.Engine
	Auth      *auth.Gate
	Theme     *theme.Store

	validate *validator.Validate
	log      zerolog.Logger
}

// NewHandler wires the handlers to their dependencies.
func NewHandler(inv *ledger.InventoryLedger, sales *ledger.SalesLedger, orders *ledger.OrderProcessor,
	reports *report.Engine, gate *auth.Gate, themes *theme.Store, log zerolog.Logger) *Handler {
	return &Handler{
		Inventory: inv,
		Sales:     sales,
		Orders:    orders,
		Reports:   reports,
		Auth:      gate,
		Theme:     themes,
		validate:  validator.New(),
		log:       log,
	}
}

// =============================================================================
// AUTH
// =============================================================================

// Login verifies credentials and issues a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.Auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToDTO(session))
}

// CheckSession reports whether a valid session is persisted.
func (h *Handler) CheckSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SessionStatusDTO{Valid: h.Auth.CheckSession()})
}

// Logout invalidates the persisted session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to log out", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword re-verifies and replaces the administrator password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.Auth.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PRODUCTS
// =============================================================================

// ListProducts returns the whole catalog, newest first.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Inventory.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list products", err)
		return
	}
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = productToDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateProduct adds a product to the catalog.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	id, err := h.Inventory.Add(r.Context(), productFromRequest(req))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

// GetProduct returns one product by id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	product, err := h.Inventory.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productToDTO(*product))
}

// UpdateProduct replaces a product's mutable fields.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req ProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.Inventory.Update(r.Context(), id, productFromRequest(req)); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct removes a product; historical sales keep their snapshots.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.Inventory.Delete(r.Context(), id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func productFromRequest(req ProductRequest) ledger.Product {
	return ledger.Product{
		Name:      req.Name,
		Price:     decimal.NewFromFloat(req.Price),
		Quantity:  req.Quantity,
		CostPrice: decimal.NewFromFloat(req.CostPrice),
		Brand:     req.Brand,
		Material:  req.Material,
		Image:     req.Image,
	}
}

// =============================================================================
// SALES AND ORDERS
// =============================================================================

// ListSales returns the sales log, newest first.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Sales.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sales", err)
		return
	}
	dtos := make([]SaleDTO, len(sales))
	for i, s := range sales {
		dtos[i] = saleToDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSale returns one sale by id.
func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	sale, err := h.Sales.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saleToDTO(*sale))
}

// UpdateSale edits a sale and reconciles product stock.
func (h *Handler) UpdateSale(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req SaleRequest
	if !h.decode(w, r, &req) {
		return
	}

	upd := ledger.SaleUpdate{
		ClientName:  req.ClientName,
		Status:      req.Status,
		ProductName: req.ProductName,
		Date:        req.Date,
		Quantity:    req.Quantity,
	}
	if err := h.Sales.Update(r.Context(), id, upd); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSale removes a sale and returns its quantity to stock.
func (h *Handler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.Sales.Delete(r.Context(), id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PlaceOrder atomically records a client order against the inventory.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	order := ledger.Order{
		ClientName:  req.ClientName,
		Status:      req.Status,
		ProductName: req.ProductName,
		Date:        req.Date,
		Quantity:    req.Quantity,
	}
	id, err := h.Orders.Place(r.Context(), order)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, IDResponse{ID: id})
}

// =============================================================================
// REPORTS
// =============================================================================

// Expenses serves the period-scoped expense aggregate. The period comes
// from query parameters: date=YYYY-MM-DD, or year (optionally with month).
func (h *Handler) Expenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var period report.Period
	switch {
	case q.Get("date") != "":
		period = report.Day(q.Get("date"))
	case q.Get("year") != "":
		year, err := strconv.Atoi(q.Get("year"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		if m := q.Get("month"); m != "" {
			month, err := strconv.Atoi(m)
			if err != nil || month < 1 || month > 12 {
				writeError(w, http.StatusBadRequest, "Invalid month", err)
				return
			}
			period = report.Month(year, time.Month(month))
		} else {
			period = report.Year(year)
		}
	default:
		writeError(w, http.StatusBadRequest, "A date or year parameter is required", nil)
		return
	}

	rep, err := h.Reports.Expenses(r.Context(), period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute expenses", err)
		return
	}
	writeJSON(w, http.StatusOK, expenseReportToDTO(rep))
}

// Invoices serves the client-invoice aggregate, filtered by any
// combination of client, year, month and date query parameters.
func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var year, month int
	var err error
	if y := q.Get("year"); y != "" {
		if year, err = strconv.Atoi(y); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
	}
	if m := q.Get("month"); m != "" {
		if month, err = strconv.Atoi(m); err != nil || month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "Invalid month", err)
			return
		}
	}

	var rep *report.ClientInvoiceReport
	switch {
	case q.Get("client") != "":
		rep, err = h.Reports.InvoicesByClient(r.Context(), q.Get("client"), report.ClientFilter{
			Year:  year,
			Month: time.Month(month),
			Date:  q.Get("date"),
		})
	case year > 0 && month > 0:
		rep, err = h.Reports.InvoicesByMonth(r.Context(), year, time.Month(month))
	case year > 0:
		rep, err = h.Reports.InvoicesByYear(r.Context(), year)
	default:
		writeError(w, http.StatusBadRequest, "A client or year parameter is required", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute invoices", err)
		return
	}
	writeJSON(w, http.StatusOK, invoiceReportToDTO(rep))
}

// MetricsSummary serves the dashboard cards.
func (h *Handler) MetricsSummary(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.Reports.MetricsSummary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute metrics", err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// =============================================================================
// THEME
// =============================================================================

// GetTheme returns the persisted UI theme preference.
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ThemeDTO{Theme: h.Theme.Theme()})
}

// SetTheme persists the UI theme preference.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeDTO
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.Theme.SetTheme(req.Theme); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save theme", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// decode parses and validates a JSON body, writing a 400 itself on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

func urlID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}

// writeDomainError maps domain errors onto HTTP statuses, keeping the raw
// error text in the detail field for diagnostics.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var stockErr *ledger.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:     "Insufficient stock",
			Detail:    stockErr.Error(),
			Available: &stockErr.Available,
			Requested: &stockErr.Requested,
		})
	case errors.Is(err, ledger.ErrProductNotFound), errors.Is(err, ledger.ErrSaleNotFound):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.Is(err, ledger.ErrDuplicateProductName):
		writeError(w, http.StatusConflict, "A product with this name already exists", err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username or password", nil)
	case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordMismatch):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		h.log.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}
