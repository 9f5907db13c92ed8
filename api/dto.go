/*
dto.go - Request and response types for the local API

PURPOSE:
  Decouples the wire contract consumed by the UI shell from the domain
  types. Money travels as JSON numbers (the UI's display convention);
  internally everything is decimal.

NAMING CONVENTION:
  - *DTO:     Response types
  - *Request: Request body types, carrying validator tags

VALIDATION:
  Struct tags only cover shape (required fields, non-negative amounts).
  Domain rules - stock sufficiency, password policy - stay in the domain
  packages.
*/
package api

import (
	"time"

	"github.com/Ahmed775c6/Stock/auth"
	"github.com/Ahmed775c6/Stock/ledger"
	"github.com/Ahmed775c6/Stock/report"
)

// =============================================================================
// PRODUCTS
// =============================================================================

// ProductDTO represents a product in API responses.
type ProductDTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	CostPrice float64 `json:"costPrice"`
	Brand     string  `json:"brand"`
	Material  string  `json:"material"`
	Image     string  `json:"image,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// ProductRequest is the body for creating or replacing a product.
type ProductRequest struct {
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int64   `json:"quantity" validate:"gte=0"`
	CostPrice float64 `json:"costPrice" validate:"gte=0"`
	Brand     string  `json:"brand"`
	Material  string  `json:"material"`
	Image     string  `json:"image"`
}

func productToDTO(p ledger.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		Quantity:  p.Quantity,
		CostPrice: p.CostPrice.InexactFloat64(),
		Brand:     p.Brand,
		Material:  p.Material,
		Image:     p.Image,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// SALES AND ORDERS
// =============================================================================

// SaleDTO represents a sale in API responses.
type SaleDTO struct {
	ID           int64   `json:"id"`
	ClientName   string  `json:"client_name"`
	Status       string  `json:"status"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image,omitempty"`
	Quantity     int64   `json:"quantity"`
	Price        float64 `json:"price"`
	TotalAmount  float64 `json:"total_amount"`
	Date         string  `json:"date"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// SaleRequest is the body for editing a sale. Price, image and total are
// derived server-side, never accepted from the client.
type SaleRequest struct {
	ClientName  string `json:"client_name" validate:"required"`
	Status      string `json:"status" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"gt=0"`
}

// OrderRequest is the body for placing a client order.
type OrderRequest struct {
	ClientName  string `json:"client_name" validate:"required"`
	Status      string `json:"status" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"gt=0"`
}

func saleToDTO(s ledger.Sale) SaleDTO {
	return SaleDTO{
		ID:           s.ID,
		ClientName:   s.ClientName,
		Status:       s.Status,
		ProductName:  s.ProductName,
		ProductImage: s.ProductImage,
		Quantity:     s.Quantity,
		Price:        s.Price.InexactFloat64(),
		TotalAmount:  s.TotalAmount.InexactFloat64(),
		Date:         s.Date,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// AUTH
// =============================================================================

// LoginRequest carries the admin credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionDTO is the issued bearer session.
type SessionDTO struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func sessionToDTO(s *auth.Session) SessionDTO {
	return SessionDTO{Token: s.Token, ExpiresAt: s.ExpiresAt.Format(time.RFC3339)}
}

// SessionStatusDTO reports whether a valid session exists.
type SessionStatusDTO struct {
	Valid bool `json:"valid"`
}

// ChangePasswordRequest carries the current and replacement passwords.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// =============================================================================
// REPORTS
// =============================================================================

// ExpenseDTO is one product line of an expense report.
type ExpenseDTO struct {
	ID          int64   `json:"id"`
	ProductName string  `json:"product_name"`
	CostPrice   float64 `json:"cost_price"`
	Quantity    int64   `json:"quantity"`
	TotalCost   float64 `json:"total_cost"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
}

// ExpenseReportDTO is a period-scoped expense aggregate.
type ExpenseReportDTO struct {
	Period    string       `json:"period"`
	Expenses  []ExpenseDTO `json:"expenses"`
	TotalCost float64      `json:"total_cost"`
}

func expenseReportToDTO(r *report.ExpenseReport) ExpenseReportDTO {
	dto := ExpenseReportDTO{
		Period:    r.Period,
		Expenses:  make([]ExpenseDTO, len(r.Expenses)),
		TotalCost: r.TotalCost.InexactFloat64(),
	}
	for i, e := range r.Expenses {
		dto.Expenses[i] = ExpenseDTO{
			ID:          e.ProductID,
			ProductName: e.ProductName,
			CostPrice:   e.CostPrice.InexactFloat64(),
			Quantity:    e.Quantity,
			TotalCost:   e.TotalCost.InexactFloat64(),
			Date:        e.Date.Format(time.RFC3339),
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
	}
	return dto
}

// ClientInvoiceReportDTO is a filtered invoice aggregate with the
// credit/paid split.
type ClientInvoiceReportDTO struct {
	ClientName  string    `json:"client_name"`
	Period      string    `json:"period"`
	Items       []SaleDTO `json:"items"`
	Total       float64   `json:"total"`
	CreditTotal float64   `json:"credit_total"`
	PaidTotal   float64   `json:"paid_total"`
}

func invoiceReportToDTO(r *report.ClientInvoiceReport) ClientInvoiceReportDTO {
	dto := ClientInvoiceReportDTO{
		ClientName:  r.ClientName,
		Period:      r.Period,
		Items:       make([]SaleDTO, len(r.Items)),
		Total:       r.Total.InexactFloat64(),
		CreditTotal: r.CreditTotal.InexactFloat64(),
		PaidTotal:   r.PaidTotal.InexactFloat64(),
	}
	for i, s := range r.Items {
		dto.Items[i] = saleToDTO(s)
	}
	return dto
}

// =============================================================================
// MISC
// =============================================================================

// ThemeDTO carries the UI theme preference.
type ThemeDTO struct {
	Theme string `json:"theme" validate:"required"`
}

// IDResponse returns the id of a newly created record.
type IDResponse struct {
	ID int64 `json:"id"`
}

// ErrorResponse is the uniform error payload. Detail carries internal
// failure text for diagnostics; Available/Requested are set only on
// insufficient-stock rejections.
type ErrorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	Available *int64 `json:"available,omitempty"`
	Requested *int64 `json:"requested,omitempty"`
}
