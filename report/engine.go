/*
engine.go - Expense and client-invoice aggregates

PURPOSE:
  Loads the two ledgers wholesale and folds them into report structures.
  All filtering and arithmetic happens here in Go; the store contributes
  nothing but rows.

ATTRIBUTION RULES:
  - Expenses attribute sales to periods by the sale's system creation
    time (when the stock actually moved).
  - Invoices attribute sales by the user-supplied transaction date.
  - For a client filter, the optional month matches the month component
    of the date independently of the year.

SEE ALSO:
  - reconstruct.go: The quantity reconstruction the expense side rests on
  - metrics.go: The dashboard summary
*/
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ahmed775c6/Stock/ledger"
)

// Reader is the read-only ledger access the engine needs.
type Reader interface {
	ListProducts(ctx context.Context) ([]ledger.Product, error)
	ListSales(ctx context.Context) ([]ledger.Sale, error)
}

// Engine computes reporting aggregates.
type Engine struct {
	store Reader
	lang  string
}

// NewEngine creates a reporting engine. lang selects the month-name table
// used in period labels.
func NewEngine(store Reader, lang string) *Engine {
	return &Engine{store: store, lang: lang}
}

// =============================================================================
// EXPENSES
// =============================================================================

// Expense is one product's cost contribution to a period.
type Expense struct {
	ProductID   int64
	ProductName string
	CostPrice   decimal.Decimal
	Quantity    int64
	TotalCost   decimal.Decimal
	Date        time.Time // product creation time, shown as the line date
	CreatedAt   time.Time
}

// ExpenseReport is the period-scoped expense aggregate.
type ExpenseReport struct {
	Period    string
	Expenses  []Expense
	TotalCost decimal.Decimal
}

// Expenses reconstructs per-product purchased quantities for the period and
// prices them at cost. Only products with a positive reconstructed quantity
// appear, newest created first.
func (e *Engine) Expenses(ctx context.Context, p Period) (*ExpenseReport, error) {
	products, err := e.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := e.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	salesByProduct := make(map[string][]ledger.Sale)
	for _, s := range sales {
		salesByProduct[s.ProductName] = append(salesByProduct[s.ProductName], s)
	}

	report := &ExpenseReport{
		Period:    p.Label(e.lang),
		TotalCost: decimal.Zero,
	}
	for _, product := range products {
		qty := ReconstructedQuantity(product.CreatedAt, product.Quantity, salesByProduct[product.Name], p)
		if qty <= 0 {
			continue
		}
		total := product.CostPrice.Mul(decimal.NewFromInt(qty))
		report.Expenses = append(report.Expenses, Expense{
			ProductID:   product.ID,
			ProductName: product.Name,
			CostPrice:   product.CostPrice,
			Quantity:    qty,
			TotalCost:   total,
			Date:        product.CreatedAt,
			CreatedAt:   product.CreatedAt,
		})
		report.TotalCost = report.TotalCost.Add(total)
	}
	return report, nil
}

// =============================================================================
// CLIENT INVOICES
// =============================================================================

// ClientInvoiceReport aggregates matching sales into a grand total and the
// credit/paid split. Total always equals CreditTotal + PaidTotal.
type ClientInvoiceReport struct {
	ClientName  string
	Period      string
	Items       []ledger.Sale
	Total       decimal.Decimal
	CreditTotal decimal.Decimal
	PaidTotal   decimal.Decimal
}

// ClientFilter narrows a client invoice query. Zero values mean "no filter".
// Month matches the month component of the transaction date independently
// of Year.
type ClientFilter struct {
	Year  int
	Month time.Month
	Date  string
}

// InvoicesByYear aggregates all sales whose transaction date falls in the
// given year. The client name is resolved from the first matching row.
func (e *Engine) InvoicesByYear(ctx context.Context, year int) (*ClientInvoiceReport, error) {
	return e.invoices(ctx, fmt.Sprintf("%04d", year), "", func(s ledger.Sale) bool {
		d, ok := saleDate(s)
		return ok && d.Year() == year
	})
}

// InvoicesByMonth aggregates all sales whose transaction date falls in the
// given month of the given year.
func (e *Engine) InvoicesByMonth(ctx context.Context, year int, month time.Month) (*ClientInvoiceReport, error) {
	return e.invoices(ctx, fmt.Sprintf("%04d-%02d", year, int(month)), "", func(s ledger.Sale) bool {
		d, ok := saleDate(s)
		return ok && d.Year() == year && d.Month() == month
	})
}

// InvoicesByClient aggregates a single client's sales, optionally narrowed
// by year, month and/or exact date.
func (e *Engine) InvoicesByClient(ctx context.Context, client string, f ClientFilter) (*ClientInvoiceReport, error) {
	period := "all"
	switch {
	case f.Year > 0 && f.Month > 0:
		period = fmt.Sprintf("%04d-%02d", f.Year, int(f.Month))
	case f.Year > 0:
		period = fmt.Sprintf("%04d", f.Year)
	case f.Date != "":
		period = f.Date
	}

	return e.invoices(ctx, period, client, func(s ledger.Sale) bool {
		if s.ClientName != client {
			return false
		}
		if f.Year > 0 || f.Month > 0 {
			d, ok := saleDate(s)
			if !ok {
				return false
			}
			if f.Year > 0 && d.Year() != f.Year {
				return false
			}
			if f.Month > 0 && d.Month() != f.Month {
				return false
			}
		}
		if f.Date != "" && s.Date != f.Date {
			return false
		}
		return true
	})
}

func (e *Engine) invoices(ctx context.Context, period, client string, match func(ledger.Sale) bool) (*ClientInvoiceReport, error) {
	sales, err := e.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	report := &ClientInvoiceReport{
		ClientName:  client,
		Period:      period,
		Total:       decimal.Zero,
		CreditTotal: decimal.Zero,
		PaidTotal:   decimal.Zero,
	}
	for _, s := range sales {
		if !match(s) {
			continue
		}
		if report.ClientName == "" {
			report.ClientName = s.ClientName
		}
		report.Items = append(report.Items, s)
		report.Total = report.Total.Add(s.TotalAmount)
		if s.IsCredit() {
			report.CreditTotal = report.CreditTotal.Add(s.TotalAmount)
		} else {
			report.PaidTotal = report.PaidTotal.Add(s.TotalAmount)
		}
	}
	return report, nil
}

// saleDate parses the user-supplied transaction date. Dates that don't
// parse are excluded from year/month filters, matching how a malformed
// date falls out of a strftime comparison.
func saleDate(s ledger.Sale) (time.Time, bool) {
	d, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
