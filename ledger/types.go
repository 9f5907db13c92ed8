/*
Package ledger contains the inventory and sales domain: the product catalog,
the sales transaction log, and the order processor that mutates both.

KEY CONCEPTS IN THIS FILE (types.go):
  - Product: A catalog entry whose quantity is the CURRENT on-hand stock,
    decremented by every order and adjusted by sale edits/deletes
  - Sale: A point-in-time transaction snapshot (name, price, image copied
    from the product at sale time - NOT a live reference)
  - Order: A client request to purchase a quantity of a named product

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all money fields to avoid
     floating-point errors in totals and aggregates
  2. Snapshot semantics: Sale.ProductName is a historical label. Deleting
     or renaming a product orphans its sales on purpose; they keep the
     price and image that were true when the sale happened
  3. Invariants live in operations, not types: stock non-negativity is
     enforced by the OrderProcessor, total == price * quantity by every
     sale write path

SEE ALSO:
  - inventory.go: Product operations
  - sales.go: Sale operations and stock reconciliation
  - orders.go: Atomic order placement
  - store.go: Persistence interfaces
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusCredit marks a sale as unpaid/on-account. Every other status value
// counts as paid.
const StatusCredit = "Crédit"

// Product is a catalog entry. Quantity is current remaining stock, not the
// originally purchased amount; reporting reconstructs historical quantities
// from the sales log.
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	Quantity  int64
	CostPrice decimal.Decimal
	Brand     string
	Material  string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sale is a sales-log entry. ProductName, ProductImage and Price are
// denormalized snapshots taken when the sale was recorded.
type Sale struct {
	ID           int64
	ClientName   string
	Status       string
	ProductName  string
	ProductImage string
	Quantity     int64
	Price        decimal.Decimal
	TotalAmount  decimal.Decimal
	Date         string // user-supplied transaction date (YYYY-MM-DD)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsCredit reports whether the sale is marked unpaid.
func (s Sale) IsCredit() bool { return s.Status == StatusCredit }

// Order is a client purchase request, processed atomically by the
// OrderProcessor.
type Order struct {
	ClientName  string
	Status      string
	ProductName string
	Date        string
	Quantity    int64
}

// SaleUpdate carries the editable fields of a sale. Price, image and total
// are never supplied by the caller; they are re-derived from the referenced
// product and the quantity.
type SaleUpdate struct {
	ClientName  string
	Status      string
	ProductName string
	Date        string
	Quantity    int64
}
