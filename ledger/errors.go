/*
errors.go - Centralized error types for the inventory/sales domain

ERROR CATEGORIES:
  1. Lookup errors   - id/name misses (products, sales)
  2. Conflict errors - duplicate product names
  3. Stock errors    - order quantity exceeding available stock

USAGE:
  Callers match with errors.Is/errors.As:

    var stockErr *ledger.InsufficientStockError
    if errors.As(err, &stockErr) {
        // stockErr.Available, stockErr.Requested
    }

SEE ALSO:
  - orders.go: Returns InsufficientStockError
  - store/sqlite: Maps UNIQUE constraint failures to ErrDuplicateProductName
*/
package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when a product id or name lookup misses.
	ErrProductNotFound = errors.New("product not found")

	// ErrSaleNotFound is returned when a sale id lookup misses.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrDuplicateProductName is returned when inserting a product whose name
	// already exists. Product names are the catalog's natural key.
	ErrDuplicateProductName = errors.New("product name already exists")

	// ErrInsufficientStock is returned when an order requests more units than
	// are on hand. Match the concrete *InsufficientStockError for amounts.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError carries the available vs. requested quantities for
// display to the operator.
type InsufficientStockError struct {
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
