/*
store.go - Persistence interfaces for the inventory and sales ledgers

PURPOSE:
  Defines what the domain needs from storage. The SQLite implementation
  lives in store/sqlite; tests and operations only ever see these
  interfaces.

TRANSACTION MODEL:
  TxStore.WithTx runs a function against a Store whose writes all commit
  or all roll back. Multi-step mutations (order placement, sale edits,
  sale deletes) MUST go through WithTx so a crash mid-sequence can never
  leave stock and sales disagreeing.

SEE ALSO:
  - store/sqlite/sqlite.go: The implementation
*/
package ledger

import "context"

// Store is the row-level access the ledgers are built on.
//
// Lookup methods return (nil, nil) on a miss; the operations in this package
// translate that into ErrProductNotFound / ErrSaleNotFound.
type Store interface {
	// Products
	InsertProduct(ctx context.Context, p Product) (int64, error)
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	GetProductByName(ctx context.Context, name string) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, p Product) error
	DeleteProduct(ctx context.Context, id int64) error

	// AdjustProductQuantity adds delta (which may be negative) to the named
	// product's stock. Adjusting a name with no matching product is a no-op:
	// sales referencing deleted products stay deletable.
	AdjustProductQuantity(ctx context.Context, name string, delta int64) error

	// Sales
	InsertSale(ctx context.Context, s Sale) (int64, error)
	ListSales(ctx context.Context) ([]Sale, error)
	GetSale(ctx context.Context, id int64) (*Sale, error)
	UpdateSale(ctx context.Context, s Sale) error
	DeleteSale(ctx context.Context, id int64) error
}

// TxStore is a Store that can open an atomic scope.
type TxStore interface {
	Store

	// WithTx executes fn against a transactional Store. If fn returns an
	// error the transaction rolls back and the error is returned unchanged.
	WithTx(ctx context.Context, fn func(Store) error) error
}
