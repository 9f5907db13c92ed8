/*
inventory.go - Product catalog operations

OPERATIONS:
  Add     Insert a new product (fails on duplicate name)
  List    All products, newest first
  Get     One product by id
  Update  Full replace of mutable fields, refreshes updated_at
  Delete  Hard delete, no referential check against sales

Update does not validate quantity non-negativity; direct edits are trusted.
The OrderProcessor is the only path that enforces the stock invariant.
*/
package ledger

import (
	"context"
	"fmt"
)

// InventoryLedger owns the product catalog.
type InventoryLedger struct {
	store TxStore
}

// NewInventoryLedger creates an inventory ledger over the given store.
func NewInventoryLedger(store TxStore) *InventoryLedger {
	return &InventoryLedger{store: store}
}

// Add inserts a product and returns its id. Timestamps are set by the store.
// Returns ErrDuplicateProductName if the name is taken.
func (l *InventoryLedger) Add(ctx context.Context, p Product) (int64, error) {
	id, err := l.store.InsertProduct(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("add product %q: %w", p.Name, err)
	}
	return id, nil
}

// List returns all products ordered by creation time, newest first.
func (l *InventoryLedger) List(ctx context.Context) ([]Product, error) {
	return l.store.ListProducts(ctx)
}

// Get returns one product or ErrProductNotFound.
func (l *InventoryLedger) Get(ctx context.Context, id int64) (*Product, error) {
	p, err := l.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	return p, nil
}

// Update replaces the product's mutable fields and refreshes updated_at.
func (l *InventoryLedger) Update(ctx context.Context, id int64, p Product) error {
	existing, err := l.store.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	if err := l.store.UpdateProduct(ctx, id, p); err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	return nil
}

// Delete removes the product. Historical sales keep their denormalized
// snapshot and become orphaned-but-valid records.
func (l *InventoryLedger) Delete(ctx context.Context, id int64) error {
	if err := l.store.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}
