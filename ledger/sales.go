/*
sales.go - Sales log operations and stock reconciliation

PURPOSE:
  Sales are append-mostly: recorded by the OrderProcessor, occasionally
  edited or deleted by the operator. Edits and deletes must keep product
  stock consistent with what the log says happened, so both run as a
  single read-modify-write sequence inside one transaction.

RECONCILIATION RULES:
  Update, product unchanged: stock += (old quantity - new quantity)
  Update, product changed:   old product stock += old quantity
                             new product stock -= new quantity
                             price/image re-derived from the new product
  Delete:                    stock += deleted quantity

  Every write recomputes total = price * quantity.
*/
package ledger

import (
	"context"
	"fmt"
)

// SalesLedger owns the sales transaction log.
type SalesLedger struct {
	store TxStore
}

// NewSalesLedger creates a sales ledger over the given store.
func NewSalesLedger(store TxStore) *SalesLedger {
	return &SalesLedger{store: store}
}

// List returns all sales ordered by creation time, newest first.
func (l *SalesLedger) List(ctx context.Context) ([]Sale, error) {
	return l.store.ListSales(ctx)
}

// Get returns one sale or ErrSaleNotFound.
func (l *SalesLedger) Get(ctx context.Context, id int64) (*Sale, error) {
	s, err := l.store.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("sale %d: %w", id, ErrSaleNotFound)
	}
	return s, nil
}

// Update edits a sale and reconciles product stock by the quantity delta.
// When the product name changes, the new product's current price and image
// are snapshotted (ErrProductNotFound if it doesn't exist) and the full old
// quantity moves back to the old product. The sale write and the stock
// adjustments commit together or not at all.
func (l *SalesLedger) Update(ctx context.Context, id int64, upd SaleUpdate) error {
	return l.store.WithTx(ctx, func(tx Store) error {
		original, err := tx.GetSale(ctx, id)
		if err != nil {
			return err
		}
		if original == nil {
			return fmt.Errorf("sale %d: %w", id, ErrSaleNotFound)
		}

		price := original.Price
		image := original.ProductImage
		productChanged := original.ProductName != upd.ProductName
		if productChanged {
			product, err := tx.GetProductByName(ctx, upd.ProductName)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("product %q: %w", upd.ProductName, ErrProductNotFound)
			}
			price = product.Price
			image = product.Image
		}

		updated := Sale{
			ID:           id,
			ClientName:   upd.ClientName,
			Status:       upd.Status,
			ProductName:  upd.ProductName,
			ProductImage: image,
			Quantity:     upd.Quantity,
			Price:        price,
			TotalAmount:  price.Mul(decimalFromInt(upd.Quantity)),
			Date:         upd.Date,
		}
		if err := tx.UpdateSale(ctx, updated); err != nil {
			return fmt.Errorf("update sale %d: %w", id, err)
		}

		switch {
		case productChanged:
			if err := tx.AdjustProductQuantity(ctx, original.ProductName, original.Quantity); err != nil {
				return err
			}
			if err := tx.AdjustProductQuantity(ctx, upd.ProductName, -upd.Quantity); err != nil {
				return err
			}
		case original.Quantity != upd.Quantity:
			if err := tx.AdjustProductQuantity(ctx, upd.ProductName, original.Quantity-upd.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a sale and returns its quantity to the referenced product's
// stock, atomically. If the product has since been deleted the stock
// adjustment matches nothing and the sale is simply removed.
func (l *SalesLedger) Delete(ctx context.Context, id int64) error {
	return l.store.WithTx(ctx, func(tx Store) error {
		sale, err := tx.GetSale(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("sale %d: %w", id, ErrSaleNotFound)
		}
		if err := tx.AdjustProductQuantity(ctx, sale.ProductName, sale.Quantity); err != nil {
			return err
		}
		if err := tx.DeleteSale(ctx, id); err != nil {
			return fmt.Errorf("delete sale %d: %w", id, err)
		}
		return nil
	})
}
