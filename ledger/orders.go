/*
orders.go - Atomic order placement

PURPOSE:
  The one multi-step invariant-bearing operation of the system. Given a
  client order it must, inside a single transaction:

    1. Look up the product by name (miss fails the whole order)
    2. Check requested <= available (fail with the amounts, before any write)
    3. Compute total = price * quantity
    4. Insert the sale with a snapshot of product price/image
    5. Decrement the product's stock

  No partially applied order may ever be observable: a committed sale
  always has its matching stock decrement, and a failed order leaves
  neither behind.
*/
package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

func decimalFromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// OrderProcessor records client orders against the inventory.
type OrderProcessor struct {
	store TxStore
}

// NewOrderProcessor creates an order processor over the given store.
func NewOrderProcessor(store TxStore) *OrderProcessor {
	return &OrderProcessor{store: store}
}

// Place validates and records an order, returning the new sale id.
// Returns ErrProductNotFound when the named product doesn't exist and an
// *InsufficientStockError when the requested quantity exceeds what is on
// hand. Any failure rolls the whole operation back.
func (p *OrderProcessor) Place(ctx context.Context, order Order) (int64, error) {
	var saleID int64
	err := p.store.WithTx(ctx, func(tx Store) error {
		product, err := tx.GetProductByName(ctx, order.ProductName)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("product %q: %w", order.ProductName, ErrProductNotFound)
		}

		if product.Quantity < order.Quantity {
			return &InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Quantity,
				Requested:   order.Quantity,
			}
		}

		sale := Sale{
			ClientName:   order.ClientName,
			Status:       order.Status,
			ProductName:  product.Name,
			ProductImage: product.Image,
			Quantity:     order.Quantity,
			Price:        product.Price,
			TotalAmount:  product.Price.Mul(decimalFromInt(order.Quantity)),
			Date:         order.Date,
		}
		saleID, err = tx.InsertSale(ctx, sale)
		if err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}

		if err := tx.AdjustProductQuantity(ctx, product.Name, -order.Quantity); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saleID, nil
}
