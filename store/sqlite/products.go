/*
products.go - Product catalog row access

Exported methods lock the store mutex; the *Tx variants assume the caller
(an exported method or WithTx) already holds it.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ahmed775c6/Stock/ledger"
)

// InsertProduct inserts a product, stamping created_at and updated_at with
// the current time. Returns ledger.ErrDuplicateProductName when the name is
// already taken.
func (s *Store) InsertProduct(ctx context.Context, p ledger.Product) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertProductTx(ctx, s.db, p)
}

func (s *Store) insertProductTx(ctx context.Context, db dbtx, p ledger.Product) (int64, error) {
	now := formatTime(time.Now())
	res, err := db.ExecContext(ctx, `
		INSERT INTO products (name, price, quantity, cost_price, brand, material, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name,
		p.Price.InexactFloat64(),
		p.Quantity,
		p.CostPrice.InexactFloat64(),
		p.Brand,
		p.Material,
		nullString(p.Image),
		now,
		now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return 0, ledger.ErrDuplicateProductName
		}
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	return res.LastInsertId()
}

// ListProducts returns all products, newest created first.
func (s *Store) ListProducts(ctx context.Context) ([]ledger.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listProductsTx(ctx, s.db)
}

func (s *Store) listProductsTx(ctx context.Context, db dbtx) ([]ledger.Product, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, price, quantity, cost_price, brand, material, image, created_at, updated_at
		FROM products
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []ledger.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct returns a product by id, or (nil, nil) when absent.
func (s *Store) GetProduct(ctx context.Context, id int64) (*ledger.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getProductTx(ctx, s.db, id)
}

func (s *Store) getProductTx(ctx context.Context, db dbtx, id int64) (*ledger.Product, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, name, price, quantity, cost_price, brand, material, image, created_at, updated_at
		FROM products WHERE id = ?`, id)
	return scanProductRow(row)
}

// GetProductByName returns a product by its unique name, or (nil, nil).
func (s *Store) GetProductByName(ctx context.Context, name string) (*ledger.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getProductByNameTx(ctx, s.db, name)
}

func (s *Store) getProductByNameTx(ctx context.Context, db dbtx, name string) (*ledger.Product, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, name, price, quantity, cost_price, brand, material, image, created_at, updated_at
		FROM products WHERE name = ?`, name)
	return scanProductRow(row)
}

// UpdateProduct replaces the product's mutable fields and refreshes
// updated_at. created_at never changes.
func (s *Store) UpdateProduct(ctx context.Context, id int64, p ledger.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateProductTx(ctx, s.db, id, p)
}

func (s *Store) updateProductTx(ctx context.Context, db dbtx, id int64, p ledger.Product) error {
	_, err := db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, price = ?, quantity = ?, cost_price = ?, brand = ?, material = ?, image = ?, updated_at = ?
		WHERE id = ?`,
		p.Name,
		p.Price.InexactFloat64(),
		p.Quantity,
		p.CostPrice.InexactFloat64(),
		p.Brand,
		p.Material,
		nullString(p.Image),
		formatTime(time.Now()),
		id,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ledger.ErrDuplicateProductName
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// DeleteProduct hard-deletes the product row.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteProductTx(ctx, s.db, id)
}

func (s *Store) deleteProductTx(ctx context.Context, db dbtx, id int64) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// AdjustProductQuantity adds delta to the named product's stock. A name
// matching no product affects zero rows, which is deliberate: deleting a
// sale whose product is gone still succeeds.
func (s *Store) AdjustProductQuantity(ctx context.Context, name string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adjustProductQuantityTx(ctx, s.db, name, delta)
}

func (s *Store) adjustProductQuantityTx(ctx context.Context, db dbtx, name string, delta int64) error {
	_, err := db.ExecContext(ctx,
		"UPDATE products SET quantity = quantity + ? WHERE name = ?", delta, name)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for %q: %w", name, err)
	}
	return nil
}

// =============================================================================
// SCANNING
// =============================================================================

func scanProduct(rows *sql.Rows) (ledger.Product, error) {
	var (
		p                    ledger.Product
		price, costPrice     float64
		image                sql.NullString
		createdAt, updatedAt string
	)
	err := rows.Scan(&p.ID, &p.Name, &price, &p.Quantity, &costPrice,
		&p.Brand, &p.Material, &image, &createdAt, &updatedAt)
	if err != nil {
		return p, fmt.Errorf("failed to scan product: %w", err)
	}
	p.Price = decimal.NewFromFloat(price)
	p.CostPrice = decimal.NewFromFloat(costPrice)
	p.Image = image.String
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

func scanProductRow(row *sql.Row) (*ledger.Product, error) {
	var (
		p                    ledger.Product
		price, costPrice     float64
		image                sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&p.ID, &p.Name, &price, &p.Quantity, &costPrice,
		&p.Brand, &p.Material, &image, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	p.Price = decimal.NewFromFloat(price)
	p.CostPrice = decimal.NewFromFloat(costPrice)
	p.Image = image.String
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}
