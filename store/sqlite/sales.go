/*
sales.go - Sales log row access

Same locking convention as products.go: exported methods lock, *Tx variants
run under a lock the caller holds.
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

const saleColumns = `id, client_name, status, product_name, product_image,
	quantity, price, total_amount, date, created_at, updated_at`

// InsertSale appends a sale, stamping created_at and updated_at.
func (s *Store) InsertSale(ctx context.Context, sale ledger.Sale) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertSaleTx(ctx, s.db, sale)
}

func (s *Store) insertSaleTx(ctx context.Context, db dbtx, sale ledger.Sale) (int64, error) {
	now := formatTime(time.Now())
	res, err := db.ExecContext(ctx, `
		INSERT INTO sales (client_name, status, product_name, product_image,
			quantity, price, total_amount, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ClientName,
		sale.Status,
		sale.ProductName,
		nullString(sale.ProductImage),
		sale.Quantity,
		sale.Price.InexactFloat64(),
		sale.TotalAmount.InexactFloat64(),
		sale.Date,
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sale: %w", err)
	}
	return res.LastInsertId()
}

// ListSales returns all sales, newest created first.
func (s *Store) ListSales(ctx context.Context) ([]ledger.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listSalesTx(ctx, s.db)
}

func (s *Store) listSalesTx(ctx context.Context, db dbtx) ([]ledger.Sale, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT "+saleColumns+" FROM sales ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []ledger.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// GetSale returns a sale by id, or (nil, nil) when absent.
func (s *Store) GetSale(ctx context.Context, id int64) (*ledger.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getSaleTx(ctx, s.db, id)
}

func (s *Store) getSaleTx(ctx context.Context, db dbtx, id int64) (*ledger.Sale, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT "+saleColumns+" FROM sales WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	sale, err := scanSale(rows)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// UpdateSale rewrites a sale row identified by sale.ID, refreshing
// updated_at and leaving created_at untouched.
func (s *Store) UpdateSale(ctx context.Context, sale ledger.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateSaleTx(ctx, s.db, sale)
}

func (s *Store) updateSaleTx(ctx context.Context, db dbtx, sale ledger.Sale) error {
	_, err := db.ExecContext(ctx, `
		UPDATE sales
		SET client_name = ?, status = ?, product_name = ?, product_image = ?,
			quantity = ?, price = ?, total_amount = ?, date = ?, updated_at = ?
		WHERE id = ?`,
		sale.ClientName,
		sale.Status,
		sale.ProductName,
		nullString(sale.ProductImage),
		sale.Quantity,
		sale.Price.InexactFloat64(),
		sale.TotalAmount.InexactFloat64(),
		sale.Date,
		formatTime(time.Now()),
		sale.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}
	return nil
}

// DeleteSale removes the sale row.
func (s *Store) DeleteSale(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteSaleTx(ctx, s.db, id)
}

func (s *Store) deleteSaleTx(ctx context.Context, db dbtx, id int64) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM sales WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	return nil
}

func scanSale(rows *sql.Rows) (ledger.Sale, error) {
	var (
		sale                 ledger.Sale
		image                sql.NullString
		price, total         float64
		createdAt, updatedAt string
	)
	err := rows.Scan(&sale.ID, &sale.ClientName, &sale.Status, &sale.ProductName,
		&image, &sale.Quantity, &price, &total, &sale.Date, &createdAt, &updatedAt)
	if err != nil {
		return sale, fmt.Errorf("failed to scan sale: %w", err)
	}
	sale.ProductImage = image.String
	sale.Price = decimal.NewFromFloat(price)
	sale.TotalAmount = decimal.NewFromFloat(total)
	sale.CreatedAt = parseTime(createdAt)
	sale.UpdatedAt = parseTime(updatedAt)
	return sale, nil
}
