/*
Package sqlite provides the SQLite-backed storage engine.

PURPOSE:
  Implements the persistence interfaces (ledger.Store, ledger.TxStore,
  auth.Store) over a single local database file. The whole application
  shares one connection; this package owns it exclusively.

KEY TABLES:
  users:    The single administrator credential (argon2id hash)
  products: Product catalog; quantity is CURRENT remaining stock
  sales:    Sales log with denormalized product name/price/image snapshots

  Sales intentionally carry no foreign key to products: a sale is a
  point-in-time record that must survive product deletes and renames.

CONCURRENCY:
  A sync.Mutex serializes every operation, reads included. Exported
  methods lock; the unexported *Tx helpers assume the lock is already
  held, which is how WithTx composes multi-step mutations without
  re-entering the mutex.

WAL MODE:
  The database is opened with WAL journaling and foreign keys enabled.

SCHEMA:
  Created idempotently on New(). Tables are STRICT so a mistyped write
  fails instead of storing junk. Any schema failure aborts New(), and
  the caller is expected to treat that as fatal.

USAGE:
  store, err := sqlite.New("./app.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - products.go, sales.go, users.go: Row access per table
  - ledger/store.go: Interface definitions
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Ahmed775c6/Stock/ledger"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database at dbPath and ensures the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: the mutex is the concurrency model, and SQLite
	// in-memory databases are per-connection anyway.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	) STRICT;

	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		price REAL NOT NULL,
		quantity INTEGER NOT NULL,
		cost_price REAL NOT NULL,
		brand TEXT NOT NULL,
		material TEXT NOT NULL,
		image TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	) STRICT;

	CREATE INDEX IF NOT EXISTS idx_products_created_at
		ON products(created_at DESC);

	CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_name TEXT NOT NULL,
		status TEXT NOT NULL,
		product_name TEXT NOT NULL,
		product_image TEXT,
		quantity INTEGER NOT NULL,
		price REAL NOT NULL,
		total_amount REAL NOT NULL,
		date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	) STRICT;

	CREATE INDEX IF NOT EXISTS idx_sales_created_at
		ON sales(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_sales_product_name
		ON sales(product_name);
	CREATE INDEX IF NOT EXISTS idx_sales_client_name
		ON sales(client_name);
	CREATE INDEX IF NOT EXISTS idx_sales_date
		ON sales(date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TRANSACTIONAL STORE (ledger.TxStore interface)
// =============================================================================

// WithTx executes fn within a database transaction, holding the store lock
// for the whole scope. If fn returns an error the transaction rolls back.
func (s *Store) WithTx(ctx context.Context, fn func(store ledger.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx, parent: s}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// txStore routes ledger.Store calls through an open transaction. It calls
// the parent's unexported *Tx helpers directly: the mutex is already held
// by WithTx.
type txStore struct {
	tx     *sql.Tx
	parent *Store
}

func (ts *txStore) InsertProduct(ctx context.Context, p ledger.Product) (int64, error) {
	return ts.parent.insertProductTx(ctx, ts.tx, p)
}

func (ts *txStore) ListProducts(ctx context.Context) ([]ledger.Product, error) {
	return ts.parent.listProductsTx(ctx, ts.tx)
}

func (ts *txStore) GetProduct(ctx context.Context, id int64) (*ledger.Product, error) {
	return ts.parent.getProductTx(ctx, ts.tx, id)
}

func (ts *txStore) GetProductByName(ctx context.Context, name string) (*ledger.Product, error) {
	return ts.parent.getProductByNameTx(ctx, ts.tx, name)
}

func (ts *txStore) UpdateProduct(ctx context.Context, id int64, p ledger.Product) error {
	return ts.parent.updateProductTx(ctx, ts.tx, id, p)
}

func (ts *txStore) DeleteProduct(ctx context.Context, id int64) error {
	return ts.parent.deleteProductTx(ctx, ts.tx, id)
}

func (ts *txStore) AdjustProductQuantity(ctx context.Context, name string, delta int64) error {
	return ts.parent.adjustProductQuantityTx(ctx, ts.tx, name, delta)
}

func (ts *txStore) InsertSale(ctx context.Context, sale ledger.Sale) (int64, error) {
	return ts.parent.insertSaleTx(ctx, ts.tx, sale)
}

func (ts *txStore) ListSales(ctx context.Context) ([]ledger.Sale, error) {
	return ts.parent.listSalesTx(ctx, ts.tx)
}

func (ts *txStore) GetSale(ctx context.Context, id int64) (*ledger.Sale, error) {
	return ts.parent.getSaleTx(ctx, ts.tx, id)
}

func (ts *txStore) UpdateSale(ctx context.Context, sale ledger.Sale) error {
	return ts.parent.updateSaleTx(ctx, ts.tx, sale)
}

func (ts *txStore) DeleteSale(ctx context.Context, id int64) error {
	return ts.parent.deleteSaleTx(ctx, ts.tx, id)
}

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
