/*
users.go - Administrator credential row access

In steady state the users table holds exactly one row. Provisioning of the
first credential is driven by the auth package at startup; this file only
provides the row operations it needs.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ahmed775c6/Stock/auth"
)

// GetUserByUsername returns the credential for username, or (nil, nil).
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password, created_at FROM users WHERE username = ?", username)
	return scanUser(row)
}

// GetAdmin returns the single administrator record (the oldest user row),
// or (nil, nil) when the table is empty.
func (s *Store) GetAdmin(ctx context.Context) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password, created_at FROM users ORDER BY id ASC LIMIT 1")
	return scanUser(row)
}

// CountUsers returns the number of credential rows.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// InsertUser stores a new credential with an already-hashed password.
func (s *Store) InsertUser(ctx context.Context, username, passwordHash string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password) VALUES (?, ?)", username, passwordHash)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return res.LastInsertId()
}

// UpdateUserPassword replaces the stored hash for the given user id.
func (s *Store) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx,
		"UPDATE users SET password = ? WHERE id = ?", passwordHash, id); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (*auth.User, error) {
	var u auth.User
	var createdAt sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if createdAt.Valid {
		u.CreatedAt = parseTime(createdAt.String)
	}
	return &u, nil
}
