/*
gate.go - Credential verification and session lifecycle

PURPOSE:
  The single-admin authentication surface:
    Authenticate   verify credentials, issue a 30-day session
    CheckSession   is the persisted session present and unexpired
    Logout         delete the persisted session
    ChangePassword re-verify, enforce minimum length, re-hash
    EnsureAdmin    first-run provisioning of the administrator record

SECURITY NOTES:
  - A missing user and a wrong password both surface as
    ErrInvalidCredentials; the distinction only reaches debug logs.
  - No fixed default credential: when no operator password is configured,
    EnsureAdmin generates one and returns it for a one-time startup log.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionTTL is the validity window of an issued session.
const SessionTTL = 30 * 24 * time.Hour

// MinPasswordLength is the minimum accepted length for a new password.
const MinPasswordLength = 8

var (
	// ErrInvalidCredentials is the generic authentication failure. It covers
	// both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordTooShort rejects new passwords below MinPasswordLength.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

	// ErrPasswordMismatch is returned when the supplied current password does
	// not match the stored credential on a password change.
	ErrPasswordMismatch = errors.New("current password is incorrect")

	// ErrNoAdminAccount indicates the users table is empty where one
	// administrator record was expected.
	ErrNoAdminAccount = errors.New("no administrator account exists")
)

// User is the stored administrator credential.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Store is the credential persistence the gate needs.
type Store interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetAdmin(ctx context.Context) (*User, error)
	CountUsers(ctx context.Context) (int64, error)
	InsertUser(ctx context.Context, username, passwordHash string) (int64, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
}

// Gate validates credentials and owns the persisted session file.
type Gate struct {
	store       Store
	sessionPath string
	now         func() time.Time
	log         zerolog.Logger
}

// NewGate creates an auth gate persisting its session at sessionPath.
func NewGate(store Store, sessionPath string, log zerolog.Logger) *Gate {
	return &Gate{
		store:       store,
		sessionPath: sessionPath,
		now:         time.Now,
		log:         log,
	}
}

// Authenticate verifies the credentials and, on success, issues and persists
// a new session. Failures are ErrInvalidCredentials regardless of cause.
func (g *Gate) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	user, err := g.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if user == nil {
		g.log.Debug().Str("username", username).Msg("authentication failed: unknown user")
		return nil, ErrInvalidCredentials
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		g.log.Debug().Str("username", username).Msg("authentication failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	session := &Session{
		Token:     uuid.NewString(),
		ExpiresAt: g.now().Add(SessionTTL),
	}
	if err := saveSession(g.sessionPath, session); err != nil {
		return nil, err
	}
	g.log.Info().Time("expires_at", session.ExpiresAt).Msg("session issued")
	return session, nil
}

// CheckSession reports whether a persisted, unexpired session exists. It
// never refreshes the expiry.
func (g *Gate) CheckSession() bool {
	session := loadSession(g.sessionPath)
	if session == nil {
		return false
	}
	return g.now().Before(session.ExpiresAt)
}

// Logout deletes the persisted session. Logging out with no session is not
// an error.
func (g *Gate) Logout() error {
	return clearSession(g.sessionPath)
}

// ChangePassword re-verifies the current password against the administrator
// record, enforces the length policy on the new one, and persists a fresh
// hash.
func (g *Gate) ChangePassword(ctx context.Context, current, newPassword string) error {
	admin, err := g.store.GetAdmin(ctx)
	if err != nil {
		return fmt.Errorf("look up administrator: %w", err)
	}
	if admin == nil {
		return ErrNoAdminAccount
	}

	ok, err := VerifyPassword(current, admin.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return ErrPasswordMismatch
	}

	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := g.store.UpdateUserPassword(ctx, admin.ID, hash); err != nil {
		return err
	}
	g.log.Info().Msg("administrator password changed")
	return nil
}

// EnsureAdmin provisions the administrator record on first run. When the
// users table already has a row it does nothing. With an empty password a
// random one is generated and returned so the caller can log it exactly
// once; an operator-set password returns empty.
func (g *Gate) EnsureAdmin(ctx context.Context, username, password string) (created bool, generated string, err error) {
	count, err := g.store.CountUsers(ctx)
	if err != nil {
		return false, "", fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return false, "", nil
	}

	if password == "" {
		password, err = GeneratePassword(16)
		if err != nil {
			return false, "", fmt.Errorf("generate password: %w", err)
		}
		generated = password
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, "", fmt.Errorf("hash password: %w", err)
	}
	if _, err := g.store.InsertUser(ctx, username, hash); err != nil {
		return false, "", err
	}
	g.log.Info().Str("username", username).Msg("administrator account provisioned")
	return true, generated, nil
}
