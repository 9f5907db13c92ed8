/*
session.go - File-persisted bearer session

The session lives outside the relational store as a single JSON file,
written wholesale:

  {"token":"...","expires_at":"2026-09-30T12:00:00Z"}

There is no renewal: a session is valid from issuance until its expiry or
an explicit logout, and checking it never extends it.
*/
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Session is a time-bounded bearer credential proving a prior successful
// authentication.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func saveSession(path string, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// loadSession returns nil when the file is missing or unreadable; a broken
// session file is equivalent to no session.
func loadSession(path string) *Session {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

func clearSession(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
