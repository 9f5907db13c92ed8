/*
Package theme persists the UI theme preference in a JSON config file.

The file may carry other settings, so writes read the existing document,
replace only the theme key, and write the whole file back. The file is not
expected to be touched by more than one process.
*/
package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const defaultTheme = "system"

// Store reads and writes the theme preference.
type Store struct {
	path string
}

// NewStore creates a theme store backed by the config file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Theme returns the persisted preference, or "system" when the file is
// missing, unreadable, or has no theme key.
func (s *Store) Theme() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return defaultTheme
	}
	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return defaultTheme
	}
	if t, ok := config["theme"].(string); ok && t != "" {
		return t
	}
	return defaultTheme
}

// SetTheme persists the preference, preserving any other keys already in
// the config file and creating its directory if needed.
func (s *Store) SetTheme(theme string) error {
	config := map[string]any{}
	if data, err := os.ReadFile(s.path); err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
	}
	config["theme"] = theme

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
