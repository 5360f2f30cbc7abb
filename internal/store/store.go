// Package store is the durable key-value persistence behind the session
// manager: one JSON file per key under a state directory, the portal's
// stand-in for origin-scoped browser storage.
package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Keys the session manager persists under.
const (
	KeyAuthTokens = "authTokens"
	KeyUser       = "user"
)

// LegacyKeys are flat token keys older portal builds wrote alongside the
// composite pair. Never written anymore; removed on logout so upgraded
// installs converge.
var LegacyKeys = []string{"access", "refresh"}

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "./state"
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// LoadJSON reads the entry for key into v and reports whether it was
// usable. Everything that can go wrong — missing file, unreadable file,
// empty value, the literal "undefined" some old builds wrote, corrupt
// JSON — reads as absent. It never returns an error and never panics.
func (s *Store) LoadJSON(key string, v any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "undefined" || trimmed == "null" {
		return false
	}

	if err := json.Unmarshal([]byte(trimmed), v); err != nil {
		slog.Warn("ignoring corrupt store entry", "key", key, "error", err)
		return false
	}

	return true
}

// Save serializes v under key. Side effect only: failures are logged and
// swallowed, the caller's state transition proceeds either way.
func (s *Store) Save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("failed to serialize store entry", "key", key, "error", err)
		return
	}

	if err := os.WriteFile(s.path(key), data, 0o600); err != nil {
		slog.Warn("failed to write store entry", "key", key, "error", err)
	}
}

// Remove deletes the entry for key. Idempotent.
func (s *Store) Remove(key string) {
	_ = os.Remove(s.path(key))
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
