// Package session owns the portal's authentication state: token pair,
// resolved profile, the startup loading flag and the last login error.
// It is the only writer of the token store; everything else reads
// snapshots.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"formativa-portal/internal/model"
	"formativa-portal/internal/store"
	"formativa-portal/internal/token"
)

// Login failures surface one generic message: echoing server detail would
// leak an account-enumeration signal.
const (
	loginFailMessage     = "Erro ao realizar o login! Verifique login e senha!"
	loginThrottleMessage = "Muitas tentativas de login. Aguarde um instante."
)

// AuthAPI is the slice of the remote API the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, username string, password string) (model.TokenPair, model.User, error)
	FetchProfile(ctx context.Context, access string) (model.User, error)
}

// Manager serializes every session transition behind one mutex, so a
// second Login issued before the first resolves can never tear the
// tokens/user pair in memory or in the store.
type Manager struct {
	mu      sync.Mutex
	store   *store.Store
	auth    AuthAPI
	limiter *rate.Limiter

	tokens      *model.TokenPair
	user        *model.User
	loading     bool
	lastError   string
	initialized bool
}

func NewManager(st *store.Store, auth AuthAPI, loginRPM int) *Manager {
	if loginRPM <= 0 {
		loginRPM = 10
	}

	return &Manager{
		store:   st,
		auth:    auth,
		loading: true,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(loginRPM)), loginRPM),
	}
}

// Initialize runs the startup recovery sequence once. Later calls are
// no-ops. Missing tokens leave the session empty; an expired or malformed
// access token forces a silent full logout (no refresh rotation exists on
// the remote API, re-login is the only recovery). A valid pair adopts the
// cached profile, falling back to one profile re-fetch before giving up.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return
	}
	m.initialized = true
	defer func() { m.loading = false }()

	var tokens model.TokenPair
	if !m.store.LoadJSON(store.KeyAuthTokens, &tokens) {
		return
	}

	if !token.Valid(tokens.Access) {
		slog.Info("persisted session expired, clearing")
		m.clearLocked()
		return
	}

	var user model.User
	if m.store.LoadJSON(store.KeyUser, &user) && user.Username != "" {
		m.tokens = &tokens
		m.user = &user
		return
	}

	fetched, err := m.auth.FetchProfile(ctx, tokens.Access)
	if err != nil {
		slog.Warn("profile recovery failed, clearing session", "error", err)
		m.clearLocked()
		return
	}

	m.store.Save(store.KeyUser, fetched)
	m.tokens = &tokens
	m.user = &fetched
}

// Login exchanges credentials for a session. On success both store keys
// are written before the lock releases, so readers observe tokens and
// user move together. On any failure the session is left exactly as it
// was, with only lastError set.
func (m *Manager) Login(ctx context.Context, username string, password string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	if !m.limiter.Allow() {
		m.lastError = loginThrottleMessage
		return false
	}

	tokens, user, err := m.auth.Login(ctx, username, password)
	if err != nil {
		slog.Warn("login rejected", "username", username, "error", err)
		m.lastError = loginFailMessage
		return false
	}

	m.store.Save(store.KeyAuthTokens, tokens)
	m.store.Save(store.KeyUser, user)
	m.tokens = &tokens
	m.user = &user
	m.lastError = ""
	return true
}

// Logout clears memory and every persisted session key. Idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

func (m *Manager) clearLocked() {
	m.tokens = nil
	m.user = nil
	m.loading = false
	m.store.Remove(store.KeyAuthTokens)
	m.store.Remove(store.KeyUser)
	for _, key := range store.LegacyKeys {
		m.store.Remove(key)
	}
}

// Snapshot returns a value copy of the current session for gate checks
// and rendering. Mutating the copy has no effect on the manager.
func (m *Manager) Snapshot() model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := model.Session{IsLoading: m.loading, LastError: m.lastError}
	if m.tokens != nil {
		tokens := *m.tokens
		s.Tokens = &tokens
	}
	if m.user != nil {
		user := *m.user
		s.User = &user
	}
	return s
}
