package middleware

import (
	"net/http"

	"formativa-portal/internal/model"
	"formativa-portal/internal/session"
)

// SessionSource yields the current session state; the gate reads it per
// request so a login or logout between navigations is always observed.
type SessionSource interface {
	Snapshot() model.Session
}

// RequireSession is the protected-route gate. Unauthenticated navigations
// are redirected to the login entry point; while startup recovery is
// still running it withholds the redirect and answers with a neutral
// placeholder instead, so a restoring session never flashes through the
// login page.
func RequireSession(source SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch session.Decide(source.Snapshot()) {
			case session.Pending:
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Carregando...", http.StatusServiceUnavailable)
			case session.Deny:
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
