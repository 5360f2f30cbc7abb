package session

import "formativa-portal/internal/model"

// Decision is the gate's answer for a protected view.
type Decision int

const (
	// Pending means startup recovery has not resolved yet: render a
	// neutral placeholder, never a redirect, so a restoring session does
	// not flash through the login page.
	Pending Decision = iota
	Deny
	Allow
)

// Permits reports whether the session may see protected views. Tokens
// present is the whole rule; user and loading do not participate.
func Permits(s model.Session) bool {
	return s.Tokens != nil
}

// Decide folds the loading overlay into the access decision.
func Decide(s model.Session) Decision {
	if s.IsLoading {
		return Pending
	}
	if Permits(s) {
		return Allow
	}
	return Deny
}
