package model

// TokenPair is the bearer credential pair issued by POST /auth/.
// Persisted under the authTokens store key.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Session is a point-in-time copy of the session manager's state.
// Tokens being non-nil is the single authenticated/unauthenticated switch;
// IsLoading overlays both modes during startup recovery only.
type Session struct {
	Tokens    *TokenPair
	User      *User
	IsLoading bool
	LastError string
}

func (s Session) Authenticated() bool {
	return s.Tokens != nil
}
