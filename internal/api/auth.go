package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"formativa-portal/internal/model"
	"formativa-portal/pkg/apierror"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
	User    json.RawMessage `json:"user"`
}

// Login posts credentials to /auth/ and returns the issued token pair plus
// the profile the endpoint carries alongside it.
func (c *Client) Login(ctx context.Context, username string, password string) (model.TokenPair, model.User, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/", "", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return model.TokenPair{}, model.User{}, err
	}

	if resp.Access == "" || resp.Refresh == "" {
		return model.TokenPair{}, model.User{}, apierror.New("BAD_RESPONSE", "login response missing tokens", "", http.StatusBadGateway)
	}

	user, err := decodeProfile(resp.User)
	if err != nil {
		return model.TokenPair{}, model.User{}, err
	}

	return model.TokenPair{Access: resp.Access, Refresh: resp.Refresh}, user, nil
}

// FetchProfile re-fetches the profile for a bearer token. Optional path:
// the login response already carries the profile, this only backs up a
// valid persisted token pair whose cached profile went missing.
func (c *Client) FetchProfile(ctx context.Context, access string) (model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/user-profile/", access, nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// decodeProfile normalizes the user field at the boundary: some API
// revisions send the profile double-encoded as a JSON string.
func decodeProfile(raw json.RawMessage) (model.User, error) {
	var user model.User

	if len(raw) == 0 {
		return user, errors.New("login response missing user profile")
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return user, fmt.Errorf("decode wrapped user profile: %w", err)
		}
		raw = json.RawMessage(encoded)
	}

	if err := json.Unmarshal(raw, &user); err != nil {
		return user, fmt.Errorf("decode user profile: %w", err)
	}

	return user, nil
}
