// Package apierror describes failures reported by the remote school API.
package apierror

import (
	"fmt"
	"net/http"
	"strings"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// FromStatus classifies a non-2xx response. The body snippet lands in
// Details for logs only; the UI never echoes server-provided detail back
// to the user.
func FromStatus(status int, body []byte) *APIError {
	code := "UPSTREAM_ERROR"
	message := "unexpected response from the school API"

	switch status {
	case http.StatusBadRequest:
		code, message = "BAD_REQUEST", "the school API rejected the request"
	case http.StatusUnauthorized:
		code, message = "UNAUTHORIZED", "invalid or missing credentials"
	case http.StatusForbidden:
		code, message = "FORBIDDEN", "insufficient permissions"
	case http.StatusNotFound:
		code, message = "NOT_FOUND", "resource not found"
	case http.StatusConflict:
		code, message = "CONFLICT", "the school API reported a conflict"
	case http.StatusTooManyRequests:
		code, message = "RATE_LIMITED", "too many requests"
	}

	details := strings.TrimSpace(string(body))
	if len(details) > 256 {
		details = details[:256]
	}

	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}
