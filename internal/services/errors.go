package services

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when neither NOTEBOOKLM_AUTH_JSON nor the auth file provide a credential
var ErrNotAuthenticated = errors.New("NotebookLM not authenticated. Set NOTEBOOKLM_AUTH_JSON env or run 'notebooklm-mcp-auth' locally.")

// AuthError wraps a credential source that exists but cannot be used
type AuthError struct {
	Source string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("NotebookLM not authenticated: %s is unusable: %v", e.Source, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthError reports whether err means the caller has no usable credential
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.Is(err, ErrNotAuthenticated) || errors.As(err, &authErr)
}

// UpstreamError is a non-200 answer from NotebookLM. StatusCode is passed through to the client.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string { return e.Detail }

// RequestError is a transport-level failure talking to NotebookLM (DNS, TLS, timeout, ...)
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return "Request failed: " + e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }
