package session

import (
	"errors"

	"github.com/dmitrijs2005/househunt/internal/client/client"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRegistration       = errors.New("registration rejected")
	ErrProfileLoad        = errors.New("authenticated but profile load failed")
	ErrProfileUpdate      = errors.New("profile update rejected")
	ErrNetwork            = errors.New("network error")
	ErrStaleToken         = errors.New("stale token")
	ErrStorage            = errors.New("session storage failure")
	ErrNotReady           = errors.New("session not started")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSuperseded         = errors.New("session changed while the operation was in flight")
)

// User-facing messages.
const (
	msgLoginFailed        = "Login failed"
	msgRegistrationFailed = "Registration failed"
	msgProfileLoad        = "Login successful but failed to load profile. Please try again."
	msgNetwork            = "Network error"
	msgSessionExpired     = "Your session has expired. Please sign in again."
	msgStorage            = "Could not save the session on this device."
	msgProfileRefresh     = "Could not refresh your profile."
	msgProfileUpdate      = "Profile update failed"
)

// Error is what session operations surface to the view layer. Message is
// safe to display; Err keeps the underlying cause for logs.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message returns the display text of a session error, or err.Error() for
// anything else.
func Message(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func newError(kind error, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func detailOr(err error, fallback string) string {
	if d := client.DetailOf(err); d != "" {
		return d
	}
	return fallback
}

func loginError(err error) *Error {
	if errors.Is(err, client.ErrUnavailable) {
		return newError(ErrNetwork, detailOr(err, msgNetwork), err)
	}
	return newError(ErrInvalidCredentials, detailOr(err, msgLoginFailed), err)
}

func registerError(err error) *Error {
	if errors.Is(err, client.ErrUnavailable) {
		return newError(ErrNetwork, detailOr(err, msgNetwork), err)
	}
	return newError(ErrRegistration, detailOr(err, msgRegistrationFailed), err)
}

// refreshError maps a failed refetch of a live session. Only a rejected
// token is returned as ErrStaleToken; the caller logs out in that case.
func refreshError(err error) *Error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return newError(ErrStaleToken, msgSessionExpired, err)
	case errors.Is(err, client.ErrUnavailable):
		return newError(ErrNetwork, detailOr(err, msgNetwork), err)
	default:
		return newError(ErrProfileLoad, detailOr(err, msgProfileRefresh), err)
	}
}

func updateError(err error) *Error {
	if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, client.ErrUnavailable) {
		return refreshError(err)
	}
	return newError(ErrProfileUpdate, detailOr(err, msgProfileUpdate), err)
}
