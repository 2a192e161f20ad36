// Package client contains the househunt client's link to the rental backend
// and its local database bootstrap.
//
// # Overview
//
//  1. Client is the transport-agnostic Remote API contract used by the
//     session manager: Login, Register, FetchProfile, UpdateProfile, Ping.
//     Every call takes a models.Role and resolves the role-specific endpoint
//     itself.
//  2. HTTPClient implements it over the backend's JSON REST API. Requests
//     carry an X-Request-ID and, when authenticated, a bearer token. Sign-up
//     forms are validated locally before they are sent.
//  3. InitDatabase / RunMigrations open the SQLite session database and apply
//     the embedded goose migrations.
//
// # Error Handling
//
// Failures are *APIError values that match a sentinel with errors.Is:
// ErrUnavailable (transport failure, 5xx), ErrUnauthorized (401/403),
// ErrConflict (409), ErrValidation (400/422 or local form checks),
// ErrNotFound, ErrMalformedResponse, ErrUnexpectedStatus. The server's
// "detail" text is kept in APIError.Detail for display.
//
// HTTPClient is safe for concurrent use. All operations honor context
// cancellation.
package client
