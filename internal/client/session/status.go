package session

import "github.com/dmitrijs2005/househunt/internal/client/models"

// Status is the session state machine position.
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Settled reports whether the startup restore has finished.
func (s Status) Settled() bool {
	return s == StatusAuthenticated || s == StatusUnauthenticated
}

// Snapshot is an immutable copy of the session handed to readers and
// subscribers. It never carries the bearer token.
type Snapshot struct {
	Status Status
	Role   models.Role
	// Profile is set only when Status is StatusAuthenticated.
	Profile *models.Profile
	// Placeholder is the cached profile shown while a stored token is being
	// confirmed. It is not authoritative.
	Placeholder *models.Profile
	// Err is the last surfaced failure, cleared by the next success.
	Err *Error
	// Notice is a one-time message about a forced logout.
	Notice     string
	Generation uint64
}

func (s Snapshot) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

// IsAdmin reports the display-only admin label of a renter account. It is
// not an authorization decision.
func (s Snapshot) IsAdmin() bool {
	return s.IsAuthenticated() && s.Role == models.RoleRenter && s.Profile != nil && s.Profile.IsAdmin
}
