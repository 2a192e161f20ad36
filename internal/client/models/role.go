// Package models defines the client-side data types of the rental
// marketplace session: roles, role-scoped profiles and the forms sent to the
// backend.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Role selects which account family (and therefore which endpoints and
// dashboards) a session belongs to.
type Role string

const (
	// RoleRenter is a regular user account. Its wire value is "user".
	RoleRenter Role = "user"
	// RoleAgent is a letting agent account.
	RoleAgent Role = "agent"
)

var ErrUnknownRole = errors.New("unknown role")

// Roles lists every role in display order.
var Roles = []Role{RoleRenter, RoleAgent}

// ParseRole accepts the wire values plus the "renter" alias, case-insensitive.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "renter":
		return RoleRenter, nil
	case "agent":
		return RoleAgent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) Valid() bool {
	return r == RoleRenter || r == RoleAgent
}

func (r Role) String() string {
	return string(r)
}

// Label is the human name shown in prompts.
func (r Role) Label() string {
	switch r {
	case RoleRenter:
		return "renter"
	case RoleAgent:
		return "agent"
	default:
		return "unknown"
	}
}
