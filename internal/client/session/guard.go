package session

import (
	"slices"

	"github.com/dmitrijs2005/househunt/internal/client/models"
)

// Outcome of a route guard evaluation.
type Outcome int

const (
	// OutcomePending means the session is still being restored; show a
	// neutral loading state and ask again later.
	OutcomePending Outcome = iota
	OutcomeDeny
	OutcomeAllow
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeDeny:
		return "deny"
	case OutcomeAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Guard describes who may enter a route.
type Guard struct {
	// Allowed lists the admitted roles. Empty admits any authenticated role.
	Allowed []models.Role
	// GuestOnly routes (the login page) turn authenticated callers away to
	// their role's home route.
	GuestOnly bool
	// RedirectTo overrides the manager's default deny target.
	RedirectTo string
}

// Decision is the result of evaluating a Guard against the session.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
	Reason     string
}

func (d Decision) Allowed() bool { return d.Outcome == OutcomeAllow }

const DefaultRedirect = "/"

// DefaultHomeRoutes are the dashboards a signed-in user lands on.
var DefaultHomeRoutes = map[models.Role]string{
	models.RoleRenter: "/dashboard",
	models.RoleAgent:  "/agent-dashboard",
}

func evaluate(s Snapshot, g Guard, redirect string, homes map[models.Role]string) Decision {
	if !s.Status.Settled() {
		return Decision{Outcome: OutcomePending, Reason: "session loading"}
	}

	target := redirect
	if g.RedirectTo != "" {
		target = g.RedirectTo
	}

	if g.GuestOnly {
		if !s.IsAuthenticated() {
			return Decision{Outcome: OutcomeAllow}
		}
		home, ok := homes[s.Role]
		if !ok {
			home = redirect
		}
		return Decision{Outcome: OutcomeDeny, RedirectTo: home, Reason: "already signed in"}
	}

	if !s.IsAuthenticated() {
		return Decision{Outcome: OutcomeDeny, RedirectTo: target, Reason: "not signed in"}
	}
	if len(g.Allowed) > 0 && !slices.Contains(g.Allowed, s.Role) {
		return Decision{Outcome: OutcomeDeny, RedirectTo: target, Reason: "role " + s.Role.String() + " not allowed"}
	}
	return Decision{Outcome: OutcomeAllow}
}
