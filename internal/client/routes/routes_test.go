package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/dmitrijs2005/househunt/internal/client/session"
)

type fixedSession session.Snapshot

func (f fixedSession) Evaluate(g session.Guard) session.Decision {
	s := session.Snapshot(f)
	if !s.Status.Settled() {
		return session.Decision{Outcome: session.OutcomePending}
	}
	if g.GuestOnly {
		if s.IsAuthenticated() {
			return session.Decision{Outcome: session.OutcomeDeny, RedirectTo: session.DefaultHomeRoutes[s.Role]}
		}
		return session.Decision{Outcome: session.OutcomeAllow}
	}
	if !s.IsAuthenticated() {
		return session.Decision{Outcome: session.OutcomeDeny, RedirectTo: "/"}
	}
	for _, r := range g.Allowed {
		if r == s.Role {
			return session.Decision{Outcome: session.OutcomeAllow}
		}
	}
	return session.Decision{Outcome: session.OutcomeDeny, RedirectTo: "/"}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		path    string
		pattern string
		ok      bool
	}{
		{"/", "/", true},
		{"", "/", true},
		{"/search?city=riga", "/search", true},
		{"/dashboard/", "/dashboard", true},
		{"property/42", "/property/:id", true},
		{"/property", "", false},
		{"/property/42/edit", "", false},
		{"/nope", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, ok := Default.Resolve(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.pattern, r.Pattern)
		})
	}
}

func TestParams(t *testing.T) {
	assert.Equal(t, map[string]string{"id": "17"}, Params("/agent/:id", "/agent/17"))
	assert.Nil(t, Params("/agent/:id", "/property/17"))
}

func TestAuthorize(t *testing.T) {
	renter := fixedSession{Status: session.StatusAuthenticated, Role: models.RoleRenter}
	agent := fixedSession{Status: session.StatusAuthenticated, Role: models.RoleAgent}
	guest := fixedSession{Status: session.StatusUnauthenticated}
	loading := fixedSession{Status: session.StatusLoading}

	tests := []struct {
		name    string
		ev      Evaluator
		path    string
		outcome session.Outcome
	}{
		{"public while loading", loading, "/map", session.OutcomeAllow},
		{"guarded while loading", loading, Dashboard, session.OutcomePending},
		{"guest on dashboard", guest, Dashboard, session.OutcomeDeny},
		{"renter dashboard", renter, Dashboard, session.OutcomeAllow},
		{"renter on agent dashboard", renter, AgentDashboard, session.OutcomeDeny},
		{"agent dashboard", agent, AgentDashboard, session.OutcomeAllow},
		{"agent on admin dashboard", agent, AdminDashboard, session.OutcomeDeny},
		{"renter on admin dashboard", renter, AdminDashboard, session.OutcomeAllow},
		{"guest on login", guest, Login, session.OutcomeAllow},
		{"agent on login", agent, Login, session.OutcomeDeny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, d, err := Default.Authorize(tt.ev, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, d.Outcome)
		})
	}

	_, _, err := Default.Authorize(guest, "/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
