// Package routes is the navigation table of the client. Each entry pairs a
// path pattern with the guard that protects it.
package routes

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/dmitrijs2005/househunt/internal/client/session"
)

var ErrNotFound = errors.New("no such route")

// Route is one navigable screen. Public routes skip the guard.
type Route struct {
	Pattern string
	Title   string
	Public  bool
	Guard   session.Guard
}

const (
	Home           = "/"
	Login          = "/login"
	Register       = "/register"
	Dashboard      = "/dashboard"
	AgentDashboard = "/agent-dashboard"
	AdminDashboard = "/admin-dashboard"
)

// Default mirrors the web front-end's router. The admin dashboard is gated
// as a renter route; the admin flag on the profile is only a label.
var Default = Table{
	{Pattern: Home, Title: "Home", Public: true},
	{Pattern: "/search", Title: "Search results", Public: true},
	{Pattern: "/map", Title: "Map view", Public: true},
	{Pattern: "/property/:id", Title: "Property details", Public: true},
	{Pattern: "/agent/:id", Title: "Agent profile", Public: true},
	{Pattern: "/furniture-moving", Title: "Furniture moving", Public: true},
	{Pattern: Login, Title: "Sign in", Guard: session.Guard{GuestOnly: true}},
	{Pattern: Register, Title: "Create account", Guard: session.Guard{GuestOnly: true}},
	{Pattern: Dashboard, Title: "Renter dashboard", Guard: session.Guard{Allowed: []models.Role{models.RoleRenter}}},
	{Pattern: AgentDashboard, Title: "Agent dashboard", Guard: session.Guard{Allowed: []models.Role{models.RoleAgent}}},
	{Pattern: AdminDashboard, Title: "Admin dashboard", Guard: session.Guard{Allowed: []models.Role{models.RoleRenter}}},
}

type Table []Route

// Evaluator decides a guard against the current session.
type Evaluator interface {
	Evaluate(g session.Guard) session.Decision
}

// Resolve finds the route matching path. Query strings and a trailing
// slash are ignored.
func (t Table) Resolve(path string) (Route, bool) {
	path = normalize(path)
	for _, r := range t {
		if match(r.Pattern, path) {
			return r, true
		}
	}
	return Route{}, false
}

// Authorize resolves path and evaluates its guard with ev.
func (t Table) Authorize(ev Evaluator, path string) (Route, session.Decision, error) {
	r, ok := t.Resolve(path)
	if !ok {
		return Route{}, session.Decision{}, ErrNotFound
	}
	if r.Public {
		return r, session.Decision{Outcome: session.OutcomeAllow}, nil
	}
	return r, ev.Evaluate(r.Guard), nil
}

// Params extracts the ":name" segments of pattern from path.
func Params(pattern, path string) map[string]string {
	path = normalize(path)
	if !match(pattern, path) {
		return nil
	}
	ps, xs := split(pattern), split(path)
	out := make(map[string]string)
	for i, p := range ps {
		if strings.HasPrefix(p, ":") {
			out[p[1:]] = xs[i]
		}
	}
	return out
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func match(pattern, path string) bool {
	ps, xs := split(pattern), split(path)
	if len(ps) != len(xs) {
		return false
	}
	for i, p := range ps {
		if strings.HasPrefix(p, ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if p != xs[i] {
			return false
		}
	}
	return true
}
