package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/househunt/internal/client/routes"
	"github.com/dmitrijs2005/househunt/internal/client/session"
)

// maxRedirects stops a misconfigured guard table from looping.
const maxRedirects = 3

// Open navigates to path the way the web router did: the route guard is
// evaluated and denied callers follow the redirect.
func (a *App) Open(ctx context.Context, path string) error {
	for hop := 0; hop <= maxRedirects; hop++ {
		r, d, err := a.routes.Authorize(a.sess, path)
		if err != nil {
			fmt.Fprintf(a.out, "Page not found: %s\n", path)
			return err
		}

		switch d.Outcome {
		case session.OutcomePending:
			fmt.Fprintln(a.out, "Loading...")
			return nil
		case session.OutcomeDeny:
			a.log.Debug(ctx, "route denied", "path", path, "reason", d.Reason, "redirect", d.RedirectTo)
			fmt.Fprintf(a.out, "%s is not available (%s), redirecting to %s\n", r.Title, d.Reason, d.RedirectTo)
			path = d.RedirectTo
			continue
		}

		a.render(r, path)
		return nil
	}
	return fmt.Errorf("too many redirects opening %s", path)
}

// Dashboard opens the home route of the signed-in role.
func (a *App) Dashboard(ctx context.Context) error {
	snap := a.sess.Snapshot()
	if !snap.IsAuthenticated() {
		return a.Open(ctx, routes.Login)
	}
	return a.Open(ctx, homeRoutes[snap.Role])
}

func (a *App) render(r routes.Route, path string) {
	fmt.Fprintf(a.out, "== %s ==\n", r.Title)

	switch r.Pattern {
	case routes.Dashboard, routes.AgentDashboard, routes.AdminDashboard:
		a.printProfile()
	case routes.Login:
		fmt.Fprintln(a.out, "Use 'login' to sign in or 'register' to create an account.")
	default:
		if params := routes.Params(r.Pattern, path); len(params) > 0 {
			kv := make([]string, 0, len(params))
			for k, v := range params {
				kv = append(kv, k+"="+v)
			}
			fmt.Fprintln(a.out, strings.Join(kv, " "))
		}
	}
}
