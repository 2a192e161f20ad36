package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/househunt/internal/client/client"
	"github.com/dmitrijs2005/househunt/internal/client/config"
	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/dmitrijs2005/househunt/internal/client/routes"
	"github.com/dmitrijs2005/househunt/internal/client/session"
	"github.com/dmitrijs2005/househunt/internal/filex"
	"github.com/dmitrijs2005/househunt/internal/logging"

	_ "modernc.org/sqlite"
)

const dbFileName = "session.db"

// sessionManager is the part of *session.Manager the CLI drives.
type sessionManager interface {
	Start(ctx context.Context) session.Snapshot
	Login(ctx context.Context, role models.Role, identifier string, secret []byte) error
	Register(ctx context.Context, role models.Role, form models.RegisterForm) (*models.Identity, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) error
	Snapshot() session.Snapshot
	Evaluate(g session.Guard) session.Decision
	TakeNotice() string
	Subscribe(fn func(session.Snapshot)) (cancel func())
}

type App struct {
	config *config.Config
	api    client.Client
	sess   sessionManager
	routes routes.Table
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
	db     *sql.DB

	offline atomic.Bool
}

func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	dir, err := filex.EnsureStateDir(c.StateDir)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		l.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	mgr := session.NewManager(api, session.NewMetadataStore(db),
		session.WithLogger(l),
		session.WithRedirect(routes.Home),
		session.WithHomeRoutes(homeRoutes),
	)

	return &App{
		config: c,
		api:    api,
		sess:   mgr,
		routes: routes.Default,
		log:    l,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		db:     db,
	}, nil
}

var homeRoutes = map[models.Role]string{
	models.RoleRenter: routes.Dashboard,
	models.RoleAgent:  routes.AgentDashboard,
}

// Run restores the session, starts the revalidation watcher and blocks in
// the REPL until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to HouseHunt (type 'help' for commands)")

	stop := a.watchNotices()
	defer stop()

	snap := a.sess.Start(ctx)
	if snap.IsAuthenticated() {
		fmt.Fprintf(a.out, "Signed in as %s (%s)\n", snap.Profile.DisplayName(), snap.Role.Label())
	}

	if a.config.RevalidateInterval > 0 {
		go a.StartRevalidationWatcher(ctx, a.config.RevalidateInterval)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
	return nil
}

func (a *App) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.sess.Snapshot().IsAuthenticated()
}

// getStatus renders the prompt prefix, e.g. "(ann agent)".
func (a *App) getStatus() string {
	snap := a.sess.Snapshot()
	switch snap.Status {
	case session.StatusAuthenticated:
		s := snap.Profile.DisplayName() + " " + snap.Role.Label()
		if snap.IsAdmin() {
			s += " admin"
		}
		return "(" + s + ")"
	case session.StatusUnauthenticated:
		return "(guest)"
	default:
		return "(" + snap.Status.String() + ")"
	}
}

// watchNotices prints a forced-logout notice as soon as the session reports
// it. Deliveries are serialized by the manager.
func (a *App) watchNotices() (cancel func()) {
	var shown string
	return a.sess.Subscribe(func(s session.Snapshot) {
		if s.Notice == shown {
			return
		}
		shown = s.Notice
		if s.Notice != "" {
			fmt.Fprintln(a.out, s.Notice)
		}
	})
}

// StartRevalidationWatcher refreshes the profile of a signed-in session on
// every tick while the backend answers pings. A rejected token ends the
// session.
func (a *App) StartRevalidationWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.revalidate(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) revalidate(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}

	timeout := a.config.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := a.api.Ping(rctx); err != nil {
		if !a.offline.Swap(true) {
			a.log.Info(ctx, "offline, revalidation paused", "error", err)
		}
		return
	}
	if a.offline.Swap(false) {
		a.log.Info(ctx, "online again")
	}

	err := a.sess.Refresh(rctx)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrStaleToken):
		// printed by watchNotices
		a.sess.TakeNotice()
	default:
		a.log.Debug(ctx, "session revalidation failed", "error", err)
	}
}
