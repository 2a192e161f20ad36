package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/househunt/internal/client/client"
	"github.com/dmitrijs2005/househunt/internal/client/config"
	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/dmitrijs2005/househunt/internal/client/routes"
	"github.com/dmitrijs2005/househunt/internal/client/session"
	"github.com/dmitrijs2005/househunt/internal/logging"
)

// fakeAPI stands in for the rental backend.
type fakeAPI struct {
	loginErr  error
	fetchErr  error
	regErr    error
	updateErr error
	pingErr   error

	fetches int

	loginUser   string
	loginSecret []byte
	regRole     models.Role
	regForm     models.RegisterForm
	update      models.ProfileUpdate
	isAdmin     bool
}

func (f *fakeAPI) Login(_ context.Context, role models.Role, id string, secret []byte) (string, error) {
	f.loginUser, f.loginSecret = id, append([]byte(nil), secret...)
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "tok-" + string(role), nil
}

func (f *fakeAPI) FetchProfile(_ context.Context, role models.Role, _ string) (*models.Profile, error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	p := &models.Profile{Role: role, ID: 1, Email: "ann@example.com", Username: "ann", FullName: "Ann Example", IsAdmin: f.isAdmin}
	if role == models.RoleAgent {
		p.LicenseNumber = "LIC-1"
		p.Specialties = []string{"rentals"}
	}
	return p, nil
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, role models.Role, token string, u models.ProfileUpdate) (*models.Profile, error) {
	f.update = u
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p, _ := f.FetchProfile(ctx, role, token)
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	return p, nil
}

func (f *fakeAPI) Register(_ context.Context, role models.Role, form models.RegisterForm) (*models.Identity, error) {
	f.regRole, f.regForm = role, form
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.Identity{ID: 2, Email: form.Email, Username: form.Username, Role: role}, nil
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

type testApp struct {
	*App
	out *bytes.Buffer
	mgr *session.Manager
}

// newTestApp builds an App over a real session manager, an in-memory store
// and the scripted input lines. Notices are printed as in Run.
func newTestApp(t *testing.T, api *fakeAPI, lines ...string) *testApp {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mgr := session.NewManager(api, session.NewMetadataStore(db), session.WithHomeRoutes(homeRoutes))
	mgr.Start(context.Background())

	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.RequestTimeout = time.Second

	a := &App{
		config: cfg,
		api:    api,
		sess:   mgr,
		routes: routes.Default,
		log:    logging.Nop(),
		reader: bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n")),
		out:    out,
	}
	t.Cleanup(a.watchNotices())

	return &testApp{App: a, out: out, mgr: mgr}
}

// stubPasswords makes getPassword return pws in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(io.Writer) ([]byte, error) {
		pw := []byte(pws[i%len(pws)])
		i++
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}
