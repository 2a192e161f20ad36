package session

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/househunt/internal/client/client"
	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fakeAPI is a scriptable client.Client. Nil hooks fall back to a backend
// that accepts every login and returns a profile for the role.
type fakeAPI struct {
	login    func(ctx context.Context, role models.Role, id string, secret []byte) (string, error)
	fetch    func(ctx context.Context, role models.Role, token string) (*models.Profile, error)
	update   func(ctx context.Context, role models.Role, token string, u models.ProfileUpdate) (*models.Profile, error)
	register func(ctx context.Context, role models.Role, f models.RegisterForm) (*models.Identity, error)

	logins    atomic.Int32
	fetches   atomic.Int32
	updates   atomic.Int32
	registers atomic.Int32
}

var _ client.Client = (*fakeAPI)(nil)

func testProfile(role models.Role) *models.Profile {
	p := &models.Profile{Role: role, ID: 7, Email: "ann@example.com", Username: "ann", FullName: "Ann Example", IsActive: true}
	if role == models.RoleAgent {
		p.LicenseNumber = "LIC-1"
		p.Company = "Homes Ltd"
	}
	return p
}

func (f *fakeAPI) Login(ctx context.Context, role models.Role, id string, secret []byte) (string, error) {
	f.logins.Add(1)
	if f.login != nil {
		return f.login(ctx, role, id, secret)
	}
	return "tok-" + string(role), nil
}

func (f *fakeAPI) FetchProfile(ctx context.Context, role models.Role, token string) (*models.Profile, error) {
	f.fetches.Add(1)
	if f.fetch != nil {
		return f.fetch(ctx, role, token)
	}
	return testProfile(role), nil
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, role models.Role, token string, u models.ProfileUpdate) (*models.Profile, error) {
	f.updates.Add(1)
	if f.update != nil {
		return f.update(ctx, role, token, u)
	}
	p := testProfile(role)
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	return p, nil
}

func (f *fakeAPI) Register(ctx context.Context, role models.Role, form models.RegisterForm) (*models.Identity, error) {
	f.registers.Add(1)
	if f.register != nil {
		return f.register(ctx, role, form)
	}
	return &models.Identity{ID: 9, Email: form.Email, Username: form.Username, Role: role}, nil
}

func (f *fakeAPI) Ping(context.Context) error { return nil }

func unauthorized() error {
	return &client.APIError{StatusCode: 401, Kind: client.ErrUnauthorized, Detail: "Could not validate credentials"}
}

func unavailable() error {
	return &client.APIError{Kind: client.ErrUnavailable, Detail: "Network error"}
}

func conflict(detail string) error {
	return &client.APIError{StatusCode: 409, Kind: client.ErrConflict, Detail: detail}
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestStore(t *testing.T) *MetadataStore {
	t.Helper()
	return NewMetadataStore(openDB(t, ":memory:"))
}

func newTestManager(t *testing.T, api *fakeAPI, opts ...Option) (*Manager, *MetadataStore) {
	t.Helper()
	st := newTestStore(t)
	return NewManager(api, st, opts...), st
}

// startedManager returns a manager settled as signed in with role.
func startedManager(t *testing.T, api *fakeAPI, role models.Role) (*Manager, *MetadataStore) {
	t.Helper()
	m, st := newTestManager(t, api)
	m.Start(context.Background())
	require.NoError(t, m.Login(context.Background(), role, "ann", []byte("secret1")))
	return m, st
}

func loadStore(t *testing.T, st Store) Stored {
	t.Helper()
	s, err := st.Load(context.Background())
	require.NoError(t, err)
	return s
}

// failingStore wraps a store and fails the selected writes.
type failingStore struct {
	Store
	saveIdentityErr error
	saveTokenErr    error
	clearErr        error
}

func (s *failingStore) SaveToken(ctx context.Context, token string) error {
	if s.saveTokenErr != nil {
		return s.saveTokenErr
	}
	return s.Store.SaveToken(ctx, token)
}

func (s *failingStore) SaveIdentity(ctx context.Context, role models.Role, p *models.Profile) error {
	if s.saveIdentityErr != nil {
		return s.saveIdentityErr
	}
	return s.Store.SaveIdentity(ctx, role, p)
}

func (s *failingStore) Clear(ctx context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	return s.Store.Clear(ctx)
}
