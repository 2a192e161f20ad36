package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/househunt/internal/client/client"
	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/dmitrijs2005/househunt/internal/logging"
)

// Manager owns the authentication session of one client process.
type Manager struct {
	api   client.Client
	store Store
	log   logging.Logger
	now   func() time.Time

	redirect string
	homes    map[models.Role]string

	// emitMu serializes commits with subscriber delivery so notifications
	// arrive in commit order. Lock order is emitMu, then mu.
	emitMu sync.Mutex

	mu          sync.Mutex
	status      Status
	gen         uint64
	token       string
	role        models.Role
	profile     *models.Profile
	placeholder *models.Profile
	lastErr     *Error
	notice      string
	// storeDirty is set while the store holds a token that memory does not
	// reflect yet.
	storeDirty bool

	subs    map[int]func(Snapshot)
	nextSub int

	refresh singleflight.Group
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithRedirect sets where denied callers are sent. Defaults to "/".
func WithRedirect(path string) Option {
	return func(m *Manager) { m.redirect = path }
}

// WithHomeRoutes sets the per-role landing routes used by guest-only guards.
func WithHomeRoutes(homes map[models.Role]string) Option {
	return func(m *Manager) {
		m.homes = make(map[models.Role]string, len(homes))
		for r, p := range homes {
			m.homes[r] = p
		}
	}
}

func NewManager(api client.Client, store Store, opts ...Option) *Manager {
	m := &Manager{
		api:      api,
		store:    store,
		log:      logging.Nop(),
		now:      time.Now,
		redirect: DefaultRedirect,
		homes:    DefaultHomeRoutes,
		subs:     make(map[int]func(Snapshot)),
	}
	for _, o := range opts {
		o(m)
	}
	m.log = m.log.With("component", "session")
	return m
}

// mutate runs fn under the state lock and, when fn reports a change,
// delivers the resulting snapshot to subscribers before returning.
func (m *Manager) mutate(fn func() bool) {
	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	changed := fn()
	var (
		snap Snapshot
		subs []func(Snapshot)
	)
	if changed {
		snap = m.snapshotLocked()
		subs = make([]func(Snapshot), 0, len(m.subs))
		for _, s := range m.subs {
			subs = append(subs, s)
		}
	}
	m.mu.Unlock()

	for _, s := range subs {
		s(snap)
	}
}

func (m *Manager) snapshotLocked() Snapshot {
	s := Snapshot{
		Status:     m.status,
		Err:        m.lastErr,
		Notice:     m.notice,
		Generation: m.gen,
	}
	switch m.status {
	case StatusAuthenticated:
		s.Role = m.role
		s.Profile = m.profile.Clone()
	case StatusLoading:
		s.Placeholder = m.placeholder.Clone()
	}
	return s
}

// resetLocked drops every piece of identity held in memory.
func (m *Manager) resetLocked() {
	m.token = ""
	m.role = ""
	m.profile = nil
	m.placeholder = nil
	m.lastErr = nil
	m.notice = ""
}

// clearStoreLocked empties the persistent session. Cancellation of the
// caller must not leave a half-cleared store behind.
func (m *Manager) clearStoreLocked(ctx context.Context) error {
	err := m.store.Clear(context.WithoutCancel(ctx))
	if err != nil {
		m.log.Warn(ctx, "clear session store", "error", err)
		return err
	}
	m.storeDirty = false
	return nil
}

// syncStoreLocked rewrites the store from memory after an aborted login
// left a token in it.
func (m *Manager) syncStoreLocked(ctx context.Context) {
	if !m.storeDirty {
		return
	}
	if m.status != StatusAuthenticated {
		_ = m.clearStoreLocked(ctx)
		return
	}
	ctx = context.WithoutCancel(ctx)
	err := m.store.SaveToken(ctx, m.token)
	if err == nil {
		err = m.store.SaveIdentity(ctx, m.role, m.profile)
	}
	if err != nil {
		m.log.Warn(ctx, "restore session store", "error", err)
		return
	}
	m.storeDirty = false
}

// Start restores the previous session from the store. Only the first call
// does anything; later calls return the current snapshot.
func (m *Manager) Start(ctx context.Context) Snapshot {
	var (
		gen     uint64
		started bool
	)
	m.mutate(func() bool {
		if m.status != StatusUninitialized {
			return false
		}
		m.gen++
		gen = m.gen
		m.status = StatusLoading
		started = true
		return true
	})
	if !started {
		return m.Snapshot()
	}

	stored, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn(ctx, "load session store", "error", err)
		stored = Stored{}
	}

	if stored.Token == "" {
		m.mutate(func() bool {
			if m.gen != gen {
				return false
			}
			if stored.RawRole != "" || stored.Profile != nil || err != nil {
				_ = m.clearStoreLocked(ctx)
			}
			m.resetLocked()
			m.status = StatusUnauthenticated
			return true
		})
		m.log.Info(ctx, "no stored session")
		return m.Snapshot()
	}

	if stored.Profile != nil {
		m.mutate(func() bool {
			if m.gen != gen {
				return false
			}
			m.placeholder = stored.Profile
			return true
		})
	}

	var profile *models.Profile
	reason := m.staleReason(stored)
	if reason == "" {
		profile, err = m.api.FetchProfile(ctx, stored.Role, stored.Token)
		if err != nil {
			reason = "profile fetch failed"
		}
	}

	m.mutate(func() bool {
		if m.gen != gen {
			return false
		}
		if reason != "" {
			_ = m.clearStoreLocked(ctx)
			m.resetLocked()
			m.status = StatusUnauthenticated
			return true
		}
		profile.Role = stored.Role
		if serr := m.store.SaveIdentity(ctx, stored.Role, profile); serr != nil {
			m.log.Warn(ctx, "update cached profile", "error", serr)
		}
		m.token = stored.Token
		m.role = stored.Role
		m.profile = profile
		m.placeholder = nil
		m.lastErr = nil
		m.status = StatusAuthenticated
		return true
	})

	if reason != "" {
		m.log.Info(ctx, "stored session discarded", "reason", reason, "error", err, "kind", ErrStaleToken)
	} else {
		m.log.Info(ctx, "session restored", "role", stored.Role)
	}
	return m.Snapshot()
}

// staleReason rejects stored tokens that cannot succeed without asking the
// server. Opaque tokens pass through.
func (m *Manager) staleReason(st Stored) string {
	if !st.Role.Valid() {
		return "unknown stored role"
	}
	claims, ok := inspectToken(st.Token)
	if !ok {
		return ""
	}
	if claims.expired(m.now()) {
		return "token expired"
	}
	if claims.UserType != "" && claims.UserType != string(st.Role) {
		return "token role mismatch"
	}
	return ""
}

// Login authenticates against the role's login endpoint, then loads the
// profile with the new token. The session is authenticated only when both
// steps succeed.
func (m *Manager) Login(ctx context.Context, role models.Role, identifier string, secret []byte) error {
	var (
		gen      uint64
		notReady bool
	)
	m.mutate(func() bool {
		if !m.status.Settled() {
			notReady = true
			return false
		}
		m.gen++
		gen = m.gen
		return false
	})
	if notReady {
		return ErrNotReady
	}

	token, err := m.api.Login(ctx, role, identifier, secret)
	if err != nil {
		se := loginError(err)
		m.log.Info(ctx, "login rejected", "role", role, "error", err)
		m.mutate(func() bool {
			if m.gen != gen {
				return false
			}
			m.syncStoreLocked(ctx)
			m.lastErr = se
			return true
		})
		return se
	}

	var (
		superseded bool
		storeErr   error
	)
	m.mutate(func() bool {
		if m.gen != gen {
			superseded = true
			return false
		}
		storeErr = m.store.SaveToken(ctx, token)
		m.storeDirty = true
		if storeErr != nil {
			m.syncStoreLocked(ctx)
			m.lastErr = newError(ErrStorage, msgStorage, storeErr)
			return true
		}
		return false
	})
	if superseded {
		return ErrSuperseded
	}
	if storeErr != nil {
		return newError(ErrStorage, msgStorage, storeErr)
	}

	profile, err := m.api.FetchProfile(ctx, role, token)

	var result error
	m.mutate(func() bool {
		if m.gen != gen {
			result = ErrSuperseded
			return false
		}
		if err != nil {
			_ = m.clearStoreLocked(ctx)
			m.resetLocked()
			m.status = StatusUnauthenticated
			m.lastErr = newError(ErrProfileLoad, msgProfileLoad, err)
			result = m.lastErr
			return true
		}
		profile.Role = role
		if serr := m.store.SaveIdentity(ctx, role, profile); serr != nil {
			_ = m.clearStoreLocked(ctx)
			m.resetLocked()
			m.status = StatusUnauthenticated
			m.lastErr = newError(ErrStorage, msgStorage, serr)
			result = m.lastErr
			return true
		}
		m.storeDirty = false
		m.token = token
		m.role = role
		m.profile = profile
		m.placeholder = nil
		m.lastErr = nil
		m.notice = ""
		m.status = StatusAuthenticated
		return true
	})

	if result != nil {
		m.log.Warn(ctx, "login not completed", "role", role, "error", result)
		return result
	}
	m.log.Info(ctx, "logged in", "role", role, "user", profile.Username)
	return nil
}

// Register creates an account. It never signs the caller in and leaves the
// session untouched apart from the last error.
func (m *Manager) Register(ctx context.Context, role models.Role, form models.RegisterForm) (*models.Identity, error) {
	id, err := m.api.Register(ctx, role, form)
	if err != nil {
		se := registerError(err)
		m.log.Info(ctx, "registration rejected", "role", role, "error", err)
		m.mutate(func() bool {
			m.lastErr = se
			return true
		})
		return nil, se
	}

	m.mutate(func() bool {
		if m.lastErr == nil {
			return false
		}
		m.lastErr = nil
		return true
	})
	m.log.Info(ctx, "registered", "role", role, "user", id.Username)
	return id, nil
}

// Logout ends the session. It is safe to call in any state and always
// leaves the manager unauthenticated; a store failure is returned but does
// not keep the session alive.
func (m *Manager) Logout(ctx context.Context) error {
	var err error
	m.mutate(func() bool {
		m.gen++
		err = m.clearStoreLocked(ctx)
		changed := m.status != StatusUnauthenticated || m.lastErr != nil || m.notice != ""
		m.resetLocked()
		m.status = StatusUnauthenticated
		return changed
	})
	if err != nil {
		return newError(ErrStorage, msgStorage, err)
	}
	m.log.Info(ctx, "logged out")
	return nil
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Role returns the authenticated role, or "" when signed out or loading.
func (m *Manager) Role() models.Role {
	return m.Snapshot().Role
}

func (m *Manager) IsAuthenticated() bool {
	return m.Snapshot().IsAuthenticated()
}

// Profile returns a copy of the authenticated profile, or nil.
func (m *Manager) Profile() *models.Profile {
	return m.Snapshot().Profile
}

// AccessToken returns the bearer token of an authenticated session.
func (m *Manager) AccessToken() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusAuthenticated {
		return "", false
	}
	return m.token, true
}

// Authorize evaluates a guard admitting the given roles.
func (m *Manager) Authorize(allowed ...models.Role) Decision {
	return m.Evaluate(Guard{Allowed: allowed})
}

func (m *Manager) Evaluate(g Guard) Decision {
	return evaluate(m.Snapshot(), g, m.redirect, m.homes)
}

// Subscribe registers fn for every session change. Notifications are
// delivered synchronously in commit order; fn must not call mutating
// Manager methods.
func (m *Manager) Subscribe(fn func(Snapshot)) (cancel func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// Watch calls fn with the guard's current decision and again whenever a
// session change alters it.
func (m *Manager) Watch(g Guard, fn func(Decision)) (cancel func()) {
	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	last := m.Evaluate(g)
	fn(last)

	return m.Subscribe(func(s Snapshot) {
		d := evaluate(s, g, m.redirect, m.homes)
		if d == last {
			return
		}
		last = d
		fn(d)
	})
}
