package session

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/househunt/internal/client/models"
)

type liveSession struct {
	gen   uint64
	role  models.Role
	token string
}

func (m *Manager) live() (liveSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusAuthenticated {
		return liveSession{}, ErrNotAuthenticated
	}
	return liveSession{gen: m.gen, role: m.role, token: m.token}, nil
}

// Refresh refetches the profile of the current session. Concurrent calls
// within one session share one request, bound to the context of the first
// caller.
//
// A rejected token ends the session and leaves a notice for TakeNotice.
// Transport failures keep the session as it is.
func (m *Manager) Refresh(ctx context.Context) error {
	ls, err := m.live()
	if err != nil {
		return err
	}
	_, err, _ = m.refresh.Do(strconv.FormatUint(ls.gen, 10), func() (any, error) {
		p, err := m.api.FetchProfile(ctx, ls.role, ls.token)
		return nil, m.commitProfile(ctx, ls, p, err, refreshError)
	})
	return err
}

// UpdateProfile sends the set fields of update and stores the profile the
// server returns. An empty update is a no-op.
func (m *Manager) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	if update.Empty() {
		return nil
	}
	ls, err := m.live()
	if err != nil {
		return err
	}
	p, err := m.api.UpdateProfile(ctx, ls.role, ls.token, update)
	return m.commitProfile(ctx, ls, p, err, updateError)
}

func (m *Manager) commitProfile(ctx context.Context, ls liveSession, p *models.Profile, callErr error, mapErr func(error) *Error) error {
	var result error
	forced := false
	m.mutate(func() bool {
		if m.gen != ls.gen {
			result = ErrSuperseded
			return false
		}
		if callErr != nil {
			se := mapErr(callErr)
			result = se
			if errors.Is(se, ErrStaleToken) {
				m.gen++
				_ = m.clearStoreLocked(ctx)
				m.resetLocked()
				m.status = StatusUnauthenticated
				m.lastErr = se
				m.notice = msgSessionExpired
				forced = true
				return true
			}
			m.lastErr = se
			return true
		}
		p.Role = ls.role
		if err := m.store.SaveIdentity(ctx, ls.role, p); err != nil {
			m.log.Warn(ctx, "update cached profile", "error", err)
		}
		m.profile = p
		m.lastErr = nil
		return true
	})

	switch {
	case forced:
		m.log.Info(ctx, "session expired, signed out", "role", ls.role)
	case result != nil:
		m.log.Warn(ctx, "profile not refreshed", "role", ls.role, "error", result)
	}
	return result
}

// TakeNotice returns the pending forced-logout notice and clears it.
func (m *Manager) TakeNotice() string {
	var n string
	m.mutate(func() bool {
		n = m.notice
		m.notice = ""
		return n != ""
	})
	return n
}
