package client

import (
	"context"

	"github.com/dmitrijs2005/househunt/internal/client/models"
)

// Client is the Remote API contract the session manager relies on. Every
// method is role-parameterized so callers never branch on the role
// themselves.
type Client interface {
	Login(ctx context.Context, role models.Role, identifier string, secret []byte) (string, error)
	Register(ctx context.Context, role models.Role, form models.RegisterForm) (*models.Identity, error)
	FetchProfile(ctx context.Context, role models.Role, token string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, role models.Role, token string, update models.ProfileUpdate) (*models.Profile, error)
	Ping(ctx context.Context) error
}
