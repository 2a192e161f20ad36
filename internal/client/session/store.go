package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/dmitrijs2005/househunt/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/househunt/internal/dbx"
)

// Persistent store keys. The values match what the web front-end kept in
// localStorage so a shared profile export stays readable.
const (
	KeyToken   = "access_token"
	KeyRole    = "user_type"
	KeyProfile = "user_data"
)

// Stored is what Load found in the persistent store. Any field may be empty.
type Stored struct {
	Token string
	// Role is empty when the stored value is missing or not a known role;
	// RawRole keeps the original text.
	Role    models.Role
	RawRole string
	// Profile is nil when missing or undecodable.
	Profile *models.Profile
}

// Store persists the session between runs. Only the Manager writes to it.
type Store interface {
	Load(ctx context.Context) (Stored, error)
	SaveToken(ctx context.Context, token string) error
	SaveIdentity(ctx context.Context, role models.Role, profile *models.Profile) error
	Clear(ctx context.Context) error
}

// MetadataStore keeps the session in the SQLite metadata table.
type MetadataStore struct {
	db   *sql.DB
	repo metadata.Repository
}

func NewMetadataStore(db *sql.DB) *MetadataStore {
	return &MetadataStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

func (s *MetadataStore) Load(ctx context.Context) (Stored, error) {
	var st Stored

	token, _, err := s.repo.Get(ctx, KeyToken)
	if err != nil {
		return Stored{}, err
	}
	st.Token = string(token)

	rawRole, _, err := s.repo.Get(ctx, KeyRole)
	if err != nil {
		return Stored{}, err
	}
	st.RawRole = string(rawRole)
	if role, err := models.ParseRole(st.RawRole); err == nil {
		st.Role = role
	}

	blob, ok, err := s.repo.Get(ctx, KeyProfile)
	if err != nil {
		return Stored{}, err
	}
	if ok && len(blob) > 0 {
		var p models.Profile
		if err := json.Unmarshal(blob, &p); err == nil {
			p.Role = st.Role
			st.Profile = &p
		}
	}
	return st, nil
}

func (s *MetadataStore) SaveToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, KeyToken, []byte(token))
}

// SaveIdentity writes role and profile together.
func (s *MetadataStore) SaveIdentity(ctx context.Context, role models.Role, profile *models.Profile) error {
	blob, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyRole, []byte(role)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyProfile, blob)
	})
}

// Clear removes the three session keys and nothing else.
func (s *MetadataStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyToken, KeyRole, KeyProfile)
}
