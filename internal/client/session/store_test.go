package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/househunt/internal/client/models"
	"github.com/dmitrijs2005/househunt/internal/client/repositories/metadata"
)

func TestMetadataStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	empty, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stored{}, empty)

	require.NoError(t, st.SaveToken(ctx, "tok"))
	require.NoError(t, st.SaveIdentity(ctx, models.RoleAgent, testProfile(models.RoleAgent)))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, models.RoleAgent, got.Role)
	assert.Equal(t, "agent", got.RawRole)
	require.NotNil(t, got.Profile)
	assert.Equal(t, models.RoleAgent, got.Profile.Role)
	assert.Equal(t, "Homes Ltd", got.Profile.Company)
}

func TestMetadataStore_ClearKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	db := openDB(t, ":memory:")
	st := NewMetadataStore(db)
	repo := metadata.NewSQLiteRepository(db)

	require.NoError(t, repo.Set(ctx, "theme", []byte("dark")))
	require.NoError(t, st.SaveToken(ctx, "tok"))
	require.NoError(t, st.SaveIdentity(ctx, models.RoleRenter, testProfile(models.RoleRenter)))

	require.NoError(t, st.Clear(ctx))

	for _, k := range []string{KeyToken, KeyRole, KeyProfile} {
		_, ok, err := repo.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
	v, ok, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("dark"), v)
}

func TestMetadataStore_CorruptProfileIsIgnored(t *testing.T) {
	ctx := context.Background()
	db := openDB(t, ":memory:")
	st := NewMetadataStore(db)
	repo := metadata.NewSQLiteRepository(db)

	require.NoError(t, repo.Set(ctx, KeyToken, []byte("tok")))
	require.NoError(t, repo.Set(ctx, KeyRole, []byte("user")))
	require.NoError(t, repo.Set(ctx, KeyProfile, []byte("{not json")))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, models.RoleRenter, got.Role)
	assert.Nil(t, got.Profile)
}
