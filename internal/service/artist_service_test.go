package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artist-admin/internal/repository/sqlite"
)

func newTestArtistService(t *testing.T) ArtistService {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewArtistRepository(db)
	require.NoError(t, repo.Init(context.Background()))

	return NewArtistService(repo)
}

func strptr(s string) *string { return &s }

func TestArtistCreateAndGet(t *testing.T) {
	svc := newTestArtistService(t)
	ctx := context.Background()

	artist, err := svc.Create(ctx, "Bob", "b@x.com", "1 St")
	require.NoError(t, err)
	assert.NotEmpty(t, artist.ID)

	got, err := svc.Get(ctx, artist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
	assert.Equal(t, "b@x.com", got.Email)
	assert.Equal(t, "1 St", got.Address)
}

func TestArtistListEmpty(t *testing.T) {
	svc := newTestArtistService(t)

	artists, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, artists)
	assert.Empty(t, artists)
}

func TestArtistCreateDuplicateEmail(t *testing.T) {
	svc := newTestArtistService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Bob", "b@x.com", "1 St")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Robert", "b@x.com", "2 Ave")
	assert.ErrorIs(t, err, ErrArtistAlreadyExists)

	artists, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, artists, 1, "failed create must not change the collection")
}

func TestArtistCreateValidation(t *testing.T) {
	svc := newTestArtistService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "b@x.com", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "Bob", "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestArtistPartialUpdate(t *testing.T) {
	svc := newTestArtistService(t)
	ctx := context.Background()

	artist, err := svc.Create(ctx, "Bob", "b@x.com", "1 St")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, artist.ID, ArtistUpdate{Address: strptr("2 Ave")})
	require.NoError(t, err)
	assert.Equal(t, "Bob", updated.Name)
	assert.Equal(t, "b@x.com", updated.Email)
	assert.Equal(t, "2 Ave", updated.Address)
}

func TestArtistUpdateEmailConflict(t *testing.T) {
	svc := newTestArtistService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Bob", "b@x.com", "1 St")
	require.NoError(t, err)
	other, err := svc.Create(ctx, "Carol", "c@x.com", "3 Rd")
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, ArtistUpdate{Email: strptr("b@x.com")})
	assert.ErrorIs(t, err, ErrArtistAlreadyExists)
}

func TestArtistUpdateMissing(t *testing.T) {
	svc := newTestArtistService(t)

	_, err := svc.Update(context.Background(), "no-such-id", ArtistUpdate{Name: strptr("X")})
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestArtistDelete(t *testing.T) {
	svc := newTestArtistService(t)
	ctx := context.Background()

	artist, err := svc.Create(ctx, "Bob", "b@x.com", "1 St")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, artist.ID))

	_, err = svc.Get(ctx, artist.ID)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestArtistDeleteMissing(t *testing.T) {
	svc := newTestArtistService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Bob", "b@x.com", "1 St")
	require.NoError(t, err)

	err = svc.Delete(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrArtistNotFound)

	artists, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, artists, 1, "failed delete must not change the collection")
}
