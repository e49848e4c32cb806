package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artist-admin/internal/repository"
	"artist-admin/internal/repository/sqlite"
)

func newTestUserService(t *testing.T) UserService {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))

	return NewUserService(repo)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash, "hash must not leave the service layer")

	got, err := svc.Authenticate(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Empty(t, got.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other-pw")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterAcceptsShortPassword(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	// any non-empty password is allowed; there is no length floor
	_, err := svc.Register(ctx, "alice", "abc")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "abc")
	assert.NoError(t, err)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "pw123")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthenticateEnumerationResistance(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw123")
	require.NoError(t, err)

	_, wrongPass := svc.Authenticate(ctx, "alice", "nope")
	_, unknownUser := svc.Authenticate(ctx, "mallory", "nope")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPass, unknownUser, "failure must not reveal whether the user exists")
}

func TestGetByIDMissing(t *testing.T) {
	svc := newTestUserService(t)

	_, err := svc.GetByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
