package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/chaosdating/chaos-dating/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*sessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &sessionRepository{client: client}, mr
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "abc",
		UserID:    7,
		ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second),
	}
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 7, got.UserID)
	assert.True(t, got.ExpiresAt.Equal(session.ExpiresAt))
}

func TestSessionRepository_Get_Missing(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_Create_AlreadyExpired(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Create(context.Background(), &domain.Session{
		ID:        "old",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	assert.Error(t, err)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	session := &domain.Session{ID: "abc", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, session))
	require.NoError(t, repo.Delete(ctx, "abc"))

	_, err := repo.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_KeyExpires(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	session := &domain.Session{ID: "abc", UserID: 7, ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, repo.Create(ctx, session))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
