package repo

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crud-api/internal/core/cache"
	"crud-api/internal/domain"
	"crud-api/pkg/utils"
)

type countingReader struct {
	calls atomic.Int32
	users map[string]*domain.User
}

func (r *countingReader) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.calls.Add(1)
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func newTestCache(t *testing.T) *cache.Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	c := cache.New(addr, os.Getenv("REDIS_PASSWORD"), 0, "crud-api-test:"+utils.NewID()+":")
	require.NoError(t, c.Ping(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCachedUserReader(t *testing.T) {
	c := newTestCache(t)
	u := &domain.User{ID: "u-1", Email: "a@x.com", PasswordHash: "secret-hash", Role: domain.RoleUser}
	next := &countingReader{users: map[string]*domain.User{"u-1": u}}
	r := NewCachedUserReader(next, c, time.Minute)
	ctx := context.Background()

	got, err := r.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	got, err = r.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Empty(t, got.PasswordHash, "hash must not be cached")
	assert.Equal(t, int32(1), next.calls.Load())

	_, err = r.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCachedUserReader_RedisDownFallsBack(t *testing.T) {
	c := cache.New("127.0.0.1:1", "", 0, "t:")
	t.Cleanup(func() { _ = c.Close() })

	u := &domain.User{ID: "u-1", Email: "a@x.com", PasswordHash: "h", Role: domain.RoleUser}
	next := &countingReader{users: map[string]*domain.User{"u-1": u}}
	r := NewCachedUserReader(next, c, time.Minute)
	ctx := context.Background()

	got, err := r.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	_, err = r.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, int32(2), next.calls.Load())
}
