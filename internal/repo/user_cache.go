package repo

import (
	"context"
	"time"

	"crud-api/internal/core/cache"
	"crud-api/internal/domain"
)

// CachedUserReader 资料查询的读穿缓存。缓存的记录不带密码哈希，
// 只能用于展示，登录校验必须走 UserRepo。
type CachedUserReader struct {
	next  domain.UserReader
	users *cache.Typed[domain.User]
}

func NewCachedUserReader(next domain.UserReader, c *cache.Cache, ttl time.Duration) *CachedUserReader {
	return &CachedUserReader{next: next, users: cache.NewTyped[domain.User](c, "user", ttl)}
}

func (r *CachedUserReader) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.users.Get(ctx, id, func(ctx context.Context) (*domain.User, error) {
		return r.next.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
