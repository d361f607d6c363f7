package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Typed 同一命名空间下按 id 缓存 T 的 JSON 形式。
// 序列化走 encoding/json，带 json:"-" 的字段不会进缓存。
type Typed[T any] struct {
	c   *Cache
	ns  string
	ttl time.Duration
}

func NewTyped[T any](c *Cache, ns string, ttl time.Duration) *Typed[T] {
	return &Typed[T]{c: c, ns: ns, ttl: ttl}
}

// Get 命中直接解码；未命中调用 load，load 出错不缓存
func (t *Typed[T]) Get(ctx context.Context, id string, load func(ctx context.Context) (*T, error)) (*T, error) {
	b, err := t.c.GetOrLoad(ctx, t.ns+":"+id, t.ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	var out T
	if e := json.Unmarshal(b, &out); e != nil {
		return nil, fmt.Errorf("decode cached %s: %w", t.ns, e)
	}
	return &out, nil
}
