// Package cache provides caching implementations for usecase interfaces.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_search/internal/feature/datasets/domain/entity"
	"stock_search/internal/feature/datasets/usecase"
)

var _ usecase.Source = (*CachingSource)(nil)

// CachingSource decorates a dataset Source with Redis caching.
// ファイル一覧とファイル内容をキャッシュし、取得元への問い合わせを減らします。
type CachingSource struct {
	inner     usecase.Source
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

// NewCachingSource decorates a Source with Redis caching.
// If ttl is 0, entries expire at the next 08:00 JST. If namespace is empty, it uses "csv".
// A nil client disables caching.
func NewCachingSource(rdb *redis.Client, ttl time.Duration, inner usecase.Source, namespace string) *CachingSource {
	if namespace == "" {
		namespace = "csv"
	}
	return &CachingSource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		now:       time.Now,
	}
}

// List returns the file listing, checking cache first.
func (c *CachingSource) List(ctx context.Context) ([]entity.SourceFile, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.namespace + ":list"
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.SourceFile
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.expiry()).Err()
	}
	return out, nil
}

// Fetch returns the file contents, checking cache first.
func (c *CachingSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if c.rdb == nil {
		return c.inner.Fetch(ctx, name)
	}

	key := c.fileKey(name)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		return b, nil
	}

	data, err := c.inner.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	// Best effort: 書き込みに失敗しても取得結果は返す
	_ = c.rdb.Set(ctx, key, data, c.expiry()).Err()
	return data, nil
}

func (c *CachingSource) expiry() time.Duration {
	if c.ttl > 0 {
		return c.ttl
	}
	return TimeUntilNext8AM(c.now())
}

func (c *CachingSource) fileKey(name string) string {
	return c.namespace + ":file:" + safe(name)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
