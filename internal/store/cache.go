package store

import (
	"context"
	"errors"
	"time"

	"backend-greentransit/internal/logging"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cachePrefix   = "greentransit:kv:"
	generationKey = "greentransit:kv-generation"
)

var errStaleFill = errors.New("cache generation moved")

// Cache is a read-through Redis projection of an authoritative Store.
// Every Commit invalidates the cached keys and bumps a generation counter;
// a fill only lands if no commit happened since its inner read began.
type Cache struct {
	inner Store
	rdb   *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewCache(inner Store, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{inner: inner, rdb: rdb, ttl: ttl, log: logging.OrNop(log)}
}

// Authoritative returns the store behind the cache.
func (c *Cache) Authoritative() Store { return c.inner }

func (c *Cache) Load(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, cachePrefix+key).Bytes()
	if err == nil {
		return val, true, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return c.inner.Load(ctx, key)
	}

	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warn("cache generation read failed", zap.Error(err))
		return c.inner.Load(ctx, key)
	}

	val, ok, err := c.inner.Load(ctx, key)
	if err != nil || !ok {
		return val, ok, err
	}
	c.fill(ctx, key, val, gen)
	return val, true, nil
}

// fill caches val unless a commit moved the generation past gen.
func (c *Cache) fill(ctx context.Context, key string, val []byte, gen int64) {
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, cachePrefix+key, val, c.ttl)
			return nil
		})
		return err
	}, generationKey)
	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		c.log.Debug("cache fill skipped, value superseded", zap.String("key", key))
	default:
		c.log.Warn("cache fill failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Commit(ctx context.Context, entries map[string][]byte) error {
	keys := sortedKeys(entries)
	c.invalidate(ctx, keys)
	if err := c.inner.Commit(ctx, entries); err != nil {
		return err
	}
	c.advance(ctx, keys)
	return nil
}

func (c *Cache) cacheKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, cachePrefix+k)
	}
	return out
}

func (c *Cache) invalidate(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, c.cacheKeys(keys)...).Err(); err != nil {
		c.log.Error("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// advance bumps the generation and drops the keys in one transaction, so
// fills that read the inner store before the commit are rejected.
func (c *Cache) advance(ctx context.Context, keys []string) {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		if len(keys) > 0 {
			pipe.Del(ctx, c.cacheKeys(keys)...)
		}
		return nil
	})
	if err != nil {
		c.log.Error("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
