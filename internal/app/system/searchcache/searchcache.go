// internal/app/system/searchcache/searchcache.go
//
// Package searchcache memoizes public property search responses in Redis.
//
// Keys hash the normalized query parameters together with a generation
// number. Any listing write bumps the generation, which orphans every cached
// page at once; orphans expire by TTL. A nil *Cache is valid and caches
// nothing, so callers need no branches when Redis is not configured.
package searchcache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix     = "estatehub:properties:search"
	generationKey = "estatehub:properties:generation"
)

// Cache wraps a Redis client.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration, logger *zap.Logger) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{rdb: rdb, ttl: ttl, log: logger}, nil
}

// QueryKey builds a stable key from params: sorted "k=v" pairs, md5-hashed.
// Empty values are dropped so "?city=" and no city share an entry.
func QueryKey(generation int64, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(":")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(params[k])
	}
	sum := md5.Sum([]byte(b.String()))
	return fmt.Sprintf("%s:g%d:%s", keyPrefix, generation, hex.EncodeToString(sum[:]))
}

func (c *Cache) generation(ctx context.Context) (int64, error) {
	n, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Get loads a cached response into dst. It also returns the generation the
// lookup ran under; pass it to Set so a page computed before a concurrent
// Invalidate lands under the orphaned generation. gen is -1 when the
// generation could not be read, and Set then stores nothing.
func (c *Cache) Get(ctx context.Context, params map[string]string, dst any) (hit bool, gen int64) {
	if c == nil {
		return false, -1
	}
	gen, err := c.generation(ctx)
	if err != nil {
		c.log.Warn("search cache: read generation", zap.Error(err))
		return false, -1
	}
	raw, err := c.rdb.Get(ctx, QueryKey(gen, params)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("search cache: get", zap.Error(err))
		}
		return false, gen
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn("search cache: decode", zap.Error(err))
		return false, gen
	}
	return true, gen
}

// Set stores v under params at generation gen for the cache TTL.
func (c *Cache) Set(ctx context.Context, gen int64, params map[string]string, v any) {
	if c == nil || gen < 0 {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("search cache: encode", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, QueryKey(gen, params), raw, c.ttl).Err(); err != nil {
		c.log.Warn("search cache: set", zap.Error(err))
	}
}

// Invalidate drops every cached search by bumping the generation.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		c.log.Warn("search cache: invalidate", zap.Error(err))
	}
}

// Close releases the Redis connection pool.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
