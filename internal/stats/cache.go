package stats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrCacheMiss reports that no cached report exists under the key.
var ErrCacheMiss = errors.New("cache miss")

// KVStore abstracts the cache backend so tests can swap Redis for an
// in-memory fake.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisKVStore is the go-redis backed KVStore.
type RedisKVStore struct {
	client *redis.Client
}

func NewRedisKVStore(client *redis.Client) *RedisKVStore {
	return &RedisKVStore{client: client}
}

func (r *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKVStore) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Cache keeps the last computed report per journal key so the stats screen
// does not recompute on every open. A cache failure is only ever a miss:
// the report is recomputed, never withheld.
type Cache struct {
	kv  KVStore
	ttl time.Duration
	log *zap.Logger
}

func NewCache(kv KVStore, ttl time.Duration, log *zap.Logger) *Cache {
	return &Cache{kv: kv, ttl: ttl, log: log}
}

func cacheKey(journalKey string) string {
	return "dreamlog:stats:" + journalKey
}

// Get returns the cached report for journalKey, or ok=false on miss or error.
func (c *Cache) Get(ctx context.Context, journalKey string) (*Report, bool) {
	raw, err := c.kv.Get(ctx, cacheKey(journalKey))
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.log.Warn("stats cache read failed", zap.String("key", journalKey), zap.Error(err))
		}
		return nil, false
	}

	var rep Report
	if err := json.Unmarshal([]byte(raw), &rep); err != nil {
		c.log.Warn("stats cache entry does not parse", zap.String("key", journalKey), zap.Error(err))
		return nil, false
	}
	return &rep, true
}

// Put stores a freshly computed report.
func (c *Cache) Put(ctx context.Context, journalKey string, rep Report) {
	raw, err := json.Marshal(rep)
	if err != nil {
		c.log.Warn("stats report does not marshal", zap.Error(err))
		return
	}
	if err := c.kv.Set(ctx, cacheKey(journalKey), string(raw), c.ttl); err != nil {
		c.log.Warn("stats cache write failed", zap.String("key", journalKey), zap.Error(err))
	}
}

// Invalidate drops the cached report after any journal mutation.
func (c *Cache) Invalidate(ctx context.Context, journalKey string) {
	if err := c.kv.Del(ctx, cacheKey(journalKey)); err != nil {
		c.log.Warn("stats cache invalidation failed", zap.String("key", journalKey), zap.Error(err))
	}
}
