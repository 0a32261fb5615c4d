// Package cache provides a Redis-backed build cache for compiled industries
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is a cached compilation result keyed by the digest of its inputs
type Entry struct {
	Industry  string        `json:"industry"` // short name of the industry
	Script    string        `json:"script"`
	Processes int           `json:"processes"`
	RunID     string        `json:"run_id"`
	UpdatedAt time.Time     `json:"updated_at"`
	TTL       time.Duration `json:"ttl"`
}

// Store is the build cache used by the compiler
type Store interface {
	// Get returns the entry stored for digest, or nil on a cache miss
	Get(ctx context.Context, digest string) (*Entry, error)
	// Set stores an entry for digest
	Set(ctx context.Context, digest string, entry Entry) error
	// Invalidate removes the entry stored for digest
	Invalidate(ctx context.Context, digest string) error
}

// Manager manages the Redis-based build cache
type Manager struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

var _ Store = (*Manager)(nil)

// NewManager creates a new cache manager instance. A zero ttl keeps entries forever.
func NewManager(redisClient *redis.Client, keyPrefix string, ttl time.Duration) *Manager {
	return &Manager{
		redisClient: redisClient,
		keyPrefix:   keyPrefix + "build:",
		ttl:         ttl,
	}
}

// Get retrieves a cached build from Redis
func (c *Manager) Get(ctx context.Context, digest string) (*Entry, error) {
	key := c.keyPrefix + digest

	data, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, err
	}

	// Check if expired
	if entry.TTL > 0 && time.Since(entry.UpdatedAt) > entry.TTL {
		_ = c.redisClient.Del(ctx, key)
		return nil, nil
	}

	return &entry, nil
}

// Set stores a build in the Redis cache
func (c *Manager) Set(ctx context.Context, digest string, entry Entry) error {
	key := c.keyPrefix + digest

	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now()
	}
	entry.TTL = c.ttl

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return c.redisClient.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate removes a build from the cache
func (c *Manager) Invalidate(ctx context.Context, digest string) error {
	key := c.keyPrefix + digest
	return c.redisClient.Del(ctx, key).Err()
}
