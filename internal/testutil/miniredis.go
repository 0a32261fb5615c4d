package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// NewMiniredis starts an in-memory Redis that lives until the test ends
func NewMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	return miniredis.RunT(t)
}

// NewMiniredisOptions starts an in-memory Redis and returns the client options
// pointing at it
func NewMiniredisOptions(t *testing.T) (*miniredis.Miniredis, *redis.Options) {
	t.Helper()

	mr := NewMiniredis(t)

	return mr, &redis.Options{Addr: mr.Addr()}
}

// NewMiniredisClient starts an in-memory Redis with a connected client, closing
// the client when the test ends
func NewMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, opt := NewMiniredisOptions(t)
	client := redis.NewClient(opt)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return mr, client
}
