package cache

import (
	"context"
	"testing"
	"time"

	"github.com/idesignres/iisim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		_, client := testutil.NewMiniredisClient(t)
		cm := NewManager(client, "iisim:", 0)

		entry, err := cm.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Nil(t, entry)

		require.NoError(t, cm.Set(ctx, "abc", Entry{Industry: "cement", Script: "class cement:", Processes: 3}))

		entry, err = cm.Get(ctx, "abc")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, "cement", entry.Industry)
		assert.Equal(t, "class cement:", entry.Script)
		assert.Equal(t, 3, entry.Processes)

		val, err := client.Get(ctx, "iisim:build:abc").Result()
		require.NoError(t, err)
		assert.NotEmpty(t, val)
	})

	t.Run("invalidate", func(t *testing.T) {
		_, client := testutil.NewMiniredisClient(t)
		cm := NewManager(client, "iisim:", 0)

		require.NoError(t, cm.Set(ctx, "abc", Entry{Industry: "cement"}))
		require.NoError(t, cm.Invalidate(ctx, "abc"))

		entry, err := cm.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("expired entry", func(t *testing.T) {
		mr, client := testutil.NewMiniredisClient(t)
		cm := NewManager(client, "iisim:", time.Minute)

		require.NoError(t, cm.Set(ctx, "abc", Entry{Industry: "cement"}))
		mr.FastForward(2 * time.Minute)

		entry, err := cm.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("stale entry by timestamp", func(t *testing.T) {
		_, client := testutil.NewMiniredisClient(t)
		cm := NewManager(client, "iisim:", time.Hour)

		require.NoError(t, cm.Set(ctx, "abc", Entry{Industry: "cement", UpdatedAt: time.Now().Add(-2 * time.Hour)}))

		entry, err := cm.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("corrupt entry", func(t *testing.T) {
		mr, client := testutil.NewMiniredisClient(t)
		cm := NewManager(client, "iisim:", 0)

		require.NoError(t, mr.Set("iisim:build:abc", "{not json"))

		_, err := cm.Get(ctx, "abc")
		require.Error(t, err)
	})
}
