package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewWithClient(rdb, zap.NewNop())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "sportfolio:approvals:pending", Key("approvals", "pending"))
	assert.Equal(t, "sportfolio:memberships:org-1:status=", Key("memberships", "org-1", "status="))
}

func TestGetSetJSON(t *testing.T) {
	_, c := setupTestCache(t)
	ctx := context.Background()

	type row struct {
		ID    string `json:"id"`
		Count int    `json:"count"`
	}

	key := Key("approvals", "pending", "limit=50")

	var miss []row
	assert.False(t, c.GetJSON(ctx, key, &miss))

	c.SetJSON(ctx, key, []row{{ID: "a", Count: 2}}, time.Minute)

	var hit []row
	require.True(t, c.GetJSON(ctx, key, &hit))
	require.Len(t, hit, 1)
	assert.Equal(t, "a", hit[0].ID)
	assert.Equal(t, 2, hit[0].Count)
}

func TestInvalidateDeletesByPrefix(t *testing.T) {
	_, c := setupTestCache(t)
	ctx := context.Background()

	c.SetJSON(ctx, Key("memberships", "org-1", "limit=50"), "a", time.Minute)
	c.SetJSON(ctx, Key("memberships", "org-1", "limit=100"), "b", time.Minute)
	c.SetJSON(ctx, Key("memberships", "org-2", "limit=50"), "c", time.Minute)

	c.Invalidate(ctx, "memberships", "org-1")

	var out string
	assert.False(t, c.GetJSON(ctx, Key("memberships", "org-1", "limit=50"), &out))
	assert.False(t, c.GetJSON(ctx, Key("memberships", "org-1", "limit=100"), &out))
	assert.True(t, c.GetJSON(ctx, Key("memberships", "org-2", "limit=50"), &out))
	assert.Equal(t, "c", out)
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	assert.NotPanics(t, func() {
		c.SetJSON(ctx, "k", "v", time.Minute)
		c.Invalidate(ctx, "k")
		assert.NoError(t, c.Ping(ctx))
		assert.NoError(t, c.Close())

		var out string
		assert.False(t, c.GetJSON(ctx, "k", &out))
	})
}

func TestSetJSONRespectsTTL(t *testing.T) {
	mr, c := setupTestCache(t)
	ctx := context.Background()

	key := Key("approvals", "pending")
	c.SetJSON(ctx, key, "v", 30*time.Second)

	mr.FastForward(31 * time.Second)

	var out string
	assert.False(t, c.GetJSON(ctx, key, &out))
}
