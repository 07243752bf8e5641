package cache

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/maxviazov/buddyfinder-service/internal/config"
	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only when a redis instance is provided through APP_REDIS_ADDR.
func TestSports_RoundTrip(t *testing.T) {
	addr := os.Getenv("APP_REDIS_ADDR")
	if addr == "" {
		t.Skip("APP_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rc, err := NewClient(ctx, config.RedisConfig{Addr: addr, DB: 15}, zerolog.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	c := NewSports(rc, time.Minute)
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.GetSports(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	in := []model.Sport{{ID: 1, Name: "running"}, {ID: 8, Name: "tennis"}}
	require.NoError(t, c.SetSports(ctx, in))

	out, ok, err := c.GetSports(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)

	ttl, err := rc.TTL(ctx, sportsKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, zerolog.New(io.Discard))
	assert.Error(t, err)
}
