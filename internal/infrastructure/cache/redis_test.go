package cache

import (
	"context"
	"testing"
	"time"

	"badge-sync/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_DisabledBypasses(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{Enabled: false}, zerolog.Nop())
	assert.False(t, r.Available())
	assert.ErrorIs(t, r.Ping(context.Background()), ErrUnavailable)

	var out map[string]string
	ok, err := r.GetJSON(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.SetJSON(context.Background(), "k", map[string]string{"a": "b"}, time.Minute))
	require.NoError(t, r.Delete(context.Background(), "k"))

	n, err := r.DeleteByPattern(context.Background(), "predict:*")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, r.Close())
}

func TestRedis_UnreachableServerBypasses(t *testing.T) {
	cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: "1", TTL: time.Second}
	r := NewRedis(context.Background(), cfg, zerolog.Nop())
	assert.False(t, r.Available())

	ok, err := r.GetJSON(context.Background(), "k", &struct{}{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	assert.False(t, r.Available())
	assert.NoError(t, r.SetJSON(context.Background(), "k", 1, 0))
}
