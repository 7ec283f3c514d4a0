package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"badge-sync/internal/config"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultTTL = 600 * time.Second

var ErrUnavailable = errors.New("redis unavailable")

// Redis is a JSON cache that degrades to a no-op when the server cannot be reached.
// Lookups then report a miss and writes are dropped.
type Redis struct {
	client *redis.Client
	logger zerolog.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

func NewRedis(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) *Redis {
	logger = logger.With().Str("component", "cache").Logger()
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if !cfg.Enabled {
		return &Redis{logger: logger, ttl: ttl}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, bypassing cache")
		_ = client.Close()
		return &Redis{logger: logger, ttl: ttl}
	}

	return &Redis{client: client, logger: logger, ttl: ttl}
}

func (r *Redis) Available() bool {
	return !r.isUnavailable()
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn().Err(err).Msg("redis unavailable, bypassing cache")
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key. A non-positive ttl uses the configured default.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.isUnavailable() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// DeleteByPattern removes every key matching a SCAN glob. Individual delete failures are logged and skipped.
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if r.isUnavailable() {
		return 0, nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return 0, nil
	}

	deleted := 0
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil {
			r.logger.Error().Err(err).Str("key", k).Str("pattern", pattern).Msg("redis delete failed")
			continue
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		r.warnUnavailableOnce(err)
		return deleted, err
	}
	return deleted, nil
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}
