// Package cache keeps read-mostly reference data in redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/maxviazov/buddyfinder-service/internal/config"
	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	sportsKey   = "buddyfinder:sports"
	pingTimeout = 3 * time.Second
)

// NewClient connects to redis and verifies the connection once.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	logger.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("connected to redis")
	return rc, nil
}

// Sports caches the sports catalogue as a single JSON value.
type Sports struct {
	rc  redis.Cmdable
	ttl time.Duration
}

func NewSports(rc redis.Cmdable, ttl time.Duration) *Sports {
	return &Sports{rc: rc, ttl: ttl}
}

// GetSports reports ok=false on a cache miss.
func (s *Sports) GetSports(ctx context.Context) ([]model.Sport, bool, error) {
	raw, err := s.rc.Get(ctx, sportsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache: %w", err)
	}
	var out []model.Sport
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return out, true, nil
}

func (s *Sports) SetSports(ctx context.Context, sports []model.Sport) error {
	raw, err := json.Marshal(sports)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := s.rc.Set(ctx, sportsKey, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached catalogue.
func (s *Sports) Invalidate(ctx context.Context) error {
	return s.rc.Del(ctx, sportsKey).Err()
}
