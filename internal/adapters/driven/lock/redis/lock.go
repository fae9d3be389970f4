// Package redis provides an EnrichmentLock shared by every process that
// talks to the same Redis, so one media item is enriched at most once at a
// time across replicas.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/domain"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driven"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
)

// Ensure Lock implements the interface.
var _ driven.EnrichmentLock = (*Lock)(nil)

// Default configuration values.
const (
	DefaultAddr      = "localhost:6379"
	DefaultTTL       = 5 * time.Minute
	DefaultKeyPrefix = "bonglore:enrich:"

	releaseTimeout = 5 * time.Second
)

// releaseScript deletes the key only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Config holds Redis lock settings.
type Config struct {
	Addr     string
	Password string
	DB       int

	// TTL bounds how long a crashed holder blocks the item.
	TTL time.Duration

	// KeyPrefix namespaces lock keys (default: bonglore:enrich:).
	KeyPrefix string
}

// Lock is an EnrichmentLock backed by Redis SET NX.
type Lock struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewLock creates a Redis lock and verifies the connection.
func NewLock(ctx context.Context, cfg Config) (*Lock, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 2 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: connecting to %s: %w", cfg.Addr, err)
	}

	return &Lock{client: client, ttl: cfg.TTL, prefix: cfg.KeyPrefix}, nil
}

// Acquire claims the marker for mediaID.
func (l *Lock) Acquire(ctx context.Context, mediaID string) (func(), error) {
	key := l.key(mediaID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: acquiring %s: %w", key, err)
	}
	if !ok {
		return nil, domain.ErrEnrichmentInProgress
	}

	return func() {
		// The caller's context may already be cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			logger.Warn("redis: releasing %s: %v", key, err)
		}
	}, nil
}

// Close closes the Redis client.
func (l *Lock) Close() error {
	return l.client.Close()
}

func (l *Lock) key(mediaID string) string {
	return l.prefix + mediaID
}
