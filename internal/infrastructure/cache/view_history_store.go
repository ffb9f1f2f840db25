package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stylehub/backend/internal/domain/catalog"
)

// historyMaxLength caps the stored history per user. Reads are capped
// again by the caller; this only bounds storage.
const historyMaxLength = 100

// RedisViewHistory implements catalog.ViewHistory on a Redis list per
// user, most recent at the head. Suitable for distributed deployments
// where multiple instances share view state.
type RedisViewHistory struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisViewHistory creates a new Redis-backed view history
func NewRedisViewHistory(cfg RedisConfig) (*RedisViewHistory, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisViewHistory{
		client:    client,
		keyPrefix: "catalog:viewhistory:",
	}, nil
}

// NewRedisViewHistoryWithClient creates a store with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisViewHistoryWithClient(client *redis.Client, keyPrefix string) *RedisViewHistory {
	if keyPrefix == "" {
		keyPrefix = "catalog:viewhistory:"
	}
	return &RedisViewHistory{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// RecordView moves the variant to the head of the user's history.
// LREM first so a repeat view never duplicates the entry.
func (s *RedisViewHistory) RecordView(ctx context.Context, userID string, variantID uuid.UUID) error {
	key := s.keyPrefix + userID
	value := variantID.String()

	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, key, 0, value)
	pipe.LPush(ctx, key, value)
	pipe.LTrim(ctx, key, 0, historyMaxLength-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// RecentVariantIDs returns up to limit variant ids, most recent first
func (s *RedisViewHistory) RecentVariantIDs(ctx context.Context, userID string, limit int) ([]uuid.UUID, error) {
	key := s.keyPrefix + userID

	end := int64(-1)
	if limit > 0 {
		end = int64(limit) - 1
	}

	values, err := s.client.LRange(ctx, key, 0, end).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read view history: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			// Skip corrupt entries rather than failing the read.
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Close closes the Redis client
func (s *RedisViewHistory) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisViewHistory) GetClient() *redis.Client {
	return s.client
}

// Ensure RedisViewHistory implements ViewHistory
var _ catalog.ViewHistory = (*RedisViewHistory)(nil)
