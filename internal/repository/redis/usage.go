package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
)

const usageKeyPrefix = "usage:"

// UsageRepository implements repository.UsageRepository using Redis.
// Snapshots carry a TTL so a stale snapshot eventually forces a refetch
// even if no auth state change happens.
type UsageRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUsageRepository creates a new Redis-backed usage snapshot repository.
func NewUsageRepository(client *redis.Client, ttl time.Duration) *UsageRepository {
	return &UsageRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the usage snapshot for a user.
func (r *UsageRepository) Get(ctx context.Context, userID string) (*domain.UsageSnapshot, error) {
	data, err := r.client.Get(ctx, usageKeyPrefix+userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("usage snapshot", userID)
		}
		return nil, fmt.Errorf("redis get usage: %w", err)
	}

	var snapshot domain.UsageSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal usage snapshot: %w", err)
	}

	return &snapshot, nil
}

// Save replaces the usage snapshot for a user wholesale.
func (r *UsageRepository) Save(ctx context.Context, userID string, snapshot *domain.UsageSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal usage snapshot: %w", err)
	}

	if err := r.client.Set(ctx, usageKeyPrefix+userID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set usage: %w", err)
	}

	return nil
}

// Delete removes the usage snapshot for a user (on logout).
func (r *UsageRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, usageKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del usage: %w", err)
	}

	return nil
}
