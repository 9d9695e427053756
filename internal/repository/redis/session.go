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

const sessionKeyPrefix = "session:"

// SessionRepository implements repository.SessionRepository using Redis.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a new Redis-backed session repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a session by ID.
func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("session", id)
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

// Save persists a session with the configured TTL. Called both on login and
// after a token refresh rotates the upstream credential pair.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}

	return nil
}

// Delete removes a session by ID.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}

	return nil
}
