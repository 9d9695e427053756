package repository

import (
	"context"

	"github.com/rafascerqueira/v-storefront/internal/domain"
)

// CartRepository persists catalog-session carts. A cart lives exactly as
// long as its catalog session; expiry is enforced with a storage TTL.
type CartRepository interface {
	// Get retrieves the cart for a catalog session ID.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart for a catalog session ID.
	Delete(ctx context.Context, sessionID string) error
}

// SessionRepository persists back-office sessions and their upstream
// credential pairs.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// UsageRepository persists the per-account subscription usage snapshot.
// The snapshot is replaced wholesale on refresh.
type UsageRepository interface {
	Get(ctx context.Context, userID string) (*domain.UsageSnapshot, error)
	Save(ctx context.Context, userID string, snapshot *domain.UsageSnapshot) error
	Delete(ctx context.Context, userID string) error
}
