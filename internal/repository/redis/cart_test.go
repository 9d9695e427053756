package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func testCart(sessionID string) *domain.Cart {
	cart := domain.NewCart(sessionID)
	cart.AddItem(domain.CatalogProduct{
		ID:    "prod-1",
		Name:  "Café Torrado 500g",
		Price: 2490,
	}, 2)
	return cart
}

func TestCartRepository_SaveAndGet(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()

	cart := testCart("sess-1")
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, got.ID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "prod-1", got.Items[0].Product.ID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, int64(4980), got.TotalAmount())
}

func TestCartRepository_GetNotFound(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewCartRepository(client, time.Hour)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartRepository_SaveOverwrites(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()

	cart := testCart("sess-1")
	require.NoError(t, repo.Save(ctx, cart))

	cart.ClearItems()
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestCartRepository_Delete(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewCartRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testCart("sess-1")))
	require.NoError(t, repo.Delete(ctx, "sess-1"))

	_, err := repo.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// deleting again is a no-op
	assert.NoError(t, repo.Delete(ctx, "sess-1"))
}

func TestCartRepository_TTLExpiry(t *testing.T) {
	mr, client := setupRedis(t)
	repo := NewCartRepository(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testCart("sess-1")))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
