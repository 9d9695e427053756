package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafascerqueira/v-storefront/internal/domain"
	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
)

func testSession(id string) *domain.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Session{
		ID:           id,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User: domain.User{
			ID:    "user-1",
			Name:  "Maria Souza",
			Email: "maria@example.com",
			Role:  domain.RoleSeller,
			Plan:  domain.PlanPro,
		},
		CreatedAt: now,
		ExpiresAt: now.Add(8 * time.Hour),
	}
}

func TestSessionRepository_SaveAndGet(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewSessionRepository(client, 8*time.Hour)
	ctx := context.Background()

	session := testSession("sess-1")
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, session.AccessToken, got.AccessToken)
	assert.Equal(t, session.RefreshToken, got.RefreshToken)
	assert.Equal(t, domain.RoleSeller, got.User.Role)
}

func TestSessionRepository_SaveRotatesTokens(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewSessionRepository(client, 8*time.Hour)
	ctx := context.Background()

	session := testSession("sess-1")
	require.NoError(t, repo.Save(ctx, session))

	session.AccessToken = "rotated-access"
	session.RefreshToken = "rotated-refresh"
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "rotated-access", got.AccessToken)
	assert.Equal(t, "rotated-refresh", got.RefreshToken)
}

func TestSessionRepository_GetNotFound(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewSessionRepository(client, 8*time.Hour)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionRepository_Delete(t *testing.T) {
	_, client := setupRedis(t)
	repo := NewSessionRepository(client, 8*time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSession("sess-1")))
	require.NoError(t, repo.Delete(ctx, "sess-1"))

	_, err := repo.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
