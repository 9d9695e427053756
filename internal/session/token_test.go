package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	mgr := NewTokenManager(testSecret, time.Hour, "storefront")

	token, err := mgr.Generate("sess-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sessionID, err := mgr.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-123", sessionID)
}

func TestTokenManager_Expired(t *testing.T) {
	mgr := NewTokenManager(testSecret, -time.Minute, "storefront")

	token, err := mgr.Generate("sess-123")
	require.NoError(t, err)

	_, err = mgr.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	mgr := NewTokenManager(testSecret, time.Hour, "storefront")
	other := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour, "storefront")

	token, err := mgr.Generate("sess-123")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	mgr := NewTokenManager(testSecret, time.Hour, "storefront")
	other := NewTokenManager(testSecret, time.Hour, "someone-else")

	token, err := mgr.Generate("sess-123")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenManager_Malformed(t *testing.T) {
	mgr := NewTokenManager(testSecret, time.Hour, "storefront")

	_, err := mgr.Validate("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
