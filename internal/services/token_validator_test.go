package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/internal/entities"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/service"
)

func validatorFixture(t *testing.T) (*stubUserRepo, TokenStoreServiceInterface, TokenValidatorServiceInterface, *service.JwtTokensData) {
	t.Helper()
	cfg := testTokensConfig()
	factory := service.NewTokenFactory(cfg, zap.NewNop())

	userRepo := newStubUserRepo()
	userRepo.users[42] = &entities.User{
		ID:           42,
		Username:     "jsmith",
		SerialNumber: "serial-1",
		IsActive:     true,
	}

	tokenRepo := newStubTokenRepo()
	store := NewTokenStoreService(tokenRepo, factory, cfg, zap.NewNop())
	validator := NewTokenValidatorService(userRepo, store, zap.NewNop())

	tokens := issueTestTokens(t, factory)
	require.NoError(t, store.AddUserToken(context.Background(), nil, userRepo.users[42], tokens.RefreshTokenSerial, tokens.AccessToken, ""))

	return userRepo, store, validator, tokens
}

func TestValidateAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts a live token and bumps last login", func(t *testing.T) {
		userRepo, _, validator, tokens := validatorFixture(t)

		err := validator.ValidateAccessToken(ctx, tokens.Claims, tokens.AccessToken, "device-1")
		require.NoError(t, err)
		assert.Contains(t, userRepo.lastLogins, uint64(42))
	})

	t.Run("throttles the last-login bump", func(t *testing.T) {
		userRepo, _, validator, tokens := validatorFixture(t)
		recent := time.Now().Add(-time.Minute)
		userRepo.users[42].LastLoggedIn = &recent

		require.NoError(t, validator.ValidateAccessToken(ctx, tokens.Claims, tokens.AccessToken, "device-1"))
		assert.NotContains(t, userRepo.lastLogins, uint64(42))

		stale := time.Now().Add(-time.Hour)
		userRepo.users[42].LastLoggedIn = &stale
		require.NoError(t, validator.ValidateAccessToken(ctx, tokens.Claims, tokens.AccessToken, "device-1"))
		assert.Contains(t, userRepo.lastLogins, uint64(42))
	})

	t.Run("rejects a missing subject", func(t *testing.T) {
		_, _, validator, tokens := validatorFixture(t)
		claims := *tokens.Claims
		claims.Subject = ""

		err := validator.ValidateAccessToken(ctx, &claims, tokens.AccessToken, "device-1")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("rejects an unknown user", func(t *testing.T) {
		userRepo, _, validator, tokens := validatorFixture(t)
		delete(userRepo.users, 42)

		err := validator.ValidateAccessToken(ctx, tokens.Claims, tokens.AccessToken, "device-1")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("rejects a deactivated user", func(t *testing.T) {
		userRepo, _, validator, tokens := validatorFixture(t)
		userRepo.users[42].IsActive = false

		err := validator.ValidateAccessToken(ctx, tokens.Claims, tokens.AccessToken, "device-1")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("rejects a stale serial number", func(t *testing.T) {
		userRepo, _, validator, tokens := validatorFixture(t)
		userRepo.users[42].SerialNumber = "serial-2"

		err := validator.ValidateAccessToken(ctx, tokens.Claims, tokens.AccessToken, "device-1")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("rejects a device fingerprint mismatch", func(t *testing.T) {
		_, _, validator, tokens := validatorFixture(t)

		err := validator.ValidateAccessToken(ctx, tokens.Claims, tokens.AccessToken, "other-device")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("rejects an empty embedded device hash", func(t *testing.T) {
		_, _, validator, tokens := validatorFixture(t)
		claims := *tokens.Claims
		claims.DeviceHash = ""

		// An absent fingerprint must fail the comparison, not bypass it.
		err := validator.ValidateAccessToken(ctx, &claims, tokens.AccessToken, "device-1")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("rejects a token missing from the store", func(t *testing.T) {
		_, _, validator, _ := validatorFixture(t)

		// Signed by the same key and claims-valid, but never persisted.
		factory := service.NewTokenFactory(testTokensConfig(), zap.NewNop())
		fresh := issueTestTokens(t, factory)

		err := validator.ValidateAccessToken(ctx, fresh.Claims, fresh.AccessToken, "device-1")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
