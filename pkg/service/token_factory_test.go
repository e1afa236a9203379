package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/pkg/config"
)

func testBearerConfig() config.BearerTokensConfig {
	return config.BearerTokensConfig{
		Key:                           strings.Repeat("0123456789abcdef", 4),
		Issuer:                        "https://backoffice.test",
		Audience:                      "any",
		AccessTokenExpirationMinutes:  2,
		RefreshTokenExpirationMinutes: 60,
	}
}

func testIdentity() UserIdentity {
	return UserIdentity{
		ID:           42,
		Username:     gofakeit.Username(),
		DisplayName:  gofakeit.Name(),
		SerialNumber: "serial-1",
	}
}

func TestCreateJwtTokens(t *testing.T) {
	factory := NewTokenFactory(testBearerConfig(), zap.NewNop())
	user := testIdentity()

	result, err := factory.CreateJwtTokens(user, []string{"Admin", "Operator"}, []string{"users:view"}, "device-hash-1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEmpty(t, result.DynamicPermissionsToken)
	assert.Len(t, result.RefreshTokenSerial, 32)

	claims, err := factory.ParseAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID())
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.DisplayName, claims.DisplayName)
	assert.Equal(t, user.SerialNumber, claims.SerialNumber)
	assert.Equal(t, "device-hash-1", claims.DeviceHash)
	assert.ElementsMatch(t, []string{"Admin", "Operator"}, claims.Roles, "exactly one role claim per assigned role")
	assert.NotEmpty(t, claims.ID, "jti must be set")
}

func TestRefreshTokenSerialRoundTrip(t *testing.T) {
	factory := NewTokenFactory(testBearerConfig(), zap.NewNop())

	result, err := factory.CreateJwtTokens(testIdentity(), nil, nil, "device-hash-1")
	require.NoError(t, err)

	serial := factory.GetRefreshTokenSerial(result.RefreshToken)
	assert.Equal(t, result.RefreshTokenSerial, serial)
}

func TestGetRefreshTokenSerialFailures(t *testing.T) {
	cfg := testBearerConfig()
	factory := NewTokenFactory(cfg, zap.NewNop())

	t.Run("empty value", func(t *testing.T) {
		assert.Empty(t, factory.GetRefreshTokenSerial(""))
	})

	t.Run("garbage value", func(t *testing.T) {
		assert.Empty(t, factory.GetRefreshTokenSerial("not.a.jwt"))
	})

	t.Run("wrong signing key", func(t *testing.T) {
		otherCfg := cfg
		otherCfg.Key = strings.Repeat("f", 64)
		other := NewTokenFactory(otherCfg, zap.NewNop())

		result, err := other.CreateJwtTokens(testIdentity(), nil, nil, "d")
		require.NoError(t, err)
		assert.Empty(t, factory.GetRefreshTokenSerial(result.RefreshToken))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		otherCfg := cfg
		otherCfg.Issuer = "https://someone-else.test"
		other := NewTokenFactory(otherCfg, zap.NewNop())

		result, err := other.CreateJwtTokens(testIdentity(), nil, nil, "d")
		require.NoError(t, err)
		assert.Empty(t, factory.GetRefreshTokenSerial(result.RefreshToken))
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		result, err := factory.CreateJwtTokens(testIdentity(), nil, nil, "d")
		require.NoError(t, err)
		assert.Empty(t, factory.GetRefreshTokenSerial(result.AccessToken), "access tokens carry no serial claim")
	})
}

func TestParseAccessTokenFailures(t *testing.T) {
	factory := NewTokenFactory(testBearerConfig(), zap.NewNop())

	t.Run("garbage", func(t *testing.T) {
		_, err := factory.ParseAccessToken("garbage")
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		cfg := testBearerConfig()
		now := time.Now().Add(-time.Hour)
		claims := &AccessClaims{
			Username: "old",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    cfg.Issuer,
				Audience:  jwt.ClaimStrings{cfg.Audience},
				Subject:   "42",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.Key))
		require.NoError(t, err)

		_, err = factory.ParseAccessToken(signed)
		require.Error(t, err)
	})
}

func TestDynamicPermissionsToken(t *testing.T) {
	factory := NewTokenFactory(testBearerConfig(), zap.NewNop())

	result, err := factory.CreateJwtTokens(testIdentity(), nil, []string{"users:view", "messages:send"}, "d")
	require.NoError(t, err)

	token, _, err := jwt.NewParser().ParseUnverified(result.DynamicPermissionsToken, &PermissionClaims{})
	require.NoError(t, err)
	claims, ok := token.Claims.(*PermissionClaims)
	require.True(t, ok)

	var values []string
	require.NoError(t, json.Unmarshal([]byte(claims.Permissions), &values))
	assert.ElementsMatch(t, []string{"users:view", "messages:send"}, values)
	assert.Equal(t, "42", claims.Subject)
}
