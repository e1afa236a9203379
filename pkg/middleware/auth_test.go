package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/pkg/config"
	"backoffice/pkg/contextkeys"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/fingerprint"
	"backoffice/pkg/service"
)

// okValidator accepts everything; used when the test targets header parsing.
type okValidator struct{}

func (okValidator) ValidateAccessToken(ctx context.Context, claims *service.AccessClaims, accessToken, currentDeviceHash string) error {
	return nil
}

// rejectValidator refuses everything with ErrUnauthorized.
type rejectValidator struct{}

func (rejectValidator) ValidateAccessToken(ctx context.Context, claims *service.AccessClaims, accessToken, currentDeviceHash string) error {
	return apperrors.ErrUnauthorized
}

// captureValidator records what reached the server-side check.
type captureValidator struct {
	claims     *service.AccessClaims
	token      string
	deviceHash string
}

func (v *captureValidator) ValidateAccessToken(ctx context.Context, claims *service.AccessClaims, accessToken, currentDeviceHash string) error {
	v.claims = claims
	v.token = accessToken
	v.deviceHash = currentDeviceHash
	return nil
}

func testFactory(t *testing.T) service.TokenFactory {
	t.Helper()
	return service.NewTokenFactory(config.BearerTokensConfig{
		Key:                           "0123456789abcdef0123456789abcdef",
		Issuer:                        "backoffice-test",
		Audience:                      "backoffice-test",
		AccessTokenExpirationMinutes:  1,
		RefreshTokenExpirationMinutes: 2,
	}, zap.NewNop())
}

func invoke(t *testing.T, mw *AuthMiddleware, authHeader, deviceID string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("User-Agent", "test-agent")
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	if deviceID != "" {
		req.Header.Set(fingerprint.DeviceIDHeader, deviceID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw.Auth(next)(c)
	require.NoError(t, err)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	factory := testFactory(t)
	detector := fingerprint.NewDeviceDetector()

	issue := func(t *testing.T, deviceHash string) *service.JwtTokensData {
		t.Helper()
		tokens, err := factory.CreateJwtTokens(service.UserIdentity{
			ID:           42,
			Username:     "jsmith",
			DisplayName:  "Jane Smith",
			SerialNumber: "serial-1",
		}, []string{"Operator"}, nil, deviceHash)
		require.NoError(t, err)
		return tokens
	}

	t.Run("missing header is rejected before parsing", func(t *testing.T) {
		mw := NewAuthMiddleware(factory, okValidator{}, detector, zap.NewNop())
		rec := invoke(t, mw, "", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		mw := NewAuthMiddleware(factory, okValidator{}, detector, zap.NewNop())
		for _, header := range []string{"Bearer", "Basic abc", "Bearer a b"} {
			rec := invoke(t, mw, header, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		}
	})

	t.Run("unparseable token is rejected", func(t *testing.T) {
		mw := NewAuthMiddleware(factory, okValidator{}, detector, zap.NewNop())
		rec := invoke(t, mw, "Bearer not-a-jwt", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("server-side rejection maps to 401", func(t *testing.T) {
		mw := NewAuthMiddleware(factory, rejectValidator{}, detector, zap.NewNop())
		tokens := issue(t, detector.DeviceHash("test-agent", "device-1"))
		rec := invoke(t, mw, "Bearer "+tokens.AccessToken, "device-1", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches the handler with identity on the context", func(t *testing.T) {
		validator := &captureValidator{}
		mw := NewAuthMiddleware(factory, validator, detector, zap.NewNop())
		tokens := issue(t, detector.DeviceHash("test-agent", "device-1"))

		var gotUserID uint64
		var gotClaims *service.AccessClaims
		next := func(c echo.Context) error {
			ctx := c.Request().Context()
			gotUserID, _ = ctx.Value(contextkeys.UserIDKey).(uint64)
			gotClaims, _ = ctx.Value(contextkeys.ClaimsKey).(*service.AccessClaims)
			return c.NoContent(http.StatusOK)
		}

		rec := invoke(t, mw, "Bearer "+tokens.AccessToken, "device-1", next)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint64(42), gotUserID)
		require.NotNil(t, gotClaims)
		assert.Equal(t, "jsmith", gotClaims.Username)

		// The middleware passed the raw token and the caller's fingerprint on
		// to the server-side check.
		assert.Equal(t, tokens.AccessToken, validator.token)
		assert.Equal(t, detector.DeviceHash("test-agent", "device-1"), validator.deviceHash)
	})

	t.Run("case-insensitive bearer scheme is accepted", func(t *testing.T) {
		mw := NewAuthMiddleware(factory, okValidator{}, detector, zap.NewNop())
		tokens := issue(t, detector.DeviceHash("test-agent", ""))
		rec := invoke(t, mw, "bearer "+tokens.AccessToken, "", func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
