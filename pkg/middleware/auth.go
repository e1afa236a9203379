package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/pkg/api"
	"backoffice/pkg/contextkeys"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/fingerprint"
	"backoffice/pkg/service"
)

// AccessTokenValidator is the server-side check an access token must pass
// after its signature verified; implemented by the token validator service.
type AccessTokenValidator interface {
	ValidateAccessToken(ctx context.Context, claims *service.AccessClaims, accessToken, currentDeviceHash string) error
}

type AuthMiddleware struct {
	tokenFactory service.TokenFactory
	validator    AccessTokenValidator
	detector     fingerprint.DeviceDetector
	logger       *zap.Logger
}

func NewAuthMiddleware(
	tokenFactory service.TokenFactory,
	validator AccessTokenValidator,
	detector fingerprint.DeviceDetector,
	logger *zap.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokenFactory: tokenFactory,
		validator:    validator,
		detector:     detector,
		logger:       logger,
	}
}

func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return api.ErrorResponse(c, apperrors.ErrEmptyAuthHeader)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return api.ErrorResponse(c, apperrors.ErrInvalidAuthHeader)
		}
		tokenString := parts[1]

		claims, err := m.tokenFactory.ParseAccessToken(tokenString)
		if err != nil {
			m.logger.Warn("access token rejected", zap.Error(err))
			return api.ErrorResponse(c, apperrors.ErrUnauthorized)
		}

		deviceHash := m.detector.RequestDeviceHash(c)
		if err := m.validator.ValidateAccessToken(c.Request().Context(), claims, tokenString, deviceHash); err != nil {
			m.logger.Warn("access token failed server-side validation",
				zap.String("subject", claims.Subject), zap.Error(err))
			return api.ErrorResponse(c, apperrors.ErrUnauthorized)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID())
		ctx = context.WithValue(ctx, contextkeys.ClaimsKey, claims)
		ctx = context.WithValue(ctx, contextkeys.DeviceHashKey, deviceHash)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
