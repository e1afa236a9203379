package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"backoffice/internal/repositories"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/service"
)

// lastLoginBumpInterval throttles the per-request last-login write.
const lastLoginBumpInterval = 5 * time.Minute

type TokenValidatorServiceInterface interface {
	// ValidateAccessToken runs the server-side checks an already
	// signature-valid access token still has to pass: the user must exist and
	// be active, the serial-number claim must match the user's current nonce,
	// the device fingerprint must match the caller, and the token hash must
	// still be present in the store. Every rejection is ErrUnauthorized.
	ValidateAccessToken(ctx context.Context, claims *service.AccessClaims, accessToken, currentDeviceHash string) error
}

type TokenValidatorService struct {
	userRepo   repositories.UserRepositoryInterface
	tokenStore TokenStoreServiceInterface
	logger     *zap.Logger
}

func NewTokenValidatorService(
	userRepo repositories.UserRepositoryInterface,
	tokenStore TokenStoreServiceInterface,
	logger *zap.Logger,
) TokenValidatorServiceInterface {
	return &TokenValidatorService{
		userRepo:   userRepo,
		tokenStore: tokenStore,
		logger:     logger,
	}
}

func (s *TokenValidatorService) ValidateAccessToken(ctx context.Context, claims *service.AccessClaims, accessToken, currentDeviceHash string) error {
	userID := claims.UserID()
	if userID == 0 {
		return apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return err
	}

	if !user.IsActive {
		return apperrors.ErrUnauthorized
	}
	if claims.SerialNumber != user.SerialNumber {
		// The nonce rotated (password change or forced sign-out); every token
		// minted before that is dead.
		return apperrors.ErrUnauthorized
	}
	if claims.DeviceHash != currentDeviceHash {
		s.logger.Warn("access token replayed from another device",
			zap.Uint64("user_id", userID))
		return apperrors.ErrUnauthorized
	}

	valid, err := s.tokenStore.IsValidAccessToken(ctx, userID, accessToken)
	if err != nil {
		return err
	}
	if !valid {
		return apperrors.ErrUnauthorized
	}

	s.bumpLastLogin(ctx, user.ID, user.LastLoggedIn)
	return nil
}

func (s *TokenValidatorService) bumpLastLogin(ctx context.Context, userID uint64, last *time.Time) {
	if last != nil && time.Since(*last) < lastLoginBumpInterval {
		return
	}
	if err := s.userRepo.UpdateLastLoggedIn(ctx, userID, time.Now()); err != nil {
		s.logger.Warn("failed to bump last login", zap.Uint64("user_id", userID), zap.Error(err))
	}
}
