package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"backoffice/internal/entities"
	"backoffice/internal/repositories"
	"backoffice/pkg/config"
	"backoffice/pkg/security"
	"backoffice/pkg/service"
)

type TokenStoreServiceInterface interface {
	// AddUserToken persists the freshly issued token pair under SHA-256
	// fingerprints. sourceSerial carries the rotated-out refresh serial on the
	// refresh path and is empty on login.
	AddUserToken(ctx context.Context, tx pgx.Tx, user *entities.User, newSerial, accessToken string, sourceSerial string) error
	// FindToken resolves a presented refresh token to its live store row with
	// the owning user, or nil when the token is invalid, unknown or expired.
	FindToken(ctx context.Context, refreshTokenValue string) (*entities.UserToken, error)
	// RevokeUserBearerTokens removes either every live token of the user or
	// only the presented one, per AllowSignoutAllUserActiveClients.
	RevokeUserBearerTokens(ctx context.Context, userID uint64, refreshTokenValue string) error
	IsValidAccessToken(ctx context.Context, userID uint64, accessToken string) (bool, error)
	DeleteExpiredTokens(ctx context.Context, userID uint64) error
}

type TokenStoreService struct {
	tokenRepo    repositories.UserTokenRepositoryInterface
	tokenFactory service.TokenFactory
	cfg          config.BearerTokensConfig
	logger       *zap.Logger
}

func NewTokenStoreService(
	tokenRepo repositories.UserTokenRepositoryInterface,
	tokenFactory service.TokenFactory,
	cfg config.BearerTokensConfig,
	logger *zap.Logger,
) TokenStoreServiceInterface {
	return &TokenStoreService{
		tokenRepo:    tokenRepo,
		tokenFactory: tokenFactory,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *TokenStoreService) AddUserToken(ctx context.Context, tx pgx.Tx, user *entities.User, newSerial, accessToken, sourceSerial string) error {
	now := time.Now()
	token := &entities.UserToken{
		UserID:                user.ID,
		AccessTokenHash:       security.HashInput(accessToken),
		RefreshTokenIDHash:    security.HashInput(newSerial),
		AccessTokenExpiresAt:  now.Add(s.tokenFactory.AccessTokenTTL()),
		RefreshTokenExpiresAt: now.Add(s.tokenFactory.RefreshTokenTTL()),
	}
	if sourceSerial != "" {
		sourceHash := security.HashInput(sourceSerial)
		token.RefreshTokenIDHashSource.SetValid(sourceHash)
		// The rotated-out serial must stop resolving whatever the multi-login
		// policy says; otherwise the old refresh token keeps authenticating
		// alongside its replacement.
		if err := s.tokenRepo.DeleteTokenChainBySerialHash(ctx, tx, user.ID, sourceHash); err != nil {
			return err
		}
	}

	deleteOthers := !s.cfg.AllowMultipleLoginsFromTheSameUser
	return s.tokenRepo.AddUserToken(ctx, tx, token, deleteOthers)
}

func (s *TokenStoreService) FindToken(ctx context.Context, refreshTokenValue string) (*entities.UserToken, error) {
	serial := s.tokenFactory.GetRefreshTokenSerial(refreshTokenValue)
	if serial == "" {
		return nil, nil
	}

	serialHash := security.HashInput(serial)
	token, err := s.tokenRepo.FindTokenBySerialHash(ctx, serialHash)
	if err != nil {
		return nil, err
	}
	if token == nil {
		rotated, err := s.tokenRepo.WasSerialRotated(ctx, serialHash)
		if err != nil {
			return nil, err
		}
		if rotated {
			// A serial that was already exchanged is being replayed. Refuse it
			// but do not revoke the chain; clients retrying a refresh race
			// would otherwise lock themselves out.
			s.logger.Warn("rotated refresh token presented again",
				zap.String("serial_hash", serialHash))
		}
		return nil, nil
	}
	return token, nil
}

func (s *TokenStoreService) RevokeUserBearerTokens(ctx context.Context, userID uint64, refreshTokenValue string) error {
	if s.cfg.AllowSignoutAllUserActiveClients {
		return s.tokenRepo.DeleteTokensByUser(ctx, userID)
	}

	serial := s.tokenFactory.GetRefreshTokenSerial(refreshTokenValue)
	if serial == "" {
		return nil
	}
	return s.tokenRepo.DeleteTokenBySerialHash(ctx, userID, security.HashInput(serial))
}

func (s *TokenStoreService) IsValidAccessToken(ctx context.Context, userID uint64, accessToken string) (bool, error) {
	return s.tokenRepo.IsValidAccessTokenHash(ctx, userID, security.HashInput(accessToken))
}

func (s *TokenStoreService) DeleteExpiredTokens(ctx context.Context, userID uint64) error {
	return s.tokenRepo.DeleteExpiredTokens(ctx, userID)
}
