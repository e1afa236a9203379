package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"backoffice/internal/authz"
	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/internal/repositories"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/security"
	"backoffice/pkg/service"
)

type AuthServiceInterface interface {
	// Login authenticates the credentials and issues the token triple. The
	// store row is committed before the tokens are returned.
	Login(ctx context.Context, payload dto.LoginDTO, deviceHash string) (*service.JwtTokensData, error)
	// RefreshToken exchanges a live refresh token for a new token triple,
	// recording the rotation chain. Any invalid input maps to ErrUnauthorized.
	RefreshToken(ctx context.Context, refreshTokenValue, deviceHash string) (*service.JwtTokensData, error)
	Logout(ctx context.Context, userID uint64, refreshTokenValue string) error
	// ChangePassword rotates the user's serial number, killing every
	// outstanding token, and drops the store rows.
	ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error
	GetProfile(ctx context.Context, userID uint64) (*entities.User, error)
}

type AuthService struct {
	userRepo      repositories.UserRepositoryInterface
	tokenRepo     repositories.UserTokenRepositoryInterface
	tokenFactory  service.TokenFactory
	tokenStore    TokenStoreServiceInterface
	claimsService UserClaimsServiceInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	tokenRepo repositories.UserTokenRepositoryInterface,
	tokenFactory service.TokenFactory,
	tokenStore TokenStoreServiceInterface,
	claimsService UserClaimsServiceInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		tokenFactory:  tokenFactory,
		tokenStore:    tokenStore,
		claimsService: claimsService,
		txManager:     txManager,
		logger:        logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO, deviceHash string) (*service.JwtTokensData, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !security.VerifyPassword(user.Password, payload.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", payload.Username))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.tokenStore.DeleteExpiredTokens(ctx, user.ID); err != nil {
		s.logger.Warn("failed to prune expired tokens", zap.Uint64("user_id", user.ID), zap.Error(err))
	}

	tokens, err := s.issueTokens(ctx, user, deviceHash, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLoggedIn(ctx, user.ID, now); err != nil {
		s.logger.Warn("failed to record login time", zap.Uint64("user_id", user.ID), zap.Error(err))
	}

	return tokens, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenValue, deviceHash string) (*service.JwtTokensData, error) {
	token, err := s.tokenStore.FindToken(ctx, refreshTokenValue)
	if err != nil {
		return nil, err
	}
	if token == nil || token.User == nil {
		return nil, apperrors.ErrUnauthorized
	}

	user := token.User
	if !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}

	sourceSerial := s.tokenFactory.GetRefreshTokenSerial(refreshTokenValue)
	return s.issueTokens(ctx, user, deviceHash, sourceSerial)
}

// issueTokens mints the token triple and persists the store row inside one
// transaction; only a committed row is handed back to the caller.
func (s *AuthService) issueTokens(ctx context.Context, user *entities.User, deviceHash, sourceSerial string) (*service.JwtTokensData, error) {
	roles, err := s.userRepo.GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	roleNames := make([]string, 0, len(roles))
	for _, role := range roles {
		roleNames = append(roleNames, role.Name)
	}

	permissions, err := s.claimsService.GetClaimValues(ctx, user.ID, authz.DynamicServerPermission)
	if err != nil {
		return nil, err
	}

	identity := service.UserIdentity{
		ID:           user.ID,
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		SerialNumber: user.SerialNumber,
	}
	tokens, err := s.tokenFactory.CreateJwtTokens(identity, roleNames, permissions, deviceHash)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.tokenStore.AddUserToken(ctx, tx, user, tokens.RefreshTokenSerial, tokens.AccessToken, sourceSerial)
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uint64, refreshTokenValue string) error {
	return s.tokenStore.RevokeUserBearerTokens(ctx, userID, refreshTokenValue)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error {
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if !security.VerifyPassword(user.Password, payload.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	newHash, err := security.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, newHash, security.NewSecureSerial()); err != nil {
		return err
	}

	// The serial rotation already invalidates the JWTs; dropping the rows
	// keeps the store from holding dead entries.
	if err := s.tokenRepo.DeleteTokensByUser(ctx, userID); err != nil {
		s.logger.Warn("failed to drop tokens after password change",
			zap.Uint64("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint64) (*entities.User, error) {
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	roles, err := s.userRepo.GetUserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}
