package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"backoffice/internal/authz"
	"backoffice/internal/entities"
	"backoffice/internal/repositories"
)

const userClaimsCacheTTL = 5 * time.Minute

func userClaimsCacheKey(userID uint64) string {
	return fmt.Sprintf("user_claims:%d", userID)
}

type UserClaimsServiceInterface interface {
	// AddOrUpdateUserClaims reconciles the user's claims of one type to
	// exactly the given values; an empty slice clears the type.
	AddOrUpdateUserClaims(ctx context.Context, userID uint64, claimType string, values []string) error
	GetUserClaims(ctx context.Context, userID uint64) ([]entities.UserClaim, error)
	// GetClaimValues returns the values of one claim type, for embedding into
	// the dynamic-permissions token at issuance.
	GetClaimValues(ctx context.Context, userID uint64, claimType string) ([]string, error)
	HasUserClaim(ctx context.Context, userID uint64, claim authz.Permission) (bool, error)
	HasUserClaimType(ctx context.Context, userID uint64, claimType string) (bool, error)
	// GetSecuredActions pairs every discoverable dynamically-secured route
	// with whether the user currently holds its permission.
	GetSecuredActions(ctx context.Context, userID uint64) ([]SecuredActionStatus, error)
	// InvalidateUserClaimsCache drops the cached claim set; call after any
	// role or claim mutation for the user.
	InvalidateUserClaimsCache(ctx context.Context, userID uint64)
}

// SecuredActionStatus is one row of the secured-actions listing.
type SecuredActionStatus struct {
	authz.SecuredAction
	Granted bool `json:"granted"`
}

type UserClaimsService struct {
	claimRepo repositories.UserClaimRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	txManager repositories.TxManagerInterface
	registry  *authz.Registry
	logger    *zap.Logger
}

func NewUserClaimsService(
	claimRepo repositories.UserClaimRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	registry *authz.Registry,
	logger *zap.Logger,
) UserClaimsServiceInterface {
	return &UserClaimsService{
		claimRepo: claimRepo,
		cacheRepo: cacheRepo,
		txManager: txManager,
		registry:  registry,
		logger:    logger,
	}
}

func (s *UserClaimsService) AddOrUpdateUserClaims(ctx context.Context, userID uint64, claimType string, values []string) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.claimRepo.ReplaceUserClaimsOfType(ctx, tx, userID, claimType, values)
	})
	if err != nil {
		return err
	}

	s.InvalidateUserClaimsCache(ctx, userID)
	return nil
}

func (s *UserClaimsService) GetUserClaims(ctx context.Context, userID uint64) ([]entities.UserClaim, error) {
	if cached, err := s.cacheRepo.Get(ctx, userClaimsCacheKey(userID)); err == nil && cached != "" {
		var claims []entities.UserClaim
		if err := json.Unmarshal([]byte(cached), &claims); err == nil {
			return claims, nil
		}
	}

	claims, err := s.claimRepo.GetUserClaims(ctx, userID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(claims); err == nil {
		if err := s.cacheRepo.Set(ctx, userClaimsCacheKey(userID), string(raw), userClaimsCacheTTL); err != nil {
			s.logger.Warn("failed to cache user claims", zap.Uint64("user_id", userID), zap.Error(err))
		}
	}
	return claims, nil
}

func (s *UserClaimsService) GetClaimValues(ctx context.Context, userID uint64, claimType string) ([]string, error) {
	claims, err := s.GetUserClaims(ctx, userID)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(claims))
	for _, c := range claims {
		if c.ClaimType == claimType {
			values = append(values, c.ClaimValue)
		}
	}
	return values, nil
}

// HasUserClaim answers from the cached claim set when present and falls back
// to a single EXISTS query. It satisfies authz.PermissionChecker.
func (s *UserClaimsService) HasUserClaim(ctx context.Context, userID uint64, claim authz.Permission) (bool, error) {
	if cached, err := s.cacheRepo.Get(ctx, userClaimsCacheKey(userID)); err == nil && cached != "" {
		var claims []entities.UserClaim
		if err := json.Unmarshal([]byte(cached), &claims); err == nil {
			for _, c := range claims {
				if c.ClaimType == claim.Type && c.ClaimValue == claim.Value {
					return true, nil
				}
			}
			return false, nil
		}
	}
	return s.claimRepo.HasUserClaim(ctx, userID, claim)
}

func (s *UserClaimsService) HasUserClaimType(ctx context.Context, userID uint64, claimType string) (bool, error) {
	return s.claimRepo.HasUserClaimType(ctx, userID, claimType)
}

func (s *UserClaimsService) GetSecuredActions(ctx context.Context, userID uint64) ([]SecuredActionStatus, error) {
	claims, err := s.GetUserClaims(ctx, userID)
	if err != nil {
		return nil, err
	}

	held := make(map[string]bool, len(claims))
	for _, c := range claims {
		if c.ClaimType == authz.DynamicServerPermission {
			held[c.ClaimValue] = true
		}
	}

	actions := s.registry.DynamicallySecuredActions()
	statuses := make([]SecuredActionStatus, 0, len(actions))
	for _, action := range actions {
		statuses = append(statuses, SecuredActionStatus{
			SecuredAction: action,
			Granted:       held[action.Permission],
		})
	}
	return statuses, nil
}

func (s *UserClaimsService) InvalidateUserClaimsCache(ctx context.Context, userID uint64) {
	if err := s.cacheRepo.Del(ctx, userClaimsCacheKey(userID)); err != nil {
		s.logger.Warn("failed to invalidate user claims cache",
			zap.Uint64("user_id", userID), zap.Error(err))
	}
}
