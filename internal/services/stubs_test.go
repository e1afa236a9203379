package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"backoffice/internal/authz"
	"backoffice/internal/entities"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/types"
)

// stubTxManager runs the callback without a real transaction.
type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// stubUserRepo keeps users in a map keyed by id.
type stubUserRepo struct {
	users       map[uint64]*entities.User
	roles       map[uint64][]entities.Role
	lastLogins  map[uint64]time.Time
	passwordSet map[uint64]string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:       make(map[uint64]*entities.User),
		roles:       make(map[uint64][]entities.Role),
		lastLogins:  make(map[uint64]time.Time),
		passwordSet: make(map[uint64]string),
	}
}

func (s *stubUserRepo) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *stubUserRepo) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubUserRepo) GetUserRoles(ctx context.Context, userID uint64) ([]entities.Role, error) {
	return s.roles[userID], nil
}

func (s *stubUserRepo) UpdateLastLoggedIn(ctx context.Context, userID uint64, at time.Time) error {
	s.lastLogins[userID] = at
	return nil
}

func (s *stubUserRepo) UpdatePassword(ctx context.Context, userID uint64, newPasswordHash, newSerialNumber string) error {
	user, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.Password = newPasswordHash
	user.SerialNumber = newSerialNumber
	s.passwordSet[userID] = newPasswordHash
	return nil
}

func (s *stubUserRepo) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return nil, 0, nil
}

func (s *stubUserRepo) CreateUser(ctx context.Context, tx pgx.Tx, user *entities.User) (uint64, error) {
	id := uint64(len(s.users) + 1)
	clone := *user
	clone.ID = id
	s.users[id] = &clone
	return id, nil
}

func (s *stubUserRepo) UpdateUser(ctx context.Context, user *entities.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *stubUserRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	user, ok := s.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.IsActive = active
	return nil
}

func (s *stubUserRepo) ReplaceUserRoles(ctx context.Context, tx pgx.Tx, userID uint64, roleIDs []uint64) error {
	roles := make([]entities.Role, 0, len(roleIDs))
	for _, id := range roleIDs {
		roles = append(roles, entities.Role{ID: id, Name: fmt.Sprintf("role-%d", id)})
	}
	s.roles[userID] = roles
	return nil
}

// stubTokenRepo is an in-memory token store keyed by refresh serial hash.
type stubTokenRepo struct {
	tokens      map[string]*entities.UserToken
	rotatedFrom map[string]bool
	owners      map[uint64]*entities.User
	deletedUser uint64
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{
		tokens:      make(map[string]*entities.UserToken),
		rotatedFrom: make(map[string]bool),
		owners:      make(map[uint64]*entities.User),
	}
}

func (s *stubTokenRepo) AddUserToken(ctx context.Context, tx pgx.Tx, token *entities.UserToken, deleteOthers bool) error {
	if deleteOthers {
		for hash, existing := range s.tokens {
			if existing.UserID == token.UserID && hash != token.RefreshTokenIDHash {
				delete(s.tokens, hash)
			}
		}
	}
	if token.RefreshTokenIDHashSource.Valid {
		s.rotatedFrom[token.RefreshTokenIDHashSource.String] = true
	}
	s.tokens[token.RefreshTokenIDHash] = token
	return nil
}

func (s *stubTokenRepo) FindTokenBySerialHash(ctx context.Context, serialHash string) (*entities.UserToken, error) {
	token, ok := s.tokens[serialHash]
	if !ok || time.Now().After(token.RefreshTokenExpiresAt) {
		return nil, nil
	}
	token.User = s.owners[token.UserID]
	return token, nil
}

func (s *stubTokenRepo) WasSerialRotated(ctx context.Context, serialHash string) (bool, error) {
	return s.rotatedFrom[serialHash], nil
}

func (s *stubTokenRepo) IsValidAccessTokenHash(ctx context.Context, userID uint64, accessTokenHash string) (bool, error) {
	for _, token := range s.tokens {
		if token.UserID == userID && token.AccessTokenHash == accessTokenHash && time.Now().Before(token.AccessTokenExpiresAt) {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubTokenRepo) DeleteTokensByUser(ctx context.Context, userID uint64) error {
	s.deletedUser = userID
	for hash, token := range s.tokens {
		if token.UserID == userID {
			delete(s.tokens, hash)
		}
	}
	return nil
}

func (s *stubTokenRepo) DeleteTokenBySerialHash(ctx context.Context, userID uint64, serialHash string) error {
	delete(s.tokens, serialHash)
	return nil
}

func (s *stubTokenRepo) DeleteTokenChainBySerialHash(ctx context.Context, tx pgx.Tx, userID uint64, serialHash string) error {
	hash := serialHash
	for hash != "" {
		token, ok := s.tokens[hash]
		if !ok || token.UserID != userID {
			return nil
		}
		delete(s.tokens, hash)
		hash = ""
		if token.RefreshTokenIDHashSource.Valid {
			hash = token.RefreshTokenIDHashSource.String
		}
	}
	return nil
}

func (s *stubTokenRepo) DeleteExpiredTokens(ctx context.Context, userID uint64) error {
	for hash, token := range s.tokens {
		if token.UserID == userID && time.Now().After(token.RefreshTokenExpiresAt) {
			delete(s.tokens, hash)
		}
	}
	return nil
}

// stubClaimRepo holds claims per user.
type stubClaimRepo struct {
	claims map[uint64][]entities.UserClaim
}

func newStubClaimRepo() *stubClaimRepo {
	return &stubClaimRepo{claims: make(map[uint64][]entities.UserClaim)}
}

func (s *stubClaimRepo) GetClaims(ctx context.Context) ([]entities.UserClaim, error) {
	return nil, nil
}

func (s *stubClaimRepo) GetUserClaims(ctx context.Context, userID uint64) ([]entities.UserClaim, error) {
	return s.claims[userID], nil
}

func (s *stubClaimRepo) ReplaceUserClaimsOfType(ctx context.Context, tx pgx.Tx, userID uint64, claimType string, values []string) error {
	kept := make([]entities.UserClaim, 0)
	for _, c := range s.claims[userID] {
		if c.ClaimType != claimType {
			kept = append(kept, c)
		}
	}
	for _, v := range values {
		kept = append(kept, entities.UserClaim{ClaimType: claimType, ClaimValue: v})
	}
	s.claims[userID] = kept
	return nil
}

func (s *stubClaimRepo) HasUserClaim(ctx context.Context, userID uint64, claim authz.Permission) (bool, error) {
	for _, c := range s.claims[userID] {
		if c.ClaimType == claim.Type && c.ClaimValue == claim.Value {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubClaimRepo) HasUserClaimType(ctx context.Context, userID uint64, claimType string) (bool, error) {
	for _, c := range s.claims[userID] {
		if c.ClaimType == claimType {
			return true, nil
		}
	}
	return false, nil
}

// stubCache is a map-backed CacheRepositoryInterface.
type stubCache struct {
	data map[string]string
	dels []string
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string]string)}
}

func (s *stubCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	s.data[key] = value.(string)
	return nil
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := s.data[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (s *stubCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		s.dels = append(s.dels, key)
		delete(s.data, key)
	}
	return nil
}
