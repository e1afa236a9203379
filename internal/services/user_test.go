package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/internal/authz"
	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/pkg/security"
)

func userFixture() (*stubUserRepo, *stubTokenRepo, *stubCache, UserServiceInterface) {
	userRepo := newStubUserRepo()
	tokenRepo := newStubTokenRepo()
	cache := newStubCache()
	claimsService := NewUserClaimsService(newStubClaimRepo(), cache, stubTxManager{}, authz.NewRegistry(), zap.NewNop())
	svc := NewUserService(userRepo, tokenRepo, claimsService, stubTxManager{}, zap.NewNop())
	return userRepo, tokenRepo, cache, svc
}

func TestUserServiceCreateUser(t *testing.T) {
	ctx := context.Background()
	userRepo, _, _, svc := userFixture()

	user, err := svc.CreateUser(ctx, dto.CreateUserDTO{
		Username:  "jsmith",
		Password:  "correct horse",
		FirstName: "Jane",
		LastName:  "Smith",
		RoleIDs:   []uint64{2},
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	assert.Equal(t, "Jane Smith", user.DisplayName)
	assert.True(t, user.IsActive)
	require.Len(t, user.Roles, 1)
	assert.Equal(t, uint64(2), user.Roles[0].ID)

	stored := userRepo.users[user.ID]
	assert.True(t, security.VerifyPassword(stored.Password, "correct horse"))
	assert.NotEmpty(t, stored.SerialNumber)
}

func TestUserServiceUpdateUser(t *testing.T) {
	ctx := context.Background()
	userRepo, _, cache, svc := userFixture()
	userRepo.users[42] = &entities.User{
		ID:          42,
		Username:    "jsmith",
		FirstName:   "Jane",
		LastName:    "Smith",
		DisplayName: "Jane Smith",
		IsActive:    true,
	}
	cache.data[fmt.Sprintf("user_claims:%d", 42)] = "[]"

	user, err := svc.UpdateUser(ctx, 42, dto.UpdateUserDTO{
		FirstName: "Janet",
		LastName:  "Smith",
		RoleIDs:   []uint64{3},
	})
	require.NoError(t, err)
	assert.Equal(t, "Janet Smith", user.DisplayName)
	require.Len(t, user.Roles, 1)

	// Role changes invalidate the cached claim set.
	assert.NotContains(t, cache.data, fmt.Sprintf("user_claims:%d", 42))
}

func TestUserServiceSetActive(t *testing.T) {
	ctx := context.Background()
	userRepo, tokenRepo, _, svc := userFixture()
	userRepo.users[42] = &entities.User{ID: 42, Username: "jsmith", IsActive: true}
	tokenRepo.tokens["hash"] = &entities.UserToken{
		UserID:                42,
		RefreshTokenIDHash:    "hash",
		RefreshTokenExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, svc.SetActive(ctx, 42, false))
	assert.False(t, userRepo.users[42].IsActive)
	// Deactivation revokes the user's sessions immediately.
	assert.Empty(t, tokenRepo.tokens)

	require.NoError(t, svc.SetActive(ctx, 42, true))
	assert.True(t, userRepo.users[42].IsActive)
}
