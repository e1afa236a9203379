package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/internal/authz"
	"backoffice/internal/entities"
)

func claimsFixture() (*stubClaimRepo, *stubCache, *authz.Registry, UserClaimsServiceInterface) {
	claimRepo := newStubClaimRepo()
	cache := newStubCache()
	registry := authz.NewRegistry()
	svc := NewUserClaimsService(claimRepo, cache, stubTxManager{}, registry, zap.NewNop())
	return claimRepo, cache, registry, svc
}

func TestUserClaimsAddOrUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the values of one claim type", func(t *testing.T) {
		claimRepo, _, _, svc := claimsFixture()
		claimRepo.claims[42] = []entities.UserClaim{
			{ClaimType: authz.DynamicServerPermission, ClaimValue: "UsersView"},
			{ClaimType: "Department", ClaimValue: "Billing"},
		}

		err := svc.AddOrUpdateUserClaims(ctx, 42, authz.DynamicServerPermission, []string{"RolesView", "RolesManage"})
		require.NoError(t, err)

		values, err := svc.GetClaimValues(ctx, 42, authz.DynamicServerPermission)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"RolesView", "RolesManage"}, values)

		// Other claim types are untouched.
		values, err = svc.GetClaimValues(ctx, 42, "Department")
		require.NoError(t, err)
		assert.Equal(t, []string{"Billing"}, values)
	})

	t.Run("empty values clear the type", func(t *testing.T) {
		claimRepo, _, _, svc := claimsFixture()
		claimRepo.claims[42] = []entities.UserClaim{
			{ClaimType: authz.DynamicServerPermission, ClaimValue: "UsersView"},
		}

		require.NoError(t, svc.AddOrUpdateUserClaims(ctx, 42, authz.DynamicServerPermission, nil))

		values, err := svc.GetClaimValues(ctx, 42, authz.DynamicServerPermission)
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("invalidates the cached claim set", func(t *testing.T) {
		claimRepo, cache, _, svc := claimsFixture()
		claimRepo.claims[42] = []entities.UserClaim{
			{ClaimType: authz.DynamicServerPermission, ClaimValue: "UsersView"},
		}

		// Prime the cache, then mutate; the stale entry must be dropped.
		_, err := svc.GetUserClaims(ctx, 42)
		require.NoError(t, err)
		require.Contains(t, cache.data, fmt.Sprintf("user_claims:%d", 42))

		require.NoError(t, svc.AddOrUpdateUserClaims(ctx, 42, authz.DynamicServerPermission, []string{"RolesView"}))
		assert.NotContains(t, cache.data, fmt.Sprintf("user_claims:%d", 42))

		granted, err := svc.HasUserClaim(ctx, 42, authz.Permission{Type: authz.DynamicServerPermission, Value: "RolesView"})
		require.NoError(t, err)
		assert.True(t, granted)
	})
}

func TestUserClaimsHasUserClaim(t *testing.T) {
	ctx := context.Background()

	t.Run("answers from the cache when primed", func(t *testing.T) {
		claimRepo, _, _, svc := claimsFixture()
		claimRepo.claims[42] = []entities.UserClaim{
			{ClaimType: authz.DynamicServerPermission, ClaimValue: "UsersView"},
		}

		_, err := svc.GetUserClaims(ctx, 42)
		require.NoError(t, err)

		// A repo-level change invisible to the cache proves the cached set is
		// what answers.
		claimRepo.claims[42] = nil

		granted, err := svc.HasUserClaim(ctx, 42, authz.Permission{Type: authz.DynamicServerPermission, Value: "UsersView"})
		require.NoError(t, err)
		assert.True(t, granted)
	})

	t.Run("falls back to the repository on a cold cache", func(t *testing.T) {
		claimRepo, _, _, svc := claimsFixture()
		claimRepo.claims[42] = []entities.UserClaim{
			{ClaimType: authz.DynamicServerPermission, ClaimValue: "UsersView"},
		}

		granted, err := svc.HasUserClaim(ctx, 42, authz.Permission{Type: authz.DynamicServerPermission, Value: "UsersView"})
		require.NoError(t, err)
		assert.True(t, granted)

		granted, err = svc.HasUserClaim(ctx, 42, authz.Permission{Type: authz.DynamicServerPermission, Value: "UsersCreate"})
		require.NoError(t, err)
		assert.False(t, granted)
	})
}

func TestUserClaimsGetSecuredActions(t *testing.T) {
	ctx := context.Background()
	claimRepo, _, registry, svc := claimsFixture()

	registry.Register("GET", "/api/users", "UsersView")
	registry.Register("POST", "/api/users", "UsersCreate")

	claimRepo.claims[42] = []entities.UserClaim{
		{ClaimType: authz.DynamicServerPermission, ClaimValue: "UsersView"},
		// Non-permission claim types never grant an action.
		{ClaimType: "Department", ClaimValue: "UsersCreate"},
	}

	statuses, err := svc.GetSecuredActions(ctx, 42)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	byPermission := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		byPermission[s.Permission] = s.Granted
	}
	assert.True(t, byPermission["UsersView"])
	assert.False(t, byPermission["UsersCreate"])
}
