package authz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/pkg/contextkeys"
	"backoffice/pkg/service"
)

type stubChecker struct {
	granted map[Permission]bool
}

func (s *stubChecker) HasUserClaim(_ context.Context, _ uint64, p Permission) (bool, error) {
	return s.granted[p], nil
}

func TestPermissionString(t *testing.T) {
	p := ServerPermission(UsersView)
	assert.Equal(t, DynamicServerPermission, p.Type)
	assert.Equal(t, "DynamicServerPermission:users:view", p.String())
}

func TestRegistryDiscovery(t *testing.T) {
	registry := NewRegistry()
	registry.Register(http.MethodGet, "/api/users", UsersView)
	registry.Register(http.MethodPost, "/api/users", UsersCreate)
	registry.Register(http.MethodGet, "/api/users", UsersView) // re-registration is idempotent

	actions := registry.DynamicallySecuredActions()
	require.Len(t, actions, 2)
	assert.Equal(t, SecuredAction{HttpMethod: http.MethodGet, Path: "/api/users", Permission: UsersView}, actions[0])
	assert.Equal(t, SecuredAction{HttpMethod: http.MethodPost, Path: "/api/users", Permission: UsersCreate}, actions[1])
}

func requestWithIdentity(e *echo.Echo, userID uint64, roles []string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	ctx := req.Context()
	if userID != 0 {
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
		ctx = context.WithValue(ctx, contextkeys.ClaimsKey, &service.AccessClaims{Roles: roles})
	}
	return e.NewContext(req.WithContext(ctx), httptest.NewRecorder())
}

func TestGatekeeperRequire(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("grants when claim present", func(t *testing.T) {
		checker := &stubChecker{granted: map[Permission]bool{ServerPermission(UsersView): true}}
		g := NewGatekeeper(checker, zap.NewNop())
		c := requestWithIdentity(e, 7, nil)
		require.NoError(t, g.Require(UsersView)(ok)(c))
		assert.Equal(t, http.StatusOK, c.Response().Status)
	})

	t.Run("denies with 403 when claim absent", func(t *testing.T) {
		g := NewGatekeeper(&stubChecker{granted: map[Permission]bool{}}, zap.NewNop())
		c := requestWithIdentity(e, 7, nil)
		require.NoError(t, g.Require(UsersView)(ok)(c))
		assert.Equal(t, http.StatusForbidden, c.Response().Status)
	})

	t.Run("denies with 401 when identity missing", func(t *testing.T) {
		g := NewGatekeeper(&stubChecker{granted: map[Permission]bool{}}, zap.NewNop())
		c := requestWithIdentity(e, 0, nil)
		require.NoError(t, g.Require(UsersView)(ok)(c))
		assert.Equal(t, http.StatusUnauthorized, c.Response().Status)
	})

	t.Run("admin role bypasses the claim check", func(t *testing.T) {
		g := NewGatekeeper(&stubChecker{granted: map[Permission]bool{}}, zap.NewNop())
		c := requestWithIdentity(e, 7, []string{RoleAdmin})
		require.NoError(t, g.Require(UsersView)(ok)(c))
		assert.Equal(t, http.StatusOK, c.Response().Status)
	})
}

func TestRouteGuardRegistersActions(t *testing.T) {
	e := echo.New()
	registry := NewRegistry()
	g := NewGatekeeper(&stubChecker{granted: map[Permission]bool{}}, zap.NewNop())
	guard := NewRouteGuard(e.Group("/api"), g, registry, "/api")

	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	guard.GET("/users", ok, UsersView)
	guard.POST("/users", ok, UsersCreate)
	guard.PUT("/users/:id", ok, UsersUpdate)
	guard.DELETE("/users/:id", ok, UsersDelete)

	actions := registry.DynamicallySecuredActions()
	require.Len(t, actions, 4)
	for _, action := range actions {
		assert.Contains(t, action.Path, "/api/users")
	}
}
