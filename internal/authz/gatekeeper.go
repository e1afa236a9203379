package authz

import (
	"context"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/pkg/api"
	"backoffice/pkg/contextkeys"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/service"
)

// PermissionChecker answers whether a user holds a dynamic permission claim.
// Implemented by the user claims service; consulted on every guarded request.
type PermissionChecker interface {
	HasUserClaim(ctx context.Context, userID uint64, permission Permission) (bool, error)
}

// Gatekeeper evaluates dynamic server permissions for the current user and
// the target route. Absence of the claim denies with 403; a missing identity
// denies with 401.
type Gatekeeper struct {
	checker PermissionChecker
	logger  *zap.Logger
}

func NewGatekeeper(checker PermissionChecker, logger *zap.Logger) *Gatekeeper {
	return &Gatekeeper{checker: checker, logger: logger}
}

// Require builds a route middleware enforcing the given permission value.
func (g *Gatekeeper) Require(permissionValue string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
			if !ok || userID == 0 {
				return api.ErrorResponse(c, apperrors.ErrUnauthorized)
			}

			// Admins bypass dynamic checks; roles come from the validated
			// access token, not a second query.
			if claims, ok := ctx.Value(contextkeys.ClaimsKey).(*service.AccessClaims); ok {
				if slices.Contains(claims.Roles, RoleAdmin) {
					return next(c)
				}
			}

			has, err := g.checker.HasUserClaim(ctx, userID, ServerPermission(permissionValue))
			if err != nil {
				g.logger.Error("permission check failed",
					zap.Uint64("userID", userID),
					zap.String("permission", permissionValue),
					zap.Error(err),
				)
				return api.ErrorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "permission check failed", err))
			}
			if !has {
				g.logger.Warn("dynamic permission denied",
					zap.Uint64("userID", userID),
					zap.String("permission", permissionValue),
					zap.String("route", c.Request().Method+" "+c.Path()),
				)
				return api.ErrorResponse(c, apperrors.ErrForbidden)
			}

			return next(c)
		}
	}
}

// RouteGuard registers guarded routes, recording each one in the discovery
// registry as it attaches the permission middleware.
type RouteGuard struct {
	group      *echo.Group
	gatekeeper *Gatekeeper
	registry   *Registry
	basePrefix string
}

func NewRouteGuard(group *echo.Group, gatekeeper *Gatekeeper, registry *Registry, basePrefix string) *RouteGuard {
	return &RouteGuard{
		group:      group,
		gatekeeper: gatekeeper,
		registry:   registry,
		basePrefix: basePrefix,
	}
}

func (rg *RouteGuard) GET(path string, h echo.HandlerFunc, permission string) {
	rg.add(http.MethodGet, path, h, permission)
}

func (rg *RouteGuard) POST(path string, h echo.HandlerFunc, permission string) {
	rg.add(http.MethodPost, path, h, permission)
}

func (rg *RouteGuard) PUT(path string, h echo.HandlerFunc, permission string) {
	rg.add(http.MethodPut, path, h, permission)
}

func (rg *RouteGuard) DELETE(path string, h echo.HandlerFunc, permission string) {
	rg.add(http.MethodDelete, path, h, permission)
}

func (rg *RouteGuard) add(method, path string, h echo.HandlerFunc, permission string) {
	rg.registry.Register(method, rg.basePrefix+path, permission)
	rg.group.Add(method, path, h, rg.gatekeeper.Require(permission))
}
