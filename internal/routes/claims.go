package routes

import (
	"backoffice/internal/authz"
	"backoffice/internal/controllers"
)

func runClaimsRouter(guard *authz.RouteGuard, ctrl *controllers.ClaimsController) {
	guard.GET("/users/:id/dynamic-claims", ctrl.GetUserClaims, authz.ClaimsManage)
	guard.PUT("/users/:id/dynamic-claims", ctrl.UpdateUserClaims, authz.ClaimsManage)
	guard.GET("/users/:id/secured-actions", ctrl.GetSecuredActions, authz.ClaimsManage)
}
