package routes

import (
	"backoffice/internal/authz"
	"backoffice/internal/controllers"
)

func runRoleRouter(guard *authz.RouteGuard, ctrl *controllers.RoleController) {
	guard.GET("/roles", ctrl.GetRoles, authz.RolesView)
	guard.GET("/roles/:id", ctrl.GetRole, authz.RolesView)
	guard.POST("/roles", ctrl.CreateRole, authz.RolesManage)
	guard.PUT("/roles/:id", ctrl.UpdateRole, authz.RolesManage)
	guard.DELETE("/roles/:id", ctrl.DeleteRole, authz.RolesManage)
}
