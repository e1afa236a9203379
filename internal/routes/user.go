package routes

import (
	"backoffice/internal/authz"
	"backoffice/internal/controllers"
)

func runUserRouter(guard *authz.RouteGuard, ctrl *controllers.UserController) {
	guard.GET("/users", ctrl.GetUsers, authz.UsersView)
	guard.GET("/users/:id", ctrl.GetUser, authz.UsersView)
	guard.POST("/users", ctrl.CreateUser, authz.UsersCreate)
	guard.PUT("/users/:id", ctrl.UpdateUser, authz.UsersUpdate)
	guard.PUT("/users/:id/active", ctrl.SetActive, authz.UsersDelete)
}
