package routes

import (
	"github.com/labstack/echo/v4"

	"backoffice/internal/authz"
	"backoffice/internal/controllers"
)

func runSupportRouter(secure *echo.Group, guard *authz.RouteGuard, ctrl *controllers.SupportController) {
	// Customers manage their own tickets without extra grants.
	secure.POST("/support", ctrl.CreateRequest)
	secure.GET("/support/my", ctrl.GetMyRequests)
	secure.GET("/support/my/:id", ctrl.GetMyRequest)

	guard.GET("/support", ctrl.GetAllRequests, authz.SupportView)
	guard.GET("/support/:id", ctrl.GetRequest, authz.SupportView)
	guard.POST("/support/:id/respond", ctrl.Respond, authz.SupportRespond)
	guard.PUT("/support/:id/status", ctrl.UpdateStatus, authz.SupportRespond)
}
