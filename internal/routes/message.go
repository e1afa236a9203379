package routes

import (
	"github.com/labstack/echo/v4"

	"backoffice/internal/authz"
	"backoffice/internal/controllers"
)

func runMessageRouter(secure *echo.Group, guard *authz.RouteGuard, ctrl *controllers.MessageController) {
	// Broadcasts are readable by every signed-in user; sending and removing
	// them is dynamically secured.
	secure.GET("/messages", ctrl.GetMessages)
	secure.GET("/messages/unseen-count", ctrl.CountUnseen)
	secure.GET("/messages/:id", ctrl.GetMessage)
	secure.POST("/messages/:id/seen", ctrl.MarkSeen)

	guard.POST("/messages", ctrl.SendMessage, authz.MessagesSend)
	guard.DELETE("/messages/:id", ctrl.DeleteMessage, authz.MessagesSend)
}
