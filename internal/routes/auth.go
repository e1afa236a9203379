package routes

import (
	"github.com/labstack/echo/v4"

	"backoffice/internal/controllers"
)

func runAuthRouter(apiGroup, secure *echo.Group, ctrl *controllers.AuthController) {
	auth := apiGroup.Group("/auth")
	auth.POST("/login", ctrl.Login)
	auth.POST("/refresh_token", ctrl.RefreshToken)

	secureAuth := secure.Group("/auth")
	secureAuth.GET("/logout", ctrl.Logout)
	secureAuth.POST("/change_password", ctrl.ChangePassword)
	secureAuth.GET("/me", ctrl.Me)
}
