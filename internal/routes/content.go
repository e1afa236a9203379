package routes

import (
	"backoffice/internal/authz"
	"backoffice/internal/controllers"
)

func runContentRouter(guard *authz.RouteGuard, ctrl *controllers.ContentController) {
	guard.GET("/contents", ctrl.GetContents, authz.ContentsView)
	guard.GET("/contents/:id", ctrl.GetContent, authz.ContentsView)
	guard.POST("/contents", ctrl.CreateContent, authz.ContentsManage)
	guard.PUT("/contents/:id", ctrl.UpdateContent, authz.ContentsManage)
	guard.DELETE("/contents/:id", ctrl.DeleteContent, authz.ContentsManage)

	guard.GET("/content-groups", ctrl.GetContentGroups, authz.ContentsView)
	guard.POST("/content-groups", ctrl.CreateContentGroup, authz.ContentsManage)
}
