package routes

import (
	"backoffice/internal/authz"
	"backoffice/internal/controllers"
)

func runFolderRouter(guard *authz.RouteGuard, ctrl *controllers.FolderController) {
	guard.GET("/folders", ctrl.GetFolders, authz.FoldersManage)
	guard.GET("/folders/:id", ctrl.GetFolder, authz.FoldersManage)
	guard.POST("/folders", ctrl.CreateFolder, authz.FoldersManage)
	guard.PUT("/folders/:id", ctrl.UpdateFolder, authz.FoldersManage)
	guard.DELETE("/folders/:id", ctrl.DeleteFolder, authz.FoldersManage)
}
