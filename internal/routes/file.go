package routes

import (
	"backoffice/internal/authz"
	"backoffice/internal/controllers"
)

func runFileRouter(guard *authz.RouteGuard, ctrl *controllers.FileController) {
	guard.POST("/files", ctrl.UploadFile, authz.FilesUpload)
	guard.GET("/files/:id", ctrl.GetFile, authz.FilesView)
	guard.DELETE("/files/:id", ctrl.DeleteFile, authz.FilesUpload)

	guard.POST("/documents", ctrl.UploadDocument, authz.FilesUpload)
	guard.GET("/documents/:id", ctrl.GetDocument, authz.FilesView)
}
