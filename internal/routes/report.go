package routes

import (
	"backoffice/internal/authz"
	"backoffice/internal/controllers"
)

func runReportRouter(guard *authz.RouteGuard, ctrl *controllers.ReportController) {
	guard.GET("/reports/users", ctrl.GetUserReport, authz.ReportsView)
	guard.GET("/reports/users/export", ctrl.ExportUserReportXLSX, authz.ReportsView)
}
