package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/services"
	"backoffice/pkg/api"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (ctrl *ReportController) GetUserReport(c echo.Context) error {
	rows, err := ctrl.reportService.GetUserReport(c.Request().Context())
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne(c, http.StatusOK, "user report", rows)
}

func (ctrl *ReportController) ExportUserReportXLSX(c echo.Context) error {
	fileName := fmt.Sprintf("users_report_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	c.Response().WriteHeader(http.StatusOK)

	if err := ctrl.reportService.WriteUserReportXLSX(c.Request().Context(), c.Response().Writer); err != nil {
		ctrl.logger.Error("failed to stream user report", zap.Error(err))
		return err
	}
	return nil
}
