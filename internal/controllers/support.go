package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/internal/services"
	"backoffice/pkg/api"
	apperrors "backoffice/pkg/errors"
)

type SupportController struct {
	supportService services.SupportServiceInterface
	logger         *zap.Logger
}

func NewSupportController(supportService services.SupportServiceInterface, logger *zap.Logger) *SupportController {
	return &SupportController{supportService: supportService, logger: logger}
}

// GetMyRequests lists the caller's own tickets.
func (ctrl *SupportController) GetMyRequests(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	filter := parseFilter(c)
	requests, total, err := ctrl.supportService.GetSupportRequests(c.Request().Context(), userID, false, filter)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessList(c, "support requests", requests, total, filter.Page, filter.Limit)
}

// GetAllRequests lists every ticket; reachable only through the guarded
// staff route.
func (ctrl *SupportController) GetAllRequests(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	filter := parseFilter(c)
	if status := c.QueryParam("status"); status != "" {
		filter.Filter["status"] = status
	}

	requests, total, err := ctrl.supportService.GetSupportRequests(c.Request().Context(), userID, true, filter)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessList(c, "support requests", requests, total, filter.Page, filter.Limit)
}

func (ctrl *SupportController) GetMyRequest(c echo.Context) error {
	return ctrl.getRequest(c, false)
}

func (ctrl *SupportController) GetRequest(c echo.Context) error {
	return ctrl.getRequest(c, true)
}

func (ctrl *SupportController) getRequest(c echo.Context, staff bool) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	request, err := ctrl.supportService.GetSupportRequest(c.Request().Context(), userID, staff, id)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.SupportRequest](c, http.StatusOK, "support request", request)
}

func (ctrl *SupportController) CreateRequest(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var payload dto.CreateSupportRequestDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid support payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	request, err := ctrl.supportService.CreateSupportRequest(c.Request().Context(), userID, payload)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.SupportRequest](c, http.StatusCreated, "support request created", request)
}

func (ctrl *SupportController) Respond(c echo.Context) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var payload dto.RespondSupportRequestDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid response payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	request, err := ctrl.supportService.Respond(c.Request().Context(), adminID, id, payload)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.SupportRequest](c, http.StatusOK, "response recorded", request)
}

func (ctrl *SupportController) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var payload dto.UpdateSupportStatusDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid status payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	if err := ctrl.supportService.UpdateStatus(c.Request().Context(), id, entities.SupportStatus(payload.Status)); err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[any](c, http.StatusOK, "status updated", nil)
}
