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

type MessageController struct {
	messageService services.MessageServiceInterface
	logger         *zap.Logger
}

func NewMessageController(messageService services.MessageServiceInterface, logger *zap.Logger) *MessageController {
	return &MessageController{messageService: messageService, logger: logger}
}

func (ctrl *MessageController) GetMessages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	filter := parseFilter(c)
	messages, total, err := ctrl.messageService.GetMessages(c.Request().Context(), userID, filter)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessList(c, "messages", messages, total, filter.Page, filter.Limit)
}

func (ctrl *MessageController) GetMessage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	message, err := ctrl.messageService.GetMessage(c.Request().Context(), userID, id)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Message](c, http.StatusOK, "message", message)
}

func (ctrl *MessageController) SendMessage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var payload dto.CreateMessageDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid message payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	message, err := ctrl.messageService.SendMessage(c.Request().Context(), userID, payload)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Message](c, http.StatusCreated, "message sent", message)
}

func (ctrl *MessageController) DeleteMessage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	if err := ctrl.messageService.DeleteMessage(c.Request().Context(), id); err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[any](c, http.StatusOK, "message deleted", nil)
}

func (ctrl *MessageController) MarkSeen(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	if err := ctrl.messageService.MarkSeen(c.Request().Context(), id, userID); err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[any](c, http.StatusOK, "message marked seen", nil)
}

func (ctrl *MessageController) CountUnseen(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	count, err := ctrl.messageService.CountUnseen(c.Request().Context(), userID)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne(c, http.StatusOK, "unseen count", map[string]uint64{"count": count})
}
