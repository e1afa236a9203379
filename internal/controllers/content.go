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

type ContentController struct {
	contentService services.ContentServiceInterface
	logger         *zap.Logger
}

func NewContentController(contentService services.ContentServiceInterface, logger *zap.Logger) *ContentController {
	return &ContentController{contentService: contentService, logger: logger}
}

func (ctrl *ContentController) GetContents(c echo.Context) error {
	filter := parseFilter(c)
	if group := c.QueryParam("group_id"); group != "" {
		filter.Filter["content_group_id"] = group
	}
	if lang := c.QueryParam("language"); lang != "" {
		filter.Filter["language_code"] = lang
	}

	contents, total, err := ctrl.contentService.GetContents(c.Request().Context(), filter)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessList(c, "contents", contents, total, filter.Page, filter.Limit)
}

func (ctrl *ContentController) GetContent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	content, err := ctrl.contentService.GetContent(c.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Content](c, http.StatusOK, "content", content)
}

func (ctrl *ContentController) CreateContent(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var payload dto.CreateContentDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid content payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	content, err := ctrl.contentService.CreateContent(c.Request().Context(), userID, payload)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Content](c, http.StatusCreated, "content created", content)
}

func (ctrl *ContentController) UpdateContent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var payload dto.UpdateContentDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid content payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	content, err := ctrl.contentService.UpdateContent(c.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Content](c, http.StatusOK, "content updated", content)
}

func (ctrl *ContentController) DeleteContent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	if err := ctrl.contentService.DeleteContent(c.Request().Context(), id); err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[any](c, http.StatusOK, "content deleted", nil)
}

func (ctrl *ContentController) GetContentGroups(c echo.Context) error {
	groups, err := ctrl.contentService.GetContentGroups(c.Request().Context())
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne(c, http.StatusOK, "content groups", groups)
}

func (ctrl *ContentController) CreateContentGroup(c echo.Context) error {
	var payload dto.CreateContentGroupDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid group payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	group, err := ctrl.contentService.CreateContentGroup(c.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.ContentGroup](c, http.StatusCreated, "content group created", group)
}
