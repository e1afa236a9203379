package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/internal/services"
	"backoffice/pkg/api"
	apperrors "backoffice/pkg/errors"
)

type FolderController struct {
	folderService services.FolderServiceInterface
	logger        *zap.Logger
}

func NewFolderController(folderService services.FolderServiceInterface, logger *zap.Logger) *FolderController {
	return &FolderController{folderService: folderService, logger: logger}
}

func (ctrl *FolderController) GetFolders(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var parentID *uint64
	if raw := c.QueryParam("parent_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid parent_id parameter"))
		}
		parentID = &id
	}

	folders, err := ctrl.folderService.GetFolders(c.Request().Context(), userID, parentID)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[[]entities.Folder](c, http.StatusOK, "folders", folders)
}

func (ctrl *FolderController) GetFolder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	folder, err := ctrl.folderService.GetFolder(c.Request().Context(), userID, id)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Folder](c, http.StatusOK, "folder", folder)
}

func (ctrl *FolderController) CreateFolder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var payload dto.CreateFolderDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid folder payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	folder, err := ctrl.folderService.CreateFolder(c.Request().Context(), userID, payload)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Folder](c, http.StatusCreated, "folder created", folder)
}

func (ctrl *FolderController) UpdateFolder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var payload dto.UpdateFolderDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid folder payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	folder, err := ctrl.folderService.UpdateFolder(c.Request().Context(), userID, id, payload)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Folder](c, http.StatusOK, "folder updated", folder)
}

func (ctrl *FolderController) DeleteFolder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	if err := ctrl.folderService.DeleteFolder(c.Request().Context(), userID, id); err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[any](c, http.StatusOK, "folder deleted", nil)
}
