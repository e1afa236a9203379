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

type RoleController struct {
	roleService services.RoleServiceInterface
	logger      *zap.Logger
}

func NewRoleController(roleService services.RoleServiceInterface, logger *zap.Logger) *RoleController {
	return &RoleController{roleService: roleService, logger: logger}
}

func (ctrl *RoleController) GetRoles(c echo.Context) error {
	roles, err := ctrl.roleService.GetRoles(c.Request().Context())
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne(c, http.StatusOK, "roles", roles)
}

func (ctrl *RoleController) GetRole(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	role, err := ctrl.roleService.GetRole(c.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Role](c, http.StatusOK, "role", role)
}

func (ctrl *RoleController) CreateRole(c echo.Context) error {
	var payload dto.CreateRoleDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid role payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	role, err := ctrl.roleService.CreateRole(c.Request().Context(), payload)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Role](c, http.StatusCreated, "role created", role)
}

func (ctrl *RoleController) UpdateRole(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var payload dto.UpdateRoleDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid role payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	role, err := ctrl.roleService.UpdateRole(c.Request().Context(), id, payload)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Role](c, http.StatusOK, "role updated", role)
}

func (ctrl *RoleController) DeleteRole(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	if err := ctrl.roleService.DeleteRole(c.Request().Context(), id); err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[any](c, http.StatusOK, "role deleted", nil)
}
