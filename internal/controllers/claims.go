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

// ClaimsController exposes the dynamic-claims admin surface: inspecting and
// replacing a user's claims and listing the dynamically secured actions.
type ClaimsController struct {
	claimsService services.UserClaimsServiceInterface
	logger        *zap.Logger
}

func NewClaimsController(claimsService services.UserClaimsServiceInterface, logger *zap.Logger) *ClaimsController {
	return &ClaimsController{claimsService: claimsService, logger: logger}
}

func (ctrl *ClaimsController) GetUserClaims(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	claims, err := ctrl.claimsService.GetUserClaims(c.Request().Context(), userID)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[[]entities.UserClaim](c, http.StatusOK, "user claims", claims)
}

func (ctrl *ClaimsController) UpdateUserClaims(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var payload dto.UpdateUserClaimsDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid claims payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	if err := ctrl.claimsService.AddOrUpdateUserClaims(c.Request().Context(), userID, payload.ClaimType, payload.Values); err != nil {
		return api.ErrorResponse(c, err)
	}

	claims, err := ctrl.claimsService.GetUserClaims(c.Request().Context(), userID)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[[]entities.UserClaim](c, http.StatusOK, "user claims updated", claims)
}

// GetSecuredActions lists every dynamically guarded route and whether the
// given user currently holds its permission.
func (ctrl *ClaimsController) GetSecuredActions(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	actions, err := ctrl.claimsService.GetSecuredActions(c.Request().Context(), userID)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[[]services.SecuredActionStatus](c, http.StatusOK, "secured actions", actions)
}
