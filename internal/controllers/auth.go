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
	"backoffice/pkg/fingerprint"
	"backoffice/pkg/service"
)

type AuthController struct {
	authService services.AuthServiceInterface
	detector    fingerprint.DeviceDetector
	logger      *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	detector fingerprint.DeviceDetector,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService: authService,
		detector:    detector,
		logger:      logger,
	}
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid login payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	deviceHash := ctrl.detector.RequestDeviceHash(c)
	tokens, err := ctrl.authService.Login(c.Request().Context(), payload, deviceHash)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	return api.SuccessOne(c, http.StatusOK, "logged in", tokensResponse(tokens))
}

func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	var payload dto.RefreshTokenDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid refresh payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	deviceHash := ctrl.detector.RequestDeviceHash(c)
	tokens, err := ctrl.authService.RefreshToken(c.Request().Context(), payload.RefreshToken, deviceHash)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	return api.SuccessOne(c, http.StatusOK, "tokens refreshed", tokensResponse(tokens))
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	// The refresh token travels in the body on logout too; an empty one is
	// fine when all clients are being signed out.
	var payload dto.RefreshTokenDTO
	_ = c.Bind(&payload)

	if err := ctrl.authService.Logout(c.Request().Context(), userID, payload.RefreshToken); err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[any](c, http.StatusOK, "logged out", nil)
}

func (ctrl *AuthController) ChangePassword(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	var payload dto.ChangePasswordDTO
	if err := c.Bind(&payload); err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid change-password payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return api.ErrorResponse(c, err)
	}

	if err := ctrl.authService.ChangePassword(c.Request().Context(), userID, payload); err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[any](c, http.StatusOK, "password changed", nil)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	user, err := ctrl.authService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.User](c, http.StatusOK, "profile", user)
}

func tokensResponse(tokens *service.JwtTokensData) dto.TokensResponseDTO {
	return dto.TokensResponseDTO{
		AccessToken:             tokens.AccessToken,
		RefreshToken:            tokens.RefreshToken,
		DynamicPermissionsToken: tokens.DynamicPermissionsToken,
	}
}
