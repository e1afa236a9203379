package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice/internal/entities"
	"backoffice/internal/services"
	"backoffice/pkg/api"
	apperrors "backoffice/pkg/errors"
)

// maxUploadSize caps incoming multipart files at 50 MiB.
const maxUploadSize = 50 << 20

type FileController struct {
	fileService services.FileServiceInterface
	logger      *zap.Logger
}

func NewFileController(fileService services.FileServiceInterface, logger *zap.Logger) *FileController {
	return &FileController{fileService: fileService, logger: logger}
}

func (ctrl *FileController) UploadFile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("missing file field"))
	}
	if fileHeader.Size > maxUploadSize {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("file too large"))
	}

	var folderID *uint64
	if raw := c.FormValue("folder_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid folder_id"))
		}
		folderID = &id
	}

	src, err := fileHeader.Open()
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	defer src.Close()

	file, err := ctrl.fileService.UploadFile(c.Request().Context(), userID, services.FileUpload{
		Reader:           src,
		OriginalFileName: fileHeader.Filename,
		MimeType:         fileHeader.Header.Get(echo.HeaderContentType),
		Size:             fileHeader.Size,
		FolderID:         folderID,
		UploaderIP:       c.RealIP(),
	})
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.File](c, http.StatusCreated, "file uploaded", file)
}

func (ctrl *FileController) GetFile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	file, err := ctrl.fileService.GetFile(c.Request().Context(), userID, id)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.File](c, http.StatusOK, "file", file)
}

func (ctrl *FileController) DeleteFile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	if err := ctrl.fileService.DeleteFile(c.Request().Context(), userID, id); err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[any](c, http.StatusOK, "file deleted", nil)
}

func (ctrl *FileController) UploadDocument(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return api.ErrorResponse(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("missing file field"))
	}
	if fileHeader.Size > maxUploadSize {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("file too large"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	defer src.Close()

	document, err := ctrl.fileService.UploadDocument(c.Request().Context(), userID, services.FileUpload{
		Reader:           src,
		OriginalFileName: fileHeader.Filename,
		MimeType:         fileHeader.Header.Get(echo.HeaderContentType),
		Size:             fileHeader.Size,
		UploaderIP:       c.RealIP(),
	})
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Document](c, http.StatusCreated, "document uploaded", document)
}

func (ctrl *FileController) GetDocument(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return api.ErrorResponse(c, apperrors.NewBadRequestError("invalid id parameter"))
	}

	document, err := ctrl.fileService.GetDocument(c.Request().Context(), id)
	if err != nil {
		return api.ErrorResponse(c, err)
	}
	return api.SuccessOne[*entities.Document](c, http.StatusOK, "document", document)
}
