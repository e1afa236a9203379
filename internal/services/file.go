package services

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice/internal/entities"
	"backoffice/internal/repositories"
	"backoffice/pkg/filestorage"
)

// FileUpload carries one incoming upload through the service layer.
type FileUpload struct {
	Reader           io.Reader
	OriginalFileName string
	MimeType         string
	Size             int64
	FolderID         *uint64
	UploaderIP       string
}

type FileServiceInterface interface {
	UploadFile(ctx context.Context, userID uint64, upload FileUpload) (*entities.File, error)
	GetFile(ctx context.Context, userID, id uint64) (*entities.File, error)
	DeleteFile(ctx context.Context, userID, id uint64) error

	// UploadDocument stores a standalone record outside the folder tree and
	// returns its opaque id.
	UploadDocument(ctx context.Context, userID uint64, upload FileUpload) (*entities.Document, error)
	GetDocument(ctx context.Context, id string) (*entities.Document, error)
}

type FileService struct {
	fileRepo repositories.FileRepositoryInterface
	storage  filestorage.FileStorageInterface
	logger   *zap.Logger
}

func NewFileService(
	fileRepo repositories.FileRepositoryInterface,
	storage filestorage.FileStorageInterface,
	logger *zap.Logger,
) FileServiceInterface {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
		logger:   logger,
	}
}

func (s *FileService) UploadFile(ctx context.Context, userID uint64, upload FileUpload) (*entities.File, error) {
	storedPath, err := s.storage.Save(upload.Reader, upload.OriginalFileName, "files")
	if err != nil {
		return nil, err
	}

	file := &entities.File{
		Path:             storedPath,
		FileName:         path.Base(storedPath),
		OriginalFileName: upload.OriginalFileName,
		UserID:           userID,
		UploaderIP:       upload.UploaderIP,
		MimeType:         upload.MimeType,
		FileSize:         upload.Size,
	}
	if upload.FolderID != nil {
		file.FolderID.SetValid(*upload.FolderID)
	}

	id, err := s.fileRepo.CreateFile(ctx, file)
	if err != nil {
		if deleteErr := s.storage.Delete(storedPath); deleteErr != nil {
			s.logger.Warn("failed to remove orphaned upload",
				zap.String("path", storedPath), zap.Error(deleteErr))
		}
		return nil, err
	}

	return s.fileRepo.FindFile(ctx, userID, id)
}

func (s *FileService) GetFile(ctx context.Context, userID, id uint64) (*entities.File, error) {
	return s.fileRepo.FindFile(ctx, userID, id)
}

func (s *FileService) DeleteFile(ctx context.Context, userID, id uint64) error {
	file, err := s.fileRepo.FindFile(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.fileRepo.DeleteFile(ctx, userID, id); err != nil {
		return err
	}
	if err := s.storage.Delete(file.Path); err != nil {
		s.logger.Warn("failed to remove stored file",
			zap.String("path", file.Path), zap.Error(err))
	}
	return nil
}

func (s *FileService) UploadDocument(ctx context.Context, userID uint64, upload FileUpload) (*entities.Document, error) {
	storedPath, err := s.storage.Save(upload.Reader, upload.OriginalFileName, "documents")
	if err != nil {
		return nil, err
	}

	document := &entities.Document{
		ID:         uuid.New().String(),
		Path:       storedPath,
		UserID:     userID,
		UploaderIP: upload.UploaderIP,
		MimeType:   upload.MimeType,
	}
	if err := s.fileRepo.CreateDocument(ctx, document); err != nil {
		if deleteErr := s.storage.Delete(storedPath); deleteErr != nil {
			s.logger.Warn("failed to remove orphaned upload",
				zap.String("path", storedPath), zap.Error(deleteErr))
		}
		return nil, err
	}

	return document, nil
}

func (s *FileService) GetDocument(ctx context.Context, id string) (*entities.Document, error) {
	return s.fileRepo.FindDocument(ctx, id)
}
