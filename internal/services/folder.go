package services

import (
	"context"

	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/internal/repositories"
)

type FolderServiceInterface interface {
	// GetFolders lists the user's folders under parentID (nil for roots) with
	// their files attached.
	GetFolders(ctx context.Context, userID uint64, parentID *uint64) ([]entities.Folder, error)
	GetFolder(ctx context.Context, userID, id uint64) (*entities.Folder, error)
	CreateFolder(ctx context.Context, userID uint64, payload dto.CreateFolderDTO) (*entities.Folder, error)
	UpdateFolder(ctx context.Context, userID, id uint64, payload dto.UpdateFolderDTO) (*entities.Folder, error)
	DeleteFolder(ctx context.Context, userID, id uint64) error
}

type FolderService struct {
	folderRepo repositories.FolderRepositoryInterface
	fileRepo   repositories.FileRepositoryInterface
}

func NewFolderService(
	folderRepo repositories.FolderRepositoryInterface,
	fileRepo repositories.FileRepositoryInterface,
) FolderServiceInterface {
	return &FolderService{folderRepo: folderRepo, fileRepo: fileRepo}
}

func (s *FolderService) GetFolders(ctx context.Context, userID uint64, parentID *uint64) ([]entities.Folder, error) {
	folders, err := s.folderRepo.GetFolders(ctx, userID, parentID)
	if err != nil {
		return nil, err
	}
	for i := range folders {
		id := folders[i].ID
		files, err := s.fileRepo.GetFilesByFolder(ctx, userID, &id)
		if err != nil {
			return nil, err
		}
		folders[i].Files = files
	}
	return folders, nil
}

func (s *FolderService) GetFolder(ctx context.Context, userID, id uint64) (*entities.Folder, error) {
	folder, err := s.folderRepo.FindFolder(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	subFolders, err := s.folderRepo.GetFolders(ctx, userID, &id)
	if err != nil {
		return nil, err
	}
	folder.SubFolders = subFolders

	files, err := s.fileRepo.GetFilesByFolder(ctx, userID, &id)
	if err != nil {
		return nil, err
	}
	folder.Files = files

	return folder, nil
}

func (s *FolderService) CreateFolder(ctx context.Context, userID uint64, payload dto.CreateFolderDTO) (*entities.Folder, error) {
	if payload.ParentFolderID != nil {
		// The parent must exist and belong to the same user.
		if _, err := s.folderRepo.FindFolder(ctx, userID, *payload.ParentFolderID); err != nil {
			return nil, err
		}
	}

	folder := &entities.Folder{
		Name:   payload.Name,
		UserID: userID,
	}
	if payload.Description != "" {
		folder.Description.SetValid(payload.Description)
	}
	if payload.ParentFolderID != nil {
		folder.ParentFolderID.SetValid(*payload.ParentFolderID)
	}

	id, err := s.folderRepo.CreateFolder(ctx, folder)
	if err != nil {
		return nil, err
	}
	return s.folderRepo.FindFolder(ctx, userID, id)
}

func (s *FolderService) UpdateFolder(ctx context.Context, userID, id uint64, payload dto.UpdateFolderDTO) (*entities.Folder, error) {
	folder, err := s.folderRepo.FindFolder(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	folder.Name = payload.Name
	folder.Description.Valid = false
	if payload.Description != "" {
		folder.Description.SetValid(payload.Description)
	}

	if err := s.folderRepo.UpdateFolder(ctx, folder); err != nil {
		return nil, err
	}
	return s.folderRepo.FindFolder(ctx, userID, id)
}

func (s *FolderService) DeleteFolder(ctx context.Context, userID, id uint64) error {
	return s.folderRepo.DeleteFolder(ctx, userID, id)
}
