package services

import (
	"context"

	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/internal/repositories"
	"backoffice/pkg/types"
)

type ContentServiceInterface interface {
	GetContents(ctx context.Context, filter types.Filter) ([]entities.Content, uint64, error)
	GetContent(ctx context.Context, id uint64) (*entities.Content, error)
	CreateContent(ctx context.Context, authorID uint64, payload dto.CreateContentDTO) (*entities.Content, error)
	UpdateContent(ctx context.Context, id uint64, payload dto.UpdateContentDTO) (*entities.Content, error)
	DeleteContent(ctx context.Context, id uint64) error
	SetPublished(ctx context.Context, id uint64, published bool) error

	GetContentGroups(ctx context.Context) ([]entities.ContentGroup, error)
	CreateContentGroup(ctx context.Context, payload dto.CreateContentGroupDTO) (*entities.ContentGroup, error)
}

type ContentService struct {
	contentRepo repositories.ContentRepositoryInterface
}

func NewContentService(contentRepo repositories.ContentRepositoryInterface) ContentServiceInterface {
	return &ContentService{contentRepo: contentRepo}
}

func (s *ContentService) GetContents(ctx context.Context, filter types.Filter) ([]entities.Content, uint64, error) {
	return s.contentRepo.GetContents(ctx, filter)
}

func (s *ContentService) GetContent(ctx context.Context, id uint64) (*entities.Content, error) {
	return s.contentRepo.FindContent(ctx, id)
}

func (s *ContentService) CreateContent(ctx context.Context, authorID uint64, payload dto.CreateContentDTO) (*entities.Content, error) {
	content := &entities.Content{
		Title:          payload.Title,
		Summary:        payload.Summary,
		Body:           payload.Body,
		LanguageCode:   payload.LanguageCode,
		AuthorID:       authorID,
		ContentGroupID: payload.ContentGroupID,
		IsPublished:    payload.IsPublished,
		Priority:       payload.Priority,
	}
	if payload.ImageID != nil {
		content.ImageID.SetValid(*payload.ImageID)
	}

	id, err := s.contentRepo.CreateContent(ctx, content)
	if err != nil {
		return nil, err
	}
	if payload.IsPublished {
		if err := s.contentRepo.SetPublished(ctx, id, true); err != nil {
			return nil, err
		}
	}
	return s.contentRepo.FindContent(ctx, id)
}

func (s *ContentService) UpdateContent(ctx context.Context, id uint64, payload dto.UpdateContentDTO) (*entities.Content, error) {
	content, err := s.contentRepo.FindContent(ctx, id)
	if err != nil {
		return nil, err
	}

	content.Title = payload.Title
	content.Summary = payload.Summary
	content.Body = payload.Body
	content.LanguageCode = payload.LanguageCode
	content.ContentGroupID = payload.ContentGroupID
	content.IsPublished = payload.IsPublished
	content.Priority = payload.Priority
	content.ImageID.Valid = false
	if payload.ImageID != nil {
		content.ImageID.SetValid(*payload.ImageID)
	}

	if err := s.contentRepo.UpdateContent(ctx, content); err != nil {
		return nil, err
	}
	return s.contentRepo.FindContent(ctx, id)
}

func (s *ContentService) DeleteContent(ctx context.Context, id uint64) error {
	return s.contentRepo.DeleteContent(ctx, id)
}

func (s *ContentService) SetPublished(ctx context.Context, id uint64, published bool) error {
	return s.contentRepo.SetPublished(ctx, id, published)
}

func (s *ContentService) GetContentGroups(ctx context.Context) ([]entities.ContentGroup, error) {
	return s.contentRepo.GetContentGroups(ctx)
}

func (s *ContentService) CreateContentGroup(ctx context.Context, payload dto.CreateContentGroupDTO) (*entities.ContentGroup, error) {
	group := &entities.ContentGroup{Name: payload.Name, Description: payload.Description}
	id, err := s.contentRepo.CreateContentGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	group.ID = id
	return group, nil
}
