package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/internal/repositories"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/types"
)

type SupportServiceInterface interface {
	// GetSupportRequests lists all requests when staff is set, otherwise only
	// the caller's own.
	GetSupportRequests(ctx context.Context, callerID uint64, staff bool, filter types.Filter) ([]entities.SupportRequest, uint64, error)
	GetSupportRequest(ctx context.Context, callerID uint64, staff bool, id uint64) (*entities.SupportRequest, error)
	CreateSupportRequest(ctx context.Context, customerID uint64, payload dto.CreateSupportRequestDTO) (*entities.SupportRequest, error)
	Respond(ctx context.Context, adminID, requestID uint64, payload dto.RespondSupportRequestDTO) (*entities.SupportRequest, error)
	UpdateStatus(ctx context.Context, id uint64, status entities.SupportStatus) error
}

type SupportService struct {
	supportRepo repositories.SupportRepositoryInterface
	txManager   repositories.TxManagerInterface
}

func NewSupportService(
	supportRepo repositories.SupportRepositoryInterface,
	txManager repositories.TxManagerInterface,
) SupportServiceInterface {
	return &SupportService{supportRepo: supportRepo, txManager: txManager}
}

func (s *SupportService) GetSupportRequests(ctx context.Context, callerID uint64, staff bool, filter types.Filter) ([]entities.SupportRequest, uint64, error) {
	customerID := callerID
	if staff {
		customerID = 0
	}
	return s.supportRepo.GetSupportRequests(ctx, customerID, filter)
}

func (s *SupportService) GetSupportRequest(ctx context.Context, callerID uint64, staff bool, id uint64) (*entities.SupportRequest, error) {
	request, err := s.supportRepo.FindSupportRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !staff && request.CustomerID != callerID {
		return nil, apperrors.ErrNotFound
	}
	return request, nil
}

func (s *SupportService) CreateSupportRequest(ctx context.Context, customerID uint64, payload dto.CreateSupportRequestDTO) (*entities.SupportRequest, error) {
	request := &entities.SupportRequest{
		Subject:    payload.Subject,
		Message:    payload.Message,
		CustomerID: customerID,
	}
	id, err := s.supportRepo.CreateSupportRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	return s.supportRepo.FindSupportRequest(ctx, id)
}

func (s *SupportService) Respond(ctx context.Context, adminID, requestID uint64, payload dto.RespondSupportRequestDTO) (*entities.SupportRequest, error) {
	if _, err := s.supportRepo.FindSupportRequest(ctx, requestID); err != nil {
		return nil, err
	}

	response := &entities.SupportResponse{
		ResponseMessage:  payload.ResponseMessage,
		SupportRequestID: requestID,
		AdminID:          adminID,
	}
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.supportRepo.AddResponse(ctx, tx, response)
	})
	if err != nil {
		return nil, err
	}

	return s.supportRepo.FindSupportRequest(ctx, requestID)
}

func (s *SupportService) UpdateStatus(ctx context.Context, id uint64, status entities.SupportStatus) error {
	return s.supportRepo.UpdateStatus(ctx, id, status)
}
