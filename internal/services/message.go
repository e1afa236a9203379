package services

import (
	"context"

	"go.uber.org/zap"

	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/internal/repositories"
	"backoffice/pkg/types"
)

// NotificationSender is the delivery boundary for new broadcasts. The default
// build ships a no-op; push transports plug in here.
type NotificationSender interface {
	NotifyNewMessage(ctx context.Context, message *entities.Message)
}

type noopNotificationSender struct{}

func (noopNotificationSender) NotifyNewMessage(context.Context, *entities.Message) {}

func NewNoopNotificationSender() NotificationSender { return noopNotificationSender{} }

type MessageServiceInterface interface {
	GetMessages(ctx context.Context, viewerID uint64, filter types.Filter) ([]entities.Message, uint64, error)
	GetMessage(ctx context.Context, viewerID, id uint64) (*entities.Message, error)
	SendMessage(ctx context.Context, senderID uint64, payload dto.CreateMessageDTO) (*entities.Message, error)
	DeleteMessage(ctx context.Context, id uint64) error
	MarkSeen(ctx context.Context, messageID, userID uint64) error
	CountUnseen(ctx context.Context, userID uint64) (uint64, error)
}

type MessageService struct {
	messageRepo repositories.MessageRepositoryInterface
	notifier    NotificationSender
	logger      *zap.Logger
}

func NewMessageService(
	messageRepo repositories.MessageRepositoryInterface,
	notifier NotificationSender,
	logger *zap.Logger,
) MessageServiceInterface {
	return &MessageService{
		messageRepo: messageRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (s *MessageService) GetMessages(ctx context.Context, viewerID uint64, filter types.Filter) ([]entities.Message, uint64, error) {
	return s.messageRepo.GetMessages(ctx, viewerID, filter)
}

// GetMessage returns the message and records the viewer as having seen it.
func (s *MessageService) GetMessage(ctx context.Context, viewerID, id uint64) (*entities.Message, error) {
	message, err := s.messageRepo.FindMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.MarkSeen(ctx, id, viewerID); err != nil {
		s.logger.Warn("failed to mark message seen",
			zap.Uint64("message_id", id), zap.Uint64("user_id", viewerID), zap.Error(err))
	}
	message.Seen = true
	return message, nil
}

func (s *MessageService) SendMessage(ctx context.Context, senderID uint64, payload dto.CreateMessageDTO) (*entities.Message, error) {
	message := &entities.Message{
		Subject:      payload.Subject,
		Description:  payload.Description,
		SenderUserID: senderID,
	}
	if payload.PictureID != "" {
		message.PictureID.SetValid(payload.PictureID)
	}

	id, err := s.messageRepo.CreateMessage(ctx, message)
	if err != nil {
		return nil, err
	}

	created, err := s.messageRepo.FindMessage(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyNewMessage(ctx, created)
	return created, nil
}

func (s *MessageService) DeleteMessage(ctx context.Context, id uint64) error {
	return s.messageRepo.DeleteMessage(ctx, id)
}

func (s *MessageService) MarkSeen(ctx context.Context, messageID, userID uint64) error {
	return s.messageRepo.MarkSeen(ctx, messageID, userID)
}

func (s *MessageService) CountUnseen(ctx context.Context, userID uint64) (uint64, error) {
	return s.messageRepo.CountUnseen(ctx, userID)
}
