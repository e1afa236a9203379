package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/internal/repositories"
	"backoffice/pkg/security"
	"backoffice/pkg/types"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	GetUser(ctx context.Context, id uint64) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error)
	SetActive(ctx context.Context, id uint64, active bool) error
}

type UserService struct {
	userRepo      repositories.UserRepositoryInterface
	tokenRepo     repositories.UserTokenRepositoryInterface
	claimsService UserClaimsServiceInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	tokenRepo repositories.UserTokenRepositoryInterface,
	claimsService UserClaimsServiceInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		claimsService: claimsService,
		txManager:     txManager,
		logger:        logger,
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return s.userRepo.GetUsers(ctx, filter)
}

func (s *UserService) GetUser(ctx context.Context, id uint64) (*entities.User, error) {
	user, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.userRepo.GetUserRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	passwordHash, err := security.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     payload.Username,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		DisplayName:  payload.FirstName + " " + payload.LastName,
		Password:     passwordHash,
		SerialNumber: security.NewSecureSerial(),
		IsActive:     payload.IsActive == nil || *payload.IsActive,
	}
	if payload.MobileNumber != "" {
		user.MobileNumber.SetValid(payload.MobileNumber)
	}
	if payload.DeviceID != "" {
		user.DeviceID.SetValid(payload.DeviceID)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.userRepo.CreateUser(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = id
		if len(payload.RoleIDs) > 0 {
			return s.userRepo.ReplaceUserRoles(ctx, tx, id, payload.RoleIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetUser(ctx, user.ID)
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error) {
	user, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = payload.FirstName
	user.LastName = payload.LastName
	user.DisplayName = payload.FirstName + " " + payload.LastName
	user.MobileNumber.Valid = false
	if payload.MobileNumber != "" {
		user.MobileNumber.SetValid(payload.MobileNumber)
	}
	user.DeviceID.Valid = false
	if payload.DeviceID != "" {
		user.DeviceID.SetValid(payload.DeviceID)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.userRepo.UpdateUser(ctx, user); err != nil {
			return err
		}
		if payload.RoleIDs != nil {
			return s.userRepo.ReplaceUserRoles(ctx, tx, id, payload.RoleIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Role changes shift the effective permission set.
	s.claimsService.InvalidateUserClaimsCache(ctx, id)

	return s.GetUser(ctx, id)
}

func (s *UserService) SetActive(ctx context.Context, id uint64, active bool) error {
	if err := s.userRepo.SetActive(ctx, id, active); err != nil {
		return err
	}
	if !active {
		if err := s.tokenRepo.DeleteTokensByUser(ctx, id); err != nil {
			s.logger.Warn("failed to drop tokens of deactivated user",
				zap.Uint64("user_id", id), zap.Error(err))
		}
	}
	return nil
}
