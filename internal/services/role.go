package services

import (
	"context"

	"backoffice/internal/dto"
	"backoffice/internal/entities"
	"backoffice/internal/repositories"
	apperrors "backoffice/pkg/errors"
)

type RoleServiceInterface interface {
	GetRoles(ctx context.Context) ([]entities.Role, error)
	GetRole(ctx context.Context, id uint64) (*entities.Role, error)
	CreateRole(ctx context.Context, payload dto.CreateRoleDTO) (*entities.Role, error)
	UpdateRole(ctx context.Context, id uint64, payload dto.UpdateRoleDTO) (*entities.Role, error)
	DeleteRole(ctx context.Context, id uint64) error
}

type RoleService struct {
	roleRepo repositories.RoleRepositoryInterface
}

func NewRoleService(roleRepo repositories.RoleRepositoryInterface) RoleServiceInterface {
	return &RoleService{roleRepo: roleRepo}
}

func (s *RoleService) GetRoles(ctx context.Context) ([]entities.Role, error) {
	return s.roleRepo.GetRoles(ctx)
}

func (s *RoleService) GetRole(ctx context.Context, id uint64) (*entities.Role, error) {
	return s.roleRepo.FindRole(ctx, id)
}

func (s *RoleService) CreateRole(ctx context.Context, payload dto.CreateRoleDTO) (*entities.Role, error) {
	if existing, err := s.roleRepo.FindRoleByName(ctx, payload.Name); err == nil && existing != nil {
		return nil, apperrors.NewConflictError("role name already in use")
	}

	role := &entities.Role{Name: payload.Name, Description: payload.Description}
	id, err := s.roleRepo.CreateRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return s.roleRepo.FindRole(ctx, id)
}

func (s *RoleService) UpdateRole(ctx context.Context, id uint64, payload dto.UpdateRoleDTO) (*entities.Role, error) {
	role, err := s.roleRepo.FindRole(ctx, id)
	if err != nil {
		return nil, err
	}

	role.Name = payload.Name
	role.Description = payload.Description
	if err := s.roleRepo.UpdateRole(ctx, role); err != nil {
		return nil, err
	}
	return s.roleRepo.FindRole(ctx, id)
}

func (s *RoleService) DeleteRole(ctx context.Context, id uint64) error {
	return s.roleRepo.DeleteRole(ctx, id)
}
