package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/internal/entities"
	apperrors "backoffice/pkg/errors"
)

type RoleRepositoryInterface interface {
	GetRoles(ctx context.Context) ([]entities.Role, error)
	FindRole(ctx context.Context, id uint64) (*entities.Role, error)
	FindRoleByName(ctx context.Context, name string) (*entities.Role, error)
	CreateRole(ctx context.Context, role *entities.Role) (uint64, error)
	UpdateRole(ctx context.Context, role *entities.Role) error
	DeleteRole(ctx context.Context, id uint64) error
}

type RoleRepository struct {
	storage *pgxpool.Pool
}

func NewRoleRepository(storage *pgxpool.Pool) RoleRepositoryInterface {
	return &RoleRepository{storage: storage}
}

func (r *RoleRepository) GetRoles(ctx context.Context) ([]entities.Role, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT id, name, description, created_at, updated_at FROM roles ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]entities.Role, 0)
	for rows.Next() {
		var role entities.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) FindRole(ctx context.Context, id uint64) (*entities.Role, error) {
	row := r.storage.QueryRow(ctx,
		"SELECT id, name, description, created_at, updated_at FROM roles WHERE id = $1", id)
	return scanRole(row)
}

func (r *RoleRepository) FindRoleByName(ctx context.Context, name string) (*entities.Role, error) {
	row := r.storage.QueryRow(ctx,
		"SELECT id, name, description, created_at, updated_at FROM roles WHERE name = $1", name)
	return scanRole(row)
}

func (r *RoleRepository) CreateRole(ctx context.Context, role *entities.Role) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id",
		role.Name, role.Description,
	).Scan(&id)
	return id, err
}

func (r *RoleRepository) UpdateRole(ctx context.Context, role *entities.Role) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE roles SET name = $1, description = $2, updated_at = NOW() WHERE id = $3",
		role.Name, role.Description, role.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RoleRepository) DeleteRole(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM roles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanRole(row pgx.Row) (*entities.Role, error) {
	var role entities.Role
	err := row.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}
