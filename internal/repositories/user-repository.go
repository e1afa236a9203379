package repositories

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"backoffice/internal/entities"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/types"
)

const userSelectFields = "u.id, u.username, u.first_name, u.last_name, u.display_name, u.password, u.serial_number, u.is_active, u.device_id, u.mobile_number, u.profile_image, u.last_logged_in, u.created_at, u.updated_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Allow-listed columns for filtering and sorting user lists.
var userFilterFields = map[string]string{
	"is_active": "u.is_active",
	"username":  "u.username",
}

var userSortFields = map[string]string{
	"id":           "u.id",
	"username":     "u.username",
	"display_name": "u.display_name",
	"created_at":   "u.created_at",
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByUsername(ctx context.Context, username string) (*entities.User, error)
	CreateUser(ctx context.Context, tx pgx.Tx, user *entities.User) (uint64, error)
	UpdateUser(ctx context.Context, user *entities.User) error
	SetActive(ctx context.Context, id uint64, active bool) error
	UpdatePassword(ctx context.Context, userID uint64, newPasswordHash, newSerialNumber string) error
	UpdateLastLoggedIn(ctx context.Context, userID uint64, at time.Time) error
	GetUserRoles(ctx context.Context, userID uint64) ([]entities.Role, error)
	ReplaceUserRoles(ctx context.Context, tx pgx.Tx, userID uint64, roleIDs []uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.DisplayName,
		&user.Password, &user.SerialNumber, &user.IsActive,
		&user.DeviceID, &user.MobileNumber, &user.ProfileImage,
		&user.LastLoggedIn, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	base := psql.Select().From("users u")

	for key, value := range filter.Filter {
		if column, ok := userFilterFields[key]; ok {
			base = base.Where(sq.Eq{column: value})
		}
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"u.username": pattern},
			sq.ILike{"u.display_name": pattern},
			sq.ILike{"u.mobile_number": pattern},
		})
	}

	countQuery, countArgs, err := base.Columns("COUNT(u.id)").ToSql()
	if err != nil {
		return nil, 0, err
	}

	var totalCount uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return []entities.User{}, 0, nil
	}

	listBuilder := base.Columns(userSelectFields)
	orderBy := "u.id DESC"
	for key, direction := range filter.Sort {
		if column, ok := userSortFields[key]; ok {
			if direction != "asc" {
				direction = "desc"
			}
			orderBy = column + " " + direction
			break
		}
	}
	listBuilder = listBuilder.OrderBy(orderBy)

	if filter.WithPagination {
		listBuilder = listBuilder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, totalCount, rows.Err()
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	query := "SELECT " + userSelectFields + " FROM users u WHERE u.id = $1"
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := "SELECT " + userSelectFields + " FROM users u WHERE u.username = $1"
	return scanUser(r.storage.QueryRow(ctx, query, username))
}

func (r *UserRepository) CreateUser(ctx context.Context, tx pgx.Tx, user *entities.User) (uint64, error) {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	query := `INSERT INTO users (username, first_name, last_name, display_name, password, serial_number, is_active, device_id, mobile_number, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

	var id uint64
	err := q.QueryRow(ctx, query,
		user.Username, user.FirstName, user.LastName, user.DisplayName,
		user.Password, user.SerialNumber, user.IsActive,
		user.DeviceID, user.MobileNumber, user.ProfileImage,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	query := `UPDATE users SET first_name = $1, last_name = $2, display_name = $3, device_id = $4, mobile_number = $5, profile_image = $6, updated_at = NOW()
		WHERE id = $7`

	tag, err := r.storage.Exec(ctx, query,
		user.FirstName, user.LastName, user.DisplayName,
		user.DeviceID, user.MobileNumber, user.ProfileImage, user.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	tag, err := r.storage.Exec(ctx, "UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2", active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePassword also rotates the serial number so every previously issued
// token fails validation.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint64, newPasswordHash, newSerialNumber string) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE users SET password = $1, serial_number = $2, updated_at = NOW() WHERE id = $3",
		newPasswordHash, newSerialNumber, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLoggedIn(ctx context.Context, userID uint64, at time.Time) error {
	_, err := r.storage.Exec(ctx, "UPDATE users SET last_logged_in = $1 WHERE id = $2", at, userID)
	return err
}

func (r *UserRepository) GetUserRoles(ctx context.Context, userID uint64) ([]entities.Role, error) {
	query := `SELECT r.id, r.name, r.description, r.created_at, r.updated_at
		FROM roles r JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1 ORDER BY r.name`

	rows, err := r.storage.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []entities.Role
	for rows.Next() {
		var role entities.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *UserRepository) ReplaceUserRoles(ctx context.Context, tx pgx.Tx, userID uint64, roleIDs []uint64) error {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	if _, err := q.Exec(ctx, "DELETE FROM user_roles WHERE user_id = $1", userID); err != nil {
		return err
	}
	for _, roleID := range roleIDs {
		if _, err := q.Exec(ctx, "INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)", userID, roleID); err != nil {
			return err
		}
	}
	return nil
}
