package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/internal/entities"
	apperrors "backoffice/pkg/errors"
)

const folderSelectFields = "f.id, f.name, f.description, f.parent_folder_id, f.user_id, f.created_at, f.updated_at"

type FolderRepositoryInterface interface {
	// GetFolders returns the user's direct children of parentID; a nil
	// parentID lists the roots.
	GetFolders(ctx context.Context, userID uint64, parentID *uint64) ([]entities.Folder, error)
	FindFolder(ctx context.Context, userID, id uint64) (*entities.Folder, error)
	CreateFolder(ctx context.Context, folder *entities.Folder) (uint64, error)
	UpdateFolder(ctx context.Context, folder *entities.Folder) error
	// DeleteFolder soft-deletes the folder and everything beneath it.
	DeleteFolder(ctx context.Context, userID, id uint64) error
}

type FolderRepository struct {
	storage *pgxpool.Pool
}

func NewFolderRepository(storage *pgxpool.Pool) FolderRepositoryInterface {
	return &FolderRepository{storage: storage}
}

func (r *FolderRepository) GetFolders(ctx context.Context, userID uint64, parentID *uint64) ([]entities.Folder, error) {
	query := `SELECT ` + folderSelectFields + ` FROM folders f
		WHERE f.user_id = $1 AND f.deleted_at IS NULL AND f.parent_folder_id IS NOT DISTINCT FROM $2
		ORDER BY f.name`

	rows, err := r.storage.Query(ctx, query, userID, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := make([]entities.Folder, 0)
	for rows.Next() {
		var f entities.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.ParentFolderID, &f.UserID,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (r *FolderRepository) FindFolder(ctx context.Context, userID, id uint64) (*entities.Folder, error) {
	query := `SELECT ` + folderSelectFields + ` FROM folders f
		WHERE f.id = $1 AND f.user_id = $2 AND f.deleted_at IS NULL`

	var f entities.Folder
	err := r.storage.QueryRow(ctx, query, id, userID).Scan(
		&f.ID, &f.Name, &f.Description, &f.ParentFolderID, &f.UserID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FolderRepository) CreateFolder(ctx context.Context, folder *entities.Folder) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO folders (name, description, parent_folder_id, user_id) VALUES ($1, $2, $3, $4) RETURNING id",
		folder.Name, folder.Description, folder.ParentFolderID, folder.UserID,
	).Scan(&id)
	return id, err
}

func (r *FolderRepository) UpdateFolder(ctx context.Context, folder *entities.Folder) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE folders SET name = $1, description = $2, updated_at = NOW()
		 WHERE id = $3 AND user_id = $4 AND deleted_at IS NULL`,
		folder.Name, folder.Description, folder.ID, folder.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *FolderRepository) DeleteFolder(ctx context.Context, userID, id uint64) error {
	tag, err := r.storage.Exec(ctx, `WITH RECURSIVE tree AS (
			SELECT f.id FROM folders f WHERE f.id = $1 AND f.user_id = $2 AND f.deleted_at IS NULL
			UNION ALL
			SELECT c.id FROM folders c JOIN tree ON c.parent_folder_id = tree.id
			WHERE c.deleted_at IS NULL
		),
		files_gone AS (
			UPDATE files SET deleted_at = NOW()
			WHERE folder_id IN (SELECT id FROM tree) AND deleted_at IS NULL
		)
		UPDATE folders SET deleted_at = NOW() WHERE id IN (SELECT id FROM tree)`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
