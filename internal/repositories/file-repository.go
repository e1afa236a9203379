package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/internal/entities"
	apperrors "backoffice/pkg/errors"
)

const fileSelectFields = "f.id, f.path, f.file_name, f.original_file_name, f.user_id, f.uploader_ip, f.mime_type, f.file_size, f.folder_id, f.created_at, f.updated_at"

type FileRepositoryInterface interface {
	GetFilesByFolder(ctx context.Context, userID uint64, folderID *uint64) ([]entities.File, error)
	FindFile(ctx context.Context, userID, id uint64) (*entities.File, error)
	CreateFile(ctx context.Context, file *entities.File) (uint64, error)
	DeleteFile(ctx context.Context, userID, id uint64) error

	CreateDocument(ctx context.Context, document *entities.Document) error
	FindDocument(ctx context.Context, id string) (*entities.Document, error)
}

type FileRepository struct {
	storage *pgxpool.Pool
}

func NewFileRepository(storage *pgxpool.Pool) FileRepositoryInterface {
	return &FileRepository{storage: storage}
}

func (r *FileRepository) GetFilesByFolder(ctx context.Context, userID uint64, folderID *uint64) ([]entities.File, error) {
	query := `SELECT ` + fileSelectFields + ` FROM files f
		WHERE f.user_id = $1 AND f.deleted_at IS NULL AND f.folder_id IS NOT DISTINCT FROM $2
		ORDER BY f.original_file_name`

	rows, err := r.storage.Query(ctx, query, userID, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]entities.File, 0)
	for rows.Next() {
		var f entities.File
		if err := scanFileColumns(rows, &f); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *FileRepository) FindFile(ctx context.Context, userID, id uint64) (*entities.File, error) {
	query := `SELECT ` + fileSelectFields + ` FROM files f
		WHERE f.id = $1 AND f.user_id = $2 AND f.deleted_at IS NULL`

	var f entities.File
	err := scanFileColumns(r.storage.QueryRow(ctx, query, id, userID), &f)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FileRepository) CreateFile(ctx context.Context, file *entities.File) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO files (path, file_name, original_file_name, user_id, uploader_ip, mime_type, file_size, folder_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		file.Path, file.FileName, file.OriginalFileName, file.UserID,
		file.UploaderIP, file.MimeType, file.FileSize, file.FolderID,
	).Scan(&id)
	return id, err
}

func (r *FileRepository) DeleteFile(ctx context.Context, userID, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE files SET deleted_at = NOW() WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL",
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

func (r *FileRepository) CreateDocument(ctx context.Context, document *entities.Document) error {
	_, err := r.storage.Exec(ctx,
		"INSERT INTO documents (id, path, user_id, uploader_ip, mime_type) VALUES ($1, $2, $3, $4, $5)",
		document.ID, document.Path, document.UserID, document.UploaderIP, document.MimeType,
	)
	return err
}

func (r *FileRepository) FindDocument(ctx context.Context, id string) (*entities.Document, error) {
	var d entities.Document
	err := r.storage.QueryRow(ctx,
		"SELECT id, path, user_id, uploader_ip, mime_type, created_at, updated_at FROM documents WHERE id = $1", id,
	).Scan(&d.ID, &d.Path, &d.UserID, &d.UploaderIP, &d.MimeType, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func scanFileColumns(row pgx.Row, f *entities.File) error {
	return row.Scan(&f.ID, &f.Path, &f.FileName, &f.OriginalFileName, &f.UserID,
		&f.UploaderIP, &f.MimeType, &f.FileSize, &f.FolderID, &f.CreatedAt, &f.UpdatedAt)
}
