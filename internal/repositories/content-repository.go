package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/internal/entities"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/types"
)

const contentSelectFields = "c.id, c.title, c.summary, c.body, c.language_code, c.image_id, c.author_id, c.content_group_id, c.published_date, c.is_published, c.priority, c.created_at, c.updated_at"

var contentFilterFields = map[string]string{
	"content_group_id": "c.content_group_id",
	"language_code":    "c.language_code",
	"is_published":     "c.is_published",
}

type ContentRepositoryInterface interface {
	GetContents(ctx context.Context, filter types.Filter) ([]entities.Content, uint64, error)
	FindContent(ctx context.Context, id uint64) (*entities.Content, error)
	CreateContent(ctx context.Context, content *entities.Content) (uint64, error)
	UpdateContent(ctx context.Context, content *entities.Content) error
	DeleteContent(ctx context.Context, id uint64) error
	SetPublished(ctx context.Context, id uint64, published bool) error

	GetContentGroups(ctx context.Context) ([]entities.ContentGroup, error)
	CreateContentGroup(ctx context.Context, group *entities.ContentGroup) (uint64, error)
}

type ContentRepository struct {
	storage *pgxpool.Pool
}

func NewContentRepository(storage *pgxpool.Pool) ContentRepositoryInterface {
	return &ContentRepository{storage: storage}
}

func (r *ContentRepository) GetContents(ctx context.Context, filter types.Filter) ([]entities.Content, uint64, error) {
	base := psql.Select().
		From("contents c").
		Join("content_groups g ON g.id = c.content_group_id").
		Where(sq.Eq{"c.deleted_at": nil})

	for name, column := range contentFilterFields {
		if value, ok := filter.Filter[name]; ok {
			base = base.Where(sq.Eq{column: value})
		}
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"c.title": pattern},
			sq.ILike{"c.summary": pattern},
		})
	}

	countQuery, countArgs, err := base.Columns("COUNT(c.id)").ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listBuilder := base.
		Columns(contentSelectFields, "g.name").
		OrderBy("c.priority DESC", "c.created_at DESC")
	if filter.Limit > 0 {
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

	contents := make([]entities.Content, 0)
	for rows.Next() {
		var c entities.Content
		if err := scanContentColumns(rows, &c); err != nil {
			return nil, 0, err
		}
		contents = append(contents, c)
	}
	return contents, total, rows.Err()
}

func (r *ContentRepository) FindContent(ctx context.Context, id uint64) (*entities.Content, error) {
	query := `SELECT ` + contentSelectFields + `, g.name
		FROM contents c JOIN content_groups g ON g.id = c.content_group_id
		WHERE c.id = $1 AND c.deleted_at IS NULL`

	var c entities.Content
	err := scanContentColumns(r.storage.QueryRow(ctx, query, id), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContentRepository) CreateContent(ctx context.Context, content *entities.Content) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO contents (title, summary, body, language_code, image_id, author_id, content_group_id, published_date, is_published, priority)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		content.Title, content.Summary, content.Body, content.LanguageCode, content.ImageID,
		content.AuthorID, content.ContentGroupID, content.PublishedDate, content.IsPublished, content.Priority,
	).Scan(&id)
	return id, err
}

func (r *ContentRepository) UpdateContent(ctx context.Context, content *entities.Content) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE contents SET title = $1, summary = $2, body = $3, language_code = $4, image_id = $5,
		 content_group_id = $6, published_date = $7, is_published = $8, priority = $9, updated_at = NOW()
		 WHERE id = $10 AND deleted_at IS NULL`,
		content.Title, content.Summary, content.Body, content.LanguageCode, content.ImageID,
		content.ContentGroupID, content.PublishedDate, content.IsPublished, content.Priority, content.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) DeleteContent(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE contents SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) SetPublished(ctx context.Context, id uint64, published bool) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE contents SET is_published = $1,
		 published_date = CASE WHEN $1 THEN NOW() ELSE published_date END,
		 updated_at = NOW()
		 WHERE id = $2 AND deleted_at IS NULL`,
		published, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) GetContentGroups(ctx context.Context) ([]entities.ContentGroup, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT id, name, description, created_at, updated_at FROM content_groups ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]entities.ContentGroup, 0)
	for rows.Next() {
		var g entities.ContentGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *ContentRepository) CreateContentGroup(ctx context.Context, group *entities.ContentGroup) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO content_groups (name, description) VALUES ($1, $2) RETURNING id",
		group.Name, group.Description,
	).Scan(&id)
	return id, err
}

func scanContentColumns(row pgx.Row, c *entities.Content) error {
	return row.Scan(&c.ID, &c.Title, &c.Summary, &c.Body, &c.LanguageCode, &c.ImageID,
		&c.AuthorID, &c.ContentGroupID, &c.PublishedDate, &c.IsPublished, &c.Priority,
		&c.CreatedAt, &c.UpdatedAt, &c.GroupName)
}
