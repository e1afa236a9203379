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

const messageSelectFields = "m.id, m.subject, m.description, m.picture_id, m.sender_user_id, m.created_at, m.updated_at"

type MessageRepositoryInterface interface {
	// GetMessages lists non-deleted broadcasts with per-viewer seen state.
	GetMessages(ctx context.Context, viewerID uint64, filter types.Filter) ([]entities.Message, uint64, error)
	FindMessage(ctx context.Context, id uint64) (*entities.Message, error)
	CreateMessage(ctx context.Context, message *entities.Message) (uint64, error)
	DeleteMessage(ctx context.Context, id uint64) error
	MarkSeen(ctx context.Context, messageID, userID uint64) error
	CountUnseen(ctx context.Context, userID uint64) (uint64, error)
}

type MessageRepository struct {
	storage *pgxpool.Pool
}

func NewMessageRepository(storage *pgxpool.Pool) MessageRepositoryInterface {
	return &MessageRepository{storage: storage}
}

func (r *MessageRepository) GetMessages(ctx context.Context, viewerID uint64, filter types.Filter) ([]entities.Message, uint64, error) {
	base := psql.Select().
		From("messages m").
		Join("users u ON u.id = m.sender_user_id").
		Where(sq.Eq{"m.deleted_at": nil})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"m.subject": pattern},
			sq.ILike{"m.description": pattern},
		})
	}

	countQuery, countArgs, err := base.Columns("COUNT(m.id)").ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listBuilder := base.
		Columns(messageSelectFields, "u.display_name").
		Column("EXISTS (SELECT 1 FROM message_seens s WHERE s.message_id = m.id AND s.user_id = ?) AS seen", viewerID).
		OrderBy("m.created_at DESC")
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

	messages := make([]entities.Message, 0)
	for rows.Next() {
		var m entities.Message
		if err := rows.Scan(&m.ID, &m.Subject, &m.Description, &m.PictureID, &m.SenderUserID,
			&m.CreatedAt, &m.UpdatedAt, &m.SenderName, &m.Seen); err != nil {
			return nil, 0, err
		}
		messages = append(messages, m)
	}
	return messages, total, rows.Err()
}

func (r *MessageRepository) FindMessage(ctx context.Context, id uint64) (*entities.Message, error) {
	query := `SELECT ` + messageSelectFields + `, u.display_name
		FROM messages m JOIN users u ON u.id = m.sender_user_id
		WHERE m.id = $1 AND m.deleted_at IS NULL`

	var m entities.Message
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Subject, &m.Description, &m.PictureID, &m.SenderUserID,
		&m.CreatedAt, &m.UpdatedAt, &m.SenderName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepository) CreateMessage(ctx context.Context, message *entities.Message) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO messages (subject, description, picture_id, sender_user_id) VALUES ($1, $2, $3, $4) RETURNING id",
		message.Subject, message.Description, message.PictureID, message.SenderUserID,
	).Scan(&id)
	return id, err
}

func (r *MessageRepository) DeleteMessage(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE messages SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MessageRepository) MarkSeen(ctx context.Context, messageID, userID uint64) error {
	_, err := r.storage.Exec(ctx,
		"INSERT INTO message_seens (message_id, user_id) VALUES ($1, $2) ON CONFLICT (message_id, user_id) DO NOTHING",
		messageID, userID,
	)
	return err
}

func (r *MessageRepository) CountUnseen(ctx context.Context, userID uint64) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx, `SELECT COUNT(m.id) FROM messages m
		WHERE m.deleted_at IS NULL
		  AND NOT EXISTS (SELECT 1 FROM message_seens s WHERE s.message_id = m.id AND s.user_id = $1)`,
		userID,
	).Scan(&count)
	return count, err
}
