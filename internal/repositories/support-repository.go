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

const supportSelectFields = "s.id, s.subject, s.message, s.status, s.customer_id, s.created_at, s.updated_at"

type SupportRepositoryInterface interface {
	// GetSupportRequests lists requests; customerID restricts to one customer
	// (zero means all, for staff views).
	GetSupportRequests(ctx context.Context, customerID uint64, filter types.Filter) ([]entities.SupportRequest, uint64, error)
	FindSupportRequest(ctx context.Context, id uint64) (*entities.SupportRequest, error)
	CreateSupportRequest(ctx context.Context, request *entities.SupportRequest) (uint64, error)
	// AddResponse inserts the staff answer and flips the request to answered
	// inside the given transaction.
	AddResponse(ctx context.Context, tx pgx.Tx, response *entities.SupportResponse) error
	UpdateStatus(ctx context.Context, id uint64, status entities.SupportStatus) error
}

type SupportRepository struct {
	storage *pgxpool.Pool
}

func NewSupportRepository(storage *pgxpool.Pool) SupportRepositoryInterface {
	return &SupportRepository{storage: storage}
}

func (r *SupportRepository) GetSupportRequests(ctx context.Context, customerID uint64, filter types.Filter) ([]entities.SupportRequest, uint64, error) {
	base := psql.Select().
		From("support_requests s").
		Join("users u ON u.id = s.customer_id")

	if customerID != 0 {
		base = base.Where(sq.Eq{"s.customer_id": customerID})
	}
	if status, ok := filter.Filter["status"]; ok {
		base = base.Where(sq.Eq{"s.status": status})
	}
	if filter.Search != "" {
		base = base.Where(sq.ILike{"s.subject": "%" + filter.Search + "%"})
	}

	countQuery, countArgs, err := base.Columns("COUNT(s.id)").ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listBuilder := base.
		Columns(supportSelectFields, "u.display_name").
		OrderBy("s.created_at DESC")
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

	requests := make([]entities.SupportRequest, 0)
	for rows.Next() {
		var req entities.SupportRequest
		if err := rows.Scan(&req.ID, &req.Subject, &req.Message, &req.Status, &req.CustomerID,
			&req.CreatedAt, &req.UpdatedAt, &req.CustomerName); err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

func (r *SupportRepository) FindSupportRequest(ctx context.Context, id uint64) (*entities.SupportRequest, error) {
	query := `SELECT ` + supportSelectFields + `, u.display_name
		FROM support_requests s JOIN users u ON u.id = s.customer_id
		WHERE s.id = $1`

	var req entities.SupportRequest
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Subject, &req.Message, &req.Status, &req.CustomerID,
		&req.CreatedAt, &req.UpdatedAt, &req.CustomerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	var resp entities.SupportResponse
	err = r.storage.QueryRow(ctx,
		`SELECT id, response_message, support_request_id, admin_id, responded_at
		 FROM support_responses WHERE support_request_id = $1
		 ORDER BY responded_at DESC LIMIT 1`, id,
	).Scan(&resp.ID, &resp.ResponseMessage, &resp.SupportRequestID, &resp.AdminID, &resp.RespondedAt)
	if err == nil {
		req.Response = &resp
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	return &req, nil
}

func (r *SupportRepository) CreateSupportRequest(ctx context.Context, request *entities.SupportRequest) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		"INSERT INTO support_requests (subject, message, status, customer_id) VALUES ($1, $2, $3, $4) RETURNING id",
		request.Subject, request.Message, entities.SupportStatusPending, request.CustomerID,
	).Scan(&id)
	return id, err
}

func (r *SupportRepository) AddResponse(ctx context.Context, tx pgx.Tx, response *entities.SupportResponse) error {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	err := q.QueryRow(ctx,
		`INSERT INTO support_responses (response_message, support_request_id, admin_id)
		 VALUES ($1, $2, $3) RETURNING id, responded_at`,
		response.ResponseMessage, response.SupportRequestID, response.AdminID,
	).Scan(&response.ID, &response.RespondedAt)
	if err != nil {
		return err
	}

	tag, err := q.Exec(ctx,
		"UPDATE support_requests SET status = $1, updated_at = NOW() WHERE id = $2",
		entities.SupportStatusAnswered, response.SupportRequestID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SupportRepository) UpdateStatus(ctx context.Context, id uint64, status entities.SupportStatus) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE support_requests SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
