package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserReportRow is one line of the user activity report.
type UserReportRow struct {
	ID           uint64
	Username     string
	DisplayName  string
	IsActive     bool
	Roles        string
	ActiveTokens int64
	LastLoggedIn *time.Time
	CreatedAt    *time.Time
}

type ReportRepositoryInterface interface {
	GetUserReportRows(ctx context.Context) ([]UserReportRow, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &ReportRepository{storage: storage}
}

func (r *ReportRepository) GetUserReportRows(ctx context.Context) ([]UserReportRow, error) {
	query := `SELECT u.id, u.username, u.display_name, u.is_active,
		COALESCE(string_agg(DISTINCT r.name, ', '), ''),
		(SELECT COUNT(*) FROM user_tokens t WHERE t.user_id = u.id AND t.refresh_token_expires_at > NOW()),
		u.last_logged_in, u.created_at
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		LEFT JOIN roles r ON r.id = ur.role_id
		GROUP BY u.id
		ORDER BY u.username`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]UserReportRow, 0)
	for rows.Next() {
		var row UserReportRow
		if err := rows.Scan(&row.ID, &row.Username, &row.DisplayName, &row.IsActive,
			&row.Roles, &row.ActiveTokens, &row.LastLoggedIn, &row.CreatedAt); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
