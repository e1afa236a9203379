package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/internal/authz"
	"backoffice/internal/entities"
)

type UserClaimRepositoryInterface interface {
	GetClaims(ctx context.Context) ([]entities.UserClaim, error)
	GetUserClaims(ctx context.Context, userID uint64) ([]entities.UserClaim, error)
	// ReplaceUserClaimsOfType reconciles the user's assignments of one claim
	// type to exactly the given values; an empty slice clears the type. Claim
	// rows are shared between users: missing (type, value) pairs are created,
	// stale assignments are unlinked, and rows still referenced by other users
	// are left in place.
	ReplaceUserClaimsOfType(ctx context.Context, tx pgx.Tx, userID uint64, claimType string, values []string) error
	HasUserClaim(ctx context.Context, userID uint64, claim authz.Permission) (bool, error)
	HasUserClaimType(ctx context.Context, userID uint64, claimType string) (bool, error)
}

type UserClaimRepository struct {
	storage *pgxpool.Pool
}

func NewUserClaimRepository(storage *pgxpool.Pool) UserClaimRepositoryInterface {
	return &UserClaimRepository{storage: storage}
}

func (r *UserClaimRepository) GetClaims(ctx context.Context) ([]entities.UserClaim, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT id, claim_type, claim_value FROM user_claims ORDER BY claim_type, claim_value")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClaims(rows)
}

func (r *UserClaimRepository) GetUserClaims(ctx context.Context, userID uint64) ([]entities.UserClaim, error) {
	query := `SELECT c.id, c.claim_type, c.claim_value
		FROM user_claims c
		JOIN user_user_claims uc ON uc.claim_id = c.id
		WHERE uc.user_id = $1
		ORDER BY c.claim_type, c.claim_value`

	rows, err := r.storage.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClaims(rows)
}

func (r *UserClaimRepository) ReplaceUserClaimsOfType(ctx context.Context, tx pgx.Tx, userID uint64, claimType string, values []string) error {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	// A nil slice would encode as SQL NULL and make the <> ALL predicate
	// vacuous; clearing a type needs an empty array.
	if values == nil {
		values = []string{}
	}

	if len(values) > 0 {
		if _, err := q.Exec(ctx, `INSERT INTO user_claims (claim_type, claim_value)
			SELECT $1, v FROM unnest($2::text[]) AS v
			ON CONFLICT (claim_type, claim_value) DO NOTHING`,
			claimType, values,
		); err != nil {
			return err
		}
	}

	// Unlink assignments of this type no longer in the set; the claim rows
	// themselves stay since other users may reference them.
	if _, err := q.Exec(ctx, `DELETE FROM user_user_claims uc
		USING user_claims c
		WHERE uc.claim_id = c.id AND uc.user_id = $1
		  AND c.claim_type = $2 AND c.claim_value <> ALL($3::text[])`,
		userID, claimType, values,
	); err != nil {
		return err
	}

	if len(values) == 0 {
		return nil
	}

	_, err := q.Exec(ctx, `INSERT INTO user_user_claims (user_id, claim_id)
		SELECT $1, c.id FROM user_claims c
		WHERE c.claim_type = $2 AND c.claim_value = ANY($3::text[])
		ON CONFLICT (user_id, claim_id) DO NOTHING`,
		userID, claimType, values,
	)
	return err
}

func (r *UserClaimRepository) HasUserClaim(ctx context.Context, userID uint64, claim authz.Permission) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM user_user_claims uc
		JOIN user_claims c ON c.id = uc.claim_id
		WHERE uc.user_id = $1 AND c.claim_type = $2 AND c.claim_value = $3)`,
		userID, claim.Type, claim.Value,
	).Scan(&exists)
	return exists, err
}

func (r *UserClaimRepository) HasUserClaimType(ctx context.Context, userID uint64, claimType string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM user_user_claims uc
		JOIN user_claims c ON c.id = uc.claim_id
		WHERE uc.user_id = $1 AND c.claim_type = $2)`,
		userID, claimType,
	).Scan(&exists)
	return exists, err
}

func scanClaims(rows pgx.Rows) ([]entities.UserClaim, error) {
	claims := make([]entities.UserClaim, 0)
	for rows.Next() {
		var c entities.UserClaim
		if err := rows.Scan(&c.ID, &c.ClaimType, &c.ClaimValue); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
