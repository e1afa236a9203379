package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"backoffice/internal/entities"
)

const userTokenSelectFields = "t.id, t.user_id, t.access_token_hash, t.refresh_token_id_hash, t.refresh_token_id_hash_source, t.access_token_expires_at, t.refresh_token_expires_at, t.created_at"

type UserTokenRepositoryInterface interface {
	// AddUserToken inserts the new token row; when deleteOthers is set, every
	// other live token of the same user is removed inside the same
	// transaction (single-login policy).
	AddUserToken(ctx context.Context, tx pgx.Tx, token *entities.UserToken, deleteOthers bool) error
	// FindTokenBySerialHash returns the non-expired token row with its owning
	// user, or nil when no such row exists.
	FindTokenBySerialHash(ctx context.Context, serialHash string) (*entities.UserToken, error)
	// WasSerialRotated reports whether serialHash shows up as the rotation
	// source of another row, i.e. the presented serial was already superseded.
	WasSerialRotated(ctx context.Context, serialHash string) (bool, error)
	IsValidAccessTokenHash(ctx context.Context, userID uint64, accessTokenHash string) (bool, error)
	DeleteTokensByUser(ctx context.Context, userID uint64) error
	DeleteTokenBySerialHash(ctx context.Context, userID uint64, serialHash string) error
	// DeleteTokenChainBySerialHash removes the row holding serialHash and
	// every ancestor reachable through refresh_token_id_hash_source. Called
	// on rotation so a superseded serial stops resolving regardless of the
	// multi-login policy.
	DeleteTokenChainBySerialHash(ctx context.Context, tx pgx.Tx, userID uint64, serialHash string) error
	DeleteExpiredTokens(ctx context.Context, userID uint64) error
}

type UserTokenRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserTokenRepository(storage *pgxpool.Pool, logger *zap.Logger) UserTokenRepositoryInterface {
	return &UserTokenRepository{storage: storage, logger: logger}
}

func (r *UserTokenRepository) AddUserToken(ctx context.Context, tx pgx.Tx, token *entities.UserToken, deleteOthers bool) error {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	if deleteOthers {
		if _, err := q.Exec(ctx,
			"DELETE FROM user_tokens WHERE user_id = $1 AND refresh_token_id_hash <> $2",
			token.UserID, token.RefreshTokenIDHash,
		); err != nil {
			return err
		}
	}

	query := `INSERT INTO user_tokens
		(user_id, access_token_hash, refresh_token_id_hash, refresh_token_id_hash_source, access_token_expires_at, refresh_token_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`

	return q.QueryRow(ctx, query,
		token.UserID, token.AccessTokenHash, token.RefreshTokenIDHash,
		token.RefreshTokenIDHashSource, token.AccessTokenExpiresAt, token.RefreshTokenExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *UserTokenRepository) FindTokenBySerialHash(ctx context.Context, serialHash string) (*entities.UserToken, error) {
	query := `SELECT ` + userTokenSelectFields + `, ` + userSelectFields + `
		FROM user_tokens t JOIN users u ON u.id = t.user_id
		WHERE t.refresh_token_id_hash = $1 AND t.refresh_token_expires_at > NOW()`

	row := r.storage.QueryRow(ctx, query, serialHash)

	var token entities.UserToken
	var user entities.User
	err := row.Scan(
		&token.ID, &token.UserID, &token.AccessTokenHash, &token.RefreshTokenIDHash,
		&token.RefreshTokenIDHashSource, &token.AccessTokenExpiresAt, &token.RefreshTokenExpiresAt,
		&token.CreatedAt,
		&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.DisplayName,
		&user.Password, &user.SerialNumber, &user.IsActive,
		&user.DeviceID, &user.MobileNumber, &user.ProfileImage,
		&user.LastLoggedIn, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	token.User = &user
	return &token, nil
}

func (r *UserTokenRepository) WasSerialRotated(ctx context.Context, serialHash string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM user_tokens WHERE refresh_token_id_hash_source = $1)",
		serialHash,
	).Scan(&exists)
	return exists, err
}

func (r *UserTokenRepository) IsValidAccessTokenHash(ctx context.Context, userID uint64, accessTokenHash string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM user_tokens WHERE user_id = $1 AND access_token_hash = $2 AND access_token_expires_at > NOW())",
		userID, accessTokenHash,
	).Scan(&exists)
	return exists, err
}

func (r *UserTokenRepository) DeleteTokensByUser(ctx context.Context, userID uint64) error {
	_, err := r.storage.Exec(ctx, "DELETE FROM user_tokens WHERE user_id = $1", userID)
	return err
}

func (r *UserTokenRepository) DeleteTokenBySerialHash(ctx context.Context, userID uint64, serialHash string) error {
	_, err := r.storage.Exec(ctx,
		"DELETE FROM user_tokens WHERE user_id = $1 AND refresh_token_id_hash = $2",
		userID, serialHash,
	)
	return err
}

func (r *UserTokenRepository) DeleteTokenChainBySerialHash(ctx context.Context, tx pgx.Tx, userID uint64, serialHash string) error {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	_, err := q.Exec(ctx, `WITH RECURSIVE chain AS (
			SELECT id, refresh_token_id_hash_source FROM user_tokens
			WHERE user_id = $1 AND refresh_token_id_hash = $2
		UNION ALL
			SELECT t.id, t.refresh_token_id_hash_source
			FROM user_tokens t
			JOIN chain c ON t.refresh_token_id_hash = c.refresh_token_id_hash_source
			WHERE t.user_id = $1
		)
		DELETE FROM user_tokens WHERE id IN (SELECT id FROM chain)`,
		userID, serialHash,
	)
	return err
}

// DeleteExpiredTokens removes rows whose refresh window has passed. Run
// opportunistically on login; there is no background sweeper.
func (r *UserTokenRepository) DeleteExpiredTokens(ctx context.Context, userID uint64) error {
	_, err := r.storage.Exec(ctx,
		"DELETE FROM user_tokens WHERE user_id = $1 AND refresh_token_expires_at <= NOW()",
		userID,
	)
	return err
}
