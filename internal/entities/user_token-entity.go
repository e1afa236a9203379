package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// UserToken is one issued refresh-token record. Only hashes are stored; the
// plaintext refresh serial lives inside the signed refresh JWT held by the
// client. Rotation inserts a new row pointing at the superseded serial's hash
// through RefreshTokenIDHashSource, forming an auditable chain.
type UserToken struct {
	ID                       uint64      `json:"id" db:"id"`
	UserID                   uint64      `json:"user_id" db:"user_id"`
	AccessTokenHash          string      `json:"-" db:"access_token_hash"`
	RefreshTokenIDHash       string      `json:"-" db:"refresh_token_id_hash"`
	RefreshTokenIDHashSource null.String `json:"-" db:"refresh_token_id_hash_source"`
	AccessTokenExpiresAt     time.Time   `json:"access_token_expires_at" db:"access_token_expires_at"`
	RefreshTokenExpiresAt    time.Time   `json:"refresh_token_expires_at" db:"refresh_token_expires_at"`
	CreatedAt                time.Time   `json:"created_at" db:"created_at"`

	User *User `json:"-" db:"-"`
}
