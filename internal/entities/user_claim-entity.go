package entities

import (
	"backoffice/pkg/types"
)

// UserClaim is a single dynamic permission grant. Rows are unique on
// (claim_type, claim_value) and shared by reference across users through the
// user_user_claims join table; reconciliation must never duplicate a row that
// another user still holds.
type UserClaim struct {
	ID         uint64 `json:"id" db:"id"`
	ClaimType  string `json:"claim_type" db:"claim_type"`
	ClaimValue string `json:"claim_value" db:"claim_value"`

	types.BaseEntity
}
