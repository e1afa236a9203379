package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"backoffice/pkg/types"
)

type User struct {
	ID          uint64 `json:"id" db:"id"`
	Username    string `json:"username" db:"username"`
	FirstName   string `json:"first_name" db:"first_name"`
	LastName    string `json:"last_name" db:"last_name"`
	DisplayName string `json:"display_name" db:"display_name"`

	Password string `json:"-" db:"password"`

	// SerialNumber is the per-user invalidation nonce. Rotating it makes every
	// previously issued access token fail store-level validation.
	SerialNumber string `json:"-" db:"serial_number"`

	IsActive bool `json:"is_active" db:"is_active"`

	// DeviceID pins the account to one registered client when set.
	DeviceID     null.String `json:"device_id,omitempty" db:"device_id"`
	MobileNumber null.String `json:"mobile_number,omitempty" db:"mobile_number"`
	ProfileImage null.String `json:"profile_image,omitempty" db:"profile_image"`

	LastLoggedIn *time.Time `json:"last_logged_in,omitempty" db:"last_logged_in"`

	Roles []Role `json:"roles,omitempty" db:"-"`

	types.BaseEntity
}
