package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"backoffice/pkg/types"
)

// Message is a broadcast announcement from one user; per-user read state is
// tracked in MessageSeen.
type Message struct {
	ID           uint64      `json:"id" db:"id"`
	Subject      string      `json:"subject" db:"subject"`
	Description  string      `json:"description" db:"description"`
	PictureID    null.String `json:"picture_id,omitempty" db:"picture_id"`
	SenderUserID uint64      `json:"sender_user_id" db:"sender_user_id"`

	SenderName string `json:"sender_name,omitempty" db:"-"`
	Seen       bool   `json:"seen" db:"-"`

	types.BaseEntity
	types.SoftDelete
}

type MessageSeen struct {
	ID        uint64    `json:"id" db:"id"`
	MessageID uint64    `json:"message_id" db:"message_id"`
	UserID    uint64    `json:"user_id" db:"user_id"`
	SeenAt    time.Time `json:"seen_at" db:"seen_at"`
}
