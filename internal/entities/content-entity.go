package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"backoffice/pkg/types"
)

type Content struct {
	ID             uint64      `json:"id" db:"id"`
	Title          string      `json:"title" db:"title"`
	Summary        string      `json:"summary" db:"summary"`
	Body           string      `json:"body" db:"body"`
	LanguageCode   string      `json:"language_code" db:"language_code"`
	ImageID        null.Uint64 `json:"image_id,omitempty" db:"image_id"`
	AuthorID       uint64      `json:"author_id" db:"author_id"`
	ContentGroupID uint64      `json:"content_group_id" db:"content_group_id"`
	PublishedDate  *time.Time  `json:"published_date,omitempty" db:"published_date"`
	IsPublished    bool        `json:"is_published" db:"is_published"`
	Priority       int         `json:"priority" db:"priority"`

	GroupName string `json:"group_name,omitempty" db:"-"`

	types.BaseEntity
	types.SoftDelete
}

type ContentGroup struct {
	ID          uint64 `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`

	types.BaseEntity
}
