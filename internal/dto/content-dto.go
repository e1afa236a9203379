package dto

type CreateContentDTO struct {
	Title          string  `json:"title" validate:"required,max=256"`
	Summary        string  `json:"summary" validate:"max=1024"`
	Body           string  `json:"body" validate:"required"`
	LanguageCode   string  `json:"language_code" validate:"required,len=2"`
	ImageID        *uint64 `json:"image_id,omitempty" validate:"omitempty,gt=0"`
	ContentGroupID uint64  `json:"content_group_id" validate:"required,gt=0"`
	IsPublished    bool    `json:"is_published"`
	Priority       int     `json:"priority" validate:"gte=0"`
}

type UpdateContentDTO struct {
	Title          string  `json:"title" validate:"required,max=256"`
	Summary        string  `json:"summary" validate:"max=1024"`
	Body           string  `json:"body" validate:"required"`
	LanguageCode   string  `json:"language_code" validate:"required,len=2"`
	ImageID        *uint64 `json:"image_id,omitempty" validate:"omitempty,gt=0"`
	ContentGroupID uint64  `json:"content_group_id" validate:"required,gt=0"`
	IsPublished    bool    `json:"is_published"`
	Priority       int     `json:"priority" validate:"gte=0"`
}

type CreateContentGroupDTO struct {
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"max=512"`
}
