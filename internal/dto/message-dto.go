package dto

type CreateMessageDTO struct {
	Subject     string `json:"subject" validate:"required,max=256"`
	Description string `json:"description" validate:"required"`
	PictureID   string `json:"picture_id,omitempty"`
}
