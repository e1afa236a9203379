package dto

type CreateSupportRequestDTO struct {
	Subject string `json:"subject" validate:"required,max=256"`
	Message string `json:"message" validate:"required"`
}

type RespondSupportRequestDTO struct {
	ResponseMessage string `json:"response_message" validate:"required"`
}

type UpdateSupportStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=pending answered closed"`
}
