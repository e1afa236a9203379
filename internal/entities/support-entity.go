package entities

import (
	"time"

	"backoffice/pkg/types"
)

type SupportStatus string

const (
	SupportStatusPending  SupportStatus = "pending"
	SupportStatusAnswered SupportStatus = "answered"
	SupportStatusClosed   SupportStatus = "closed"
)

type SupportRequest struct {
	ID         uint64        `json:"id" db:"id"`
	Subject    string        `json:"subject" db:"subject"`
	Message    string        `json:"message" db:"message"`
	Status     SupportStatus `json:"status" db:"status"`
	CustomerID uint64        `json:"customer_id" db:"customer_id"`

	CustomerName string           `json:"customer_name,omitempty" db:"-"`
	Response     *SupportResponse `json:"response,omitempty" db:"-"`

	types.BaseEntity
}

type SupportResponse struct {
	ID               uint64    `json:"id" db:"id"`
	ResponseMessage  string    `json:"response_message" db:"response_message"`
	SupportRequestID uint64    `json:"support_request_id" db:"support_request_id"`
	AdminID          uint64    `json:"admin_id" db:"admin_id"`
	RespondedAt      time.Time `json:"responded_at" db:"responded_at"`
}
