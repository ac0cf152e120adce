package models

import (
	"time"

	"wheelie-backend/internal/domain"
)

type Payment struct {
	ID        int64                `json:"id"`
	BookingID int64                `json:"bookingId"`
	Amount    int64                `json:"amount"`
	Method    string               `json:"method"`
	Status    domain.PaymentStatus `json:"status"`
	PaidAt    *time.Time           `json:"paidAt,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// PaymentFilter narrows admin payment listings.
type PaymentFilter struct {
	Status domain.PaymentStatus
	Method string
}
