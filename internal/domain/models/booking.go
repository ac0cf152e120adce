package models

import (
	"time"

	"wheelie-backend/internal/domain"
)

type Booking struct {
	ID         int64                `json:"id"`
	Reference  string               `json:"reference"`
	VehicleID  int64                `json:"vehicleId"`
	UserID     int64                `json:"userId"`
	StartDate  time.Time            `json:"startDate"`
	EndDate    time.Time            `json:"endDate"`
	TotalPrice int64                `json:"totalPrice"`
	Status     domain.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// DisplayStatus derives the presentation status; a confirmed booking whose
// end date has passed shows as completed.
func (b Booking) DisplayStatus(today time.Time) string {
	return domain.DisplayStatus(b.Status, b.EndDate, today)
}

// IsActiveNow reports whether the vehicle is out with the customer today.
func (b Booking) IsActiveNow(today time.Time) bool {
	return domain.IsActiveNow(b.Status, b.StartDate, b.EndDate, today)
}

// BookingDetail joins the vehicle and payments a screen needs alongside the
// booking itself.
type BookingDetail struct {
	Booking
	Vehicle       *Vehicle  `json:"vehicle,omitempty"`
	Payments      []Payment `json:"payments,omitempty"`
	DisplayStatus string    `json:"displayStatus"`
	ActiveNow     bool      `json:"activeNow"`
}

// BookingFilter narrows admin booking listings. Tab mirrors the back-office
// tabs: active, pending, completed, cancelled.
type BookingFilter struct {
	UserID *int64
	Status domain.BookingStatus
	Tab    string
}
