package domain

import (
	"strings"
	"time"
)

// BookingStatus is the stored status of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingCompleted is never stored; it is derived at read time from a
// confirmed booking whose end date has passed.
const BookingCompleted = "completed"

// PaymentStatus is the stored status of a payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment methods accepted at checkout.
const (
	MethodCash   = "cash"
	MethodUPI    = "upi"
	MethodOnline = "online"
)

// bookingTransitions is the single source of truth for legal status changes.
// Nothing leaves cancelled.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
	BookingCancelled: {},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns InvalidTransitionError for an illegal change.
func CheckTransition(from, to BookingStatus) error {
	if !CanTransition(from, to) {
		return InvalidTransitionError{Entity: "booking", From: string(from), To: string(to)}
	}
	return nil
}

// ParseBookingStatus normalizes user input into a known status.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return s, nil
	default:
		return "", ValidationError{Field: "status", Msg: "unknown booking status"}
	}
}

// ParsePaymentStatus normalizes user input into a known payment status.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	s := PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return s, nil
	default:
		return "", ValidationError{Field: "status", Msg: "unknown payment status"}
	}
}

// NormalizePaymentMethod maps checkout input onto cash/upi/online.
// Card payments go through the online flow.
func NormalizePaymentMethod(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case MethodCash:
		return MethodCash, nil
	case MethodUPI:
		return MethodUPI, nil
	case MethodOnline, "card":
		return MethodOnline, nil
	default:
		return "", ValidationError{Field: "payment_method", Msg: "must be cash, upi or online"}
	}
}

// DisplayStatus derives the presentation status: a confirmed booking whose
// end date is in the past shows as completed.
func DisplayStatus(status BookingStatus, endDate, today time.Time) string {
	if status == BookingConfirmed && truncateToDate(endDate).Before(truncateToDate(today)) {
		return BookingCompleted
	}
	return string(status)
}

// IsActiveNow reports whether a booking is currently in use: confirmed and
// today falls within [start, end] inclusive.
func IsActiveNow(status BookingStatus, startDate, endDate, today time.Time) bool {
	if status != BookingConfirmed {
		return false
	}
	d := truncateToDate(today)
	return !d.Before(truncateToDate(startDate)) && !d.After(truncateToDate(endDate))
}
