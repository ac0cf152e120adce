package domain

import (
	"math"
	"time"
)

// Pricing works on whole calendar days; time-of-day never changes the price.
// All amounts are integer rupees.

// RentalDays returns the billable duration for a pickup/dropoff pair.
// A same-day rental is billed as one day. Zero when either date is missing.
func RentalDays(pickup, dropoff time.Time) int {
	if pickup.IsZero() || dropoff.IsZero() {
		return 0
	}
	p := truncateToDate(pickup)
	d := truncateToDate(dropoff)

	diff := d.Sub(p)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	if days == 0 {
		days = 1
	}
	return days
}

// TotalPrice computes days * pricePerDay. Zero when either date is missing,
// so an incomplete booking is never orderable.
func TotalPrice(pricePerDay int64, pickup, dropoff time.Time) int64 {
	days := RentalDays(pickup, dropoff)
	if days == 0 {
		return 0
	}
	return int64(days) * pricePerDay
}

// HourlyRate estimates a per-hour display price from the daily rate. It is
// never part of the total price computation.
func HourlyRate(pricePerDay int64) int64 {
	return int64(math.Round(float64(pricePerDay) / 6.0))
}

// ValidateDateRange rejects incomplete or inverted pickup/dropoff pairs.
// Inverted ranges are refused outright, never silently swapped.
func ValidateDateRange(pickup, dropoff time.Time) error {
	if pickup.IsZero() {
		return ValidationError{Field: "start_date", Msg: "required"}
	}
	if dropoff.IsZero() {
		return ValidationError{Field: "end_date", Msg: "required"}
	}
	if truncateToDate(dropoff).Before(truncateToDate(pickup)) {
		return ValidationError{Field: "end_date", Msg: "must not be before start date"}
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
