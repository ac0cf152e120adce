package domain

import (
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, n)
}

func TestRentalDays(t *testing.T) {
	cases := []struct {
		name    string
		pickup  time.Time
		dropoff time.Time
		want    int
	}{
		{"same day counts as one", day(0), day(0), 1},
		{"two days", day(0), day(2), 2},
		{"one day", day(0), day(1), 1},
		{"week", day(0), day(7), 7},
		{"missing pickup", time.Time{}, day(2), 0},
		{"missing dropoff", day(0), time.Time{}, 0},
	}

	for _, tc := range cases {
		if got := RentalDays(tc.pickup, tc.dropoff); got != tc.want {
			t.Errorf("%s: RentalDays = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestRentalDaysIgnoresTimeOfDay(t *testing.T) {
	pickup := time.Date(2025, 6, 1, 23, 30, 0, 0, time.Local)
	dropoff := time.Date(2025, 6, 3, 1, 15, 0, 0, time.Local)
	if got := RentalDays(pickup, dropoff); got != 2 {
		t.Fatalf("RentalDays = %d, want 2", got)
	}
}

func TestTotalPrice(t *testing.T) {
	// vehicle at 500/day, same-day rental bills a full day
	if got := TotalPrice(500, day(0), day(0)); got != 500 {
		t.Fatalf("same-day total = %d, want 500", got)
	}
	// 800/day over two days
	if got := TotalPrice(800, day(0), day(2)); got != 1600 {
		t.Fatalf("two-day total = %d, want 1600", got)
	}
	// incomplete dates are never orderable
	if got := TotalPrice(800, time.Time{}, day(2)); got != 0 {
		t.Fatalf("missing date total = %d, want 0", got)
	}
}

func TestTotalPriceExactForIntegerInputs(t *testing.T) {
	for days := 1; days <= 30; days++ {
		got := TotalPrice(743, day(0), day(days))
		if got != int64(days)*743 {
			t.Fatalf("total for %d days = %d, want %d", days, got, int64(days)*743)
		}
	}
}

func TestHourlyRate(t *testing.T) {
	cases := []struct {
		perDay int64
		want   int64
	}{
		{800, 133},
		{400, 67},
		{600, 100},
		{350, 58},
		{500, 83},
	}
	for _, tc := range cases {
		if got := HourlyRate(tc.perDay); got != tc.want {
			t.Errorf("HourlyRate(%d) = %d, want %d", tc.perDay, got, tc.want)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	if err := ValidateDateRange(day(0), day(2)); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if err := ValidateDateRange(day(0), day(0)); err != nil {
		t.Fatalf("same-day range rejected: %v", err)
	}
	if err := ValidateDateRange(day(2), day(0)); !IsValidation(err) {
		t.Fatalf("inverted range should be a validation error, got %v", err)
	}
	if err := ValidateDateRange(time.Time{}, day(0)); !IsValidation(err) {
		t.Fatalf("missing pickup should be a validation error, got %v", err)
	}
	if err := ValidateDateRange(day(0), time.Time{}); !IsValidation(err) {
		t.Fatalf("missing dropoff should be a validation error, got %v", err)
	}
}
