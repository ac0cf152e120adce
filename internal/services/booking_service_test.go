package services

import (
	"testing"
	"time"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func vehicleRow(id int64, pricePerDay int64, available int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "category", "brand", "model", "year",
		"price_per_day", "image_url", "available", "location_id",
		"created_at", "updated_at",
	}).AddRow(id, "Royal Enfield Classic 350", "cruiser", "Royal Enfield", "Classic 350", 2023,
		pricePerDay, "", available, nil, now, now)
}

func bookingRow(id int64, userID int64, status string, start, end time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "reference", "vehicle_id", "user_id", "start_date", "end_date",
		"total_price", "status", "created_at", "updated_at",
	}).AddRow(id, "WW-TEST1234", 3, userID, start, end, 1600, status, now, now)
}

func TestCreateBookingComputesTotalServerSide(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 2)

	mock.ExpectQuery("FROM vehicles WHERE id").WithArgs(int64(3)).
		WillReturnRows(vehicleRow(3, 800, 1))
	mock.ExpectQuery("FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
	}
	booking, err := svc.CreateBooking(domain.Session{UserID: 9, Role: domain.RoleUser}, CreateBookingInput{
		VehicleID: 3, StartDate: start, EndDate: end,
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if booking.ID != 7 {
		t.Fatalf("expected booking id 7, got %d", booking.ID)
	}
	if booking.TotalPrice != 1600 {
		t.Fatalf("expected total 1600 for 2 days at 800, got %d", booking.TotalPrice)
	}
	if booking.Status != domain.BookingPending {
		t.Fatalf("new booking should be pending, got %s", booking.Status)
	}
	if booking.Reference == "" {
		t.Fatalf("new booking should carry a reference")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingReturnsExistingDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 2)

	mock.ExpectQuery("FROM vehicles WHERE id").WithArgs(int64(3)).
		WillReturnRows(vehicleRow(3, 800, 1))
	mock.ExpectQuery("FROM bookings").
		WillReturnRows(bookingRow(42, 9, "pending", start, end))

	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
	}
	booking, err := svc.CreateBooking(domain.Session{UserID: 9, Role: domain.RoleUser}, CreateBookingInput{
		VehicleID: 3, StartDate: start, EndDate: end,
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if booking.ID != 42 {
		t.Fatalf("expected existing booking 42, got %d", booking.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRejectsBadInput(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2025, 6, 5, 0, 0, 0, 0, time.Local)
	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		VehicleRepo: repositories.VehicleRepository{DB: db},
	}

	// dropoff before pickup fails before any query runs
	_, err = svc.CreateBooking(domain.Session{UserID: 9, Role: domain.RoleUser}, CreateBookingInput{
		VehicleID: 3, StartDate: start, EndDate: start.AddDate(0, 0, -1),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for inverted range, got %v", err)
	}

	// anonymous caller
	_, err = svc.CreateBooking(domain.Session{}, CreateBookingInput{
		VehicleID: 3, StartDate: start, EndDate: start,
	})
	if !domain.IsForbidden(err) {
		t.Fatalf("expected ForbiddenError for anonymous caller, got %v", err)
	}

	// unavailable vehicle
	mock.ExpectQuery("FROM vehicles WHERE id").WithArgs(int64(3)).
		WillReturnRows(vehicleRow(3, 800, 0))
	_, err = svc.CreateBooking(domain.Session{UserID: 9, Role: domain.RoleUser}, CreateBookingInput{
		VehicleID: 3, StartDate: start, EndDate: start,
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError for unavailable vehicle, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetBookingStatusEnforcesTransitions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	admin := domain.Session{UserID: 1, Role: domain.RoleAdmin}

	// pending -> confirmed passes and writes the row
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(42)).
		WillReturnRows(bookingRow(42, 9, "pending", start, start.AddDate(0, 0, 2)))
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := BookingService{BookingRepo: repositories.BookingRepository{DB: db}}
	booking, err := svc.SetBookingStatus(admin, 42, "confirmed")
	if err != nil {
		t.Fatalf("SetBookingStatus returned error: %v", err)
	}
	if booking.Status != domain.BookingConfirmed {
		t.Fatalf("expected confirmed, got %s", booking.Status)
	}

	// cancelled is terminal; the row is read but never written
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(42)).
		WillReturnRows(bookingRow(42, 9, "cancelled", start, start.AddDate(0, 0, 2)))
	if _, err := svc.SetBookingStatus(admin, 42, "confirmed"); !domain.IsInvalidTransition(err) {
		t.Fatalf("expected InvalidTransitionError out of cancelled, got %v", err)
	}

	// non-admins never reach the store
	if _, err := svc.SetBookingStatus(domain.Session{UserID: 9, Role: domain.RoleUser}, 42, "cancelled"); !domain.IsForbidden(err) {
		t.Fatalf("expected ForbiddenError for non-admin, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
