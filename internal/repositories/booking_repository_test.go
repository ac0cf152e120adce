package repositories

import (
	"testing"
	"time"

	"wheelie-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func bookingRows(id int64, status string) *sqlmock.Rows {
	now := time.Now()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	return sqlmock.NewRows([]string{
		"id", "reference", "vehicle_id", "user_id", "start_date", "end_date",
		"total_price", "status", "created_at", "updated_at",
	}).AddRow(id, "WW-TEST1234", 3, 9, start, start.AddDate(0, 0, 2), 1600, status, now, now)
}

func TestBookingRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(42)).
		WillReturnRows(bookingRows(42, "confirmed"))

	repo := BookingRepository{DB: db}
	booking, err := repo.GetByID(42)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if booking.ID != 42 || booking.Status != domain.BookingConfirmed {
		t.Fatalf("unexpected booking %+v", booking)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := BookingRepository{DB: db}
	if _, err := repo.GetByID(999); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepositoryFindPendingDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 2)

	mock.ExpectQuery("FROM bookings").
		WithArgs(int64(3), int64(9), "2025-06-01", "2025-06-03", "pending").
		WillReturnRows(bookingRows(42, "pending"))

	repo := BookingRepository{DB: db}
	booking, found, err := repo.FindPendingDuplicate(3, 9, start, end)
	if err != nil {
		t.Fatalf("FindPendingDuplicate returned error: %v", err)
	}
	if !found || booking.ID != 42 {
		t.Fatalf("expected duplicate 42, got found=%v id=%d", found, booking.ID)
	}

	// no match comes back as a clean miss, not an error
	mock.ExpectQuery("FROM bookings").
		WithArgs(int64(3), int64(9), "2025-06-01", "2025-06-03", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	if _, found, err := repo.FindPendingDuplicate(3, 9, start, end); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db}
	if err := repo.UpdateStatus(999, domain.BookingConfirmed); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError for missing row, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingRepositoryCountActiveOn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("confirmed", "2025-06-02", "2025-06-02").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := BookingRepository{DB: db}
	count, err := repo.CountActiveOn(day)
	if err != nil {
		t.Fatalf("CountActiveOn returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 active bookings, got %d", count)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
