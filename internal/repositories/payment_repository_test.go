package repositories

import (
	"testing"
	"time"

	"wheelie-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPaymentRepositoryUpdateStatusClearsPaidAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()

	// paid keeps the timestamp
	mock.ExpectExec("UPDATE payments SET status").
		WithArgs("paid", now, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	repo := PaymentRepository{DB: db}
	if err := repo.UpdateStatus(11, domain.PaymentPaid, &now); err != nil {
		t.Fatalf("UpdateStatus paid returned error: %v", err)
	}

	// any other status nulls paid_at even when a timestamp is passed
	mock.ExpectExec("UPDATE payments SET status").
		WithArgs("failed", nil, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.UpdateStatus(11, domain.PaymentFailed, &now); err != nil {
		t.Fatalf("UpdateStatus failed returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentRepositoryListByBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "booking_id", "amount", "method", "status", "paid_at", "created_at", "updated_at",
	}).
		AddRow(12, 5, 1600, "upi", "paid", now, now, now).
		AddRow(11, 5, 1600, "cash", "failed", nil, now, now)

	mock.ExpectQuery("FROM payments WHERE booking_id").WithArgs(int64(5)).
		WillReturnRows(rows)

	repo := PaymentRepository{DB: db}
	payments, err := repo.ListByBooking(5)
	if err != nil {
		t.Fatalf("ListByBooking returned error: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}
	if payments[0].PaidAt == nil {
		t.Fatalf("paid payment should carry paid_at")
	}
	if payments[1].PaidAt != nil {
		t.Fatalf("failed payment should not carry paid_at")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaymentRepositorySumPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE\\(SUM").WithArgs("paid").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(4800))

	repo := PaymentRepository{DB: db}
	total, err := repo.SumPaid()
	if err != nil {
		t.Fatalf("SumPaid returned error: %v", err)
	}
	if total != 4800 {
		t.Fatalf("expected 4800, got %d", total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
