package services

import (
	"fmt"
	"testing"
	"time"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func paymentRow(id, bookingID int64, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "booking_id", "amount", "method", "status", "paid_at", "created_at", "updated_at",
	}).AddRow(id, bookingID, 1600, "upi", status, nil, now, now)
}

func TestRecordPaymentOnOwnBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(5)).
		WillReturnRows(bookingRow(5, 9, "pending", start, start.AddDate(0, 0, 2)))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(11, 1))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
	}
	payment, err := svc.RecordPayment(domain.Session{UserID: 9, Role: domain.RoleUser}, 5, 1600, "card")
	if err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}
	if payment.ID != 11 {
		t.Fatalf("expected payment id 11, got %d", payment.ID)
	}
	if payment.Method != domain.MethodOnline {
		t.Fatalf("card should normalize to online, got %s", payment.Method)
	}
	if payment.Status != domain.PaymentPending {
		t.Fatalf("new payment should be pending, got %s", payment.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordPaymentRejectsCancelledBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(5)).
		WillReturnRows(bookingRow(5, 9, "cancelled", start, start.AddDate(0, 0, 2)))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
	}
	if _, err := svc.RecordPayment(domain.Session{UserID: 9, Role: domain.RoleUser}, 5, 1600, "cash"); !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError for cancelled booking, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkPaymentPaidConfirmsBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("FROM payments WHERE id").WithArgs(int64(11)).
		WillReturnRows(paymentRow(11, 5, "pending"))
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(5)).
		WillReturnRows(bookingRow(5, 9, "pending", start, start.AddDate(0, 0, 2)))
	mock.ExpectExec("UPDATE payments SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
	}
	payment, err := svc.MarkPaymentPaid(domain.Session{UserID: 9, Role: domain.RoleUser}, 11)
	if err != nil {
		t.Fatalf("MarkPaymentPaid returned error: %v", err)
	}
	if payment.Status != domain.PaymentPaid {
		t.Fatalf("expected paid, got %s", payment.Status)
	}
	if payment.PaidAt == nil {
		t.Fatalf("paid payment must carry paid_at")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkPaymentPaidRetriesThenReconciliationError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("FROM payments WHERE id").WithArgs(int64(11)).
		WillReturnRows(paymentRow(11, 5, "pending"))
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(5)).
		WillReturnRows(bookingRow(5, 9, "pending", start, start.AddDate(0, 0, 2)))
	mock.ExpectExec("UPDATE payments SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnError(fmt.Errorf("deadlock"))
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnError(fmt.Errorf("deadlock"))

	svc := PaymentService{
		PaymentRepo: repositories.PaymentRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
	}
	payment, err := svc.MarkPaymentPaid(domain.Session{UserID: 9, Role: domain.RoleUser}, 11)
	if !domain.IsReconciliation(err) {
		t.Fatalf("expected ReconciliationError after retry, got %v", err)
	}
	// the payment side already committed; callers get it back for display
	if payment.Status != domain.PaymentPaid {
		t.Fatalf("payment should be paid even when booking confirm fails, got %s", payment.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetPaymentStatusIsAdminOnly(t *testing.T) {
	svc := PaymentService{}
	if _, err := svc.SetPaymentStatus(domain.Session{UserID: 9, Role: domain.RoleUser}, 11, "failed"); !domain.IsForbidden(err) {
		t.Fatalf("expected ForbiddenError for non-admin, got %v", err)
	}
}
