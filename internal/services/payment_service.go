package services

import (
	"fmt"
	"time"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"
	"wheelie-backend/internal/repositories"
	"wheelie-backend/internal/utils"
)

// PaymentService records payments and keeps the payment/booking pair
// consistent: a paid payment always means a confirmed booking.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	RequestID   string
	Now         func() time.Time
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RecordPayment persists a pending payment against a booking. The payer must
// own the booking unless they are an admin. Cancelled bookings take no money.
func (s PaymentService) RecordPayment(session domain.Session, bookingID, amount int64, method string) (models.Payment, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Payment{}, err
	}
	if booking.UserID != session.UserID && !session.IsAdmin() {
		return models.Payment{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	if booking.Status == domain.BookingCancelled {
		return models.Payment{}, domain.ConflictError{Resource: "booking", Msg: "cancelled bookings cannot be paid"}
	}

	normalized, err := domain.NormalizePaymentMethod(method)
	if err != nil {
		return models.Payment{}, err
	}
	if amount <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}

	payment := models.Payment{
		BookingID: bookingID,
		Amount:    amount,
		Method:    normalized,
		Status:    domain.PaymentPending,
	}
	id, err := s.PaymentRepo.Insert(payment)
	if err != nil {
		return models.Payment{}, err
	}
	payment.ID = id

	utils.LogEvent(s.RequestID, "payment", "record",
		fmt.Sprintf("payment_id=%d booking_id=%d amount=%d method=%s", id, bookingID, amount, normalized))
	return payment, nil
}

// MarkPaymentPaid stamps the payment paid and confirms its booking. The two
// writes are not transactional, so the booking update is retried once; if it
// still fails the caller gets a ReconciliationError naming both rows so the
// mismatch can be fixed by hand.
func (s PaymentService) MarkPaymentPaid(session domain.Session, paymentID int64) (models.Payment, error) {
	payment, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	booking, err := s.BookingRepo.GetByID(payment.BookingID)
	if err != nil {
		return models.Payment{}, err
	}
	if booking.UserID != session.UserID && !session.IsAdmin() {
		return models.Payment{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	if booking.Status == domain.BookingCancelled {
		return models.Payment{}, domain.ConflictError{Resource: "booking", Msg: "cancelled bookings cannot be paid"}
	}

	paidAt := s.now()
	if payment.Status != domain.PaymentPaid {
		if err := s.PaymentRepo.UpdateStatus(paymentID, domain.PaymentPaid, &paidAt); err != nil {
			return models.Payment{}, err
		}
		payment.Status = domain.PaymentPaid
		payment.PaidAt = &paidAt
	}

	if booking.Status == domain.BookingPending {
		if err := s.confirmBookingWithRetry(booking.ID, paymentID); err != nil {
			return payment, err
		}
		utils.LogEvent(s.RequestID, "payment", "mark_paid",
			fmt.Sprintf("payment_id=%d paid, booking_id=%d confirmed", paymentID, booking.ID))
	}
	return payment, nil
}

func (s PaymentService) confirmBookingWithRetry(bookingID, paymentID int64) error {
	err := s.BookingRepo.UpdateStatus(bookingID, domain.BookingConfirmed)
	if err == nil {
		return nil
	}
	utils.LogEvent(s.RequestID, "payment", "mark_paid",
		fmt.Sprintf("confirm booking_id=%d failed, retrying: %v", bookingID, err))
	if err = s.BookingRepo.UpdateStatus(bookingID, domain.BookingConfirmed); err != nil {
		return domain.ReconciliationError{BookingID: bookingID, PaymentID: paymentID, Err: err}
	}
	return nil
}

// SetPaymentStatus is the admin override on the payments screen. Setting
// paid goes through MarkPaymentPaid so the booking follows; pending and
// failed simply rewrite the row and clear the paid timestamp.
func (s PaymentService) SetPaymentStatus(session domain.Session, paymentID int64, rawStatus string) (models.Payment, error) {
	if !session.IsAdmin() {
		return models.Payment{}, domain.ForbiddenError{Msg: "admin role required"}
	}
	status, err := domain.ParsePaymentStatus(rawStatus)
	if err != nil {
		return models.Payment{}, err
	}
	if status == domain.PaymentPaid {
		return s.MarkPaymentPaid(session, paymentID)
	}

	if err := s.PaymentRepo.UpdateStatus(paymentID, status, nil); err != nil {
		return models.Payment{}, err
	}
	payment, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	utils.LogEvent(s.RequestID, "payment", "set_status",
		fmt.Sprintf("payment_id=%d -> %s by user_id=%d", paymentID, status, session.UserID))
	return payment, nil
}

// ListPayments serves the admin payments screen.
func (s PaymentService) ListPayments(session domain.Session, filter models.PaymentFilter) ([]models.Payment, error) {
	if !session.IsAdmin() {
		return nil, domain.ForbiddenError{Msg: "admin role required"}
	}
	return s.PaymentRepo.List(filter)
}
