package services

import (
	"fmt"
	"strings"
	"time"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"
	"wheelie-backend/internal/repositories"
	"wheelie-backend/internal/utils"

	"github.com/google/uuid"
)

// BookingService owns booking creation and the legal status transitions.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	VehicleRepo repositories.VehicleRepository
	PaymentRepo repositories.PaymentRepository
	RequestID   string
	Now         func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.Today()
}

// CreateBookingInput is what the booking form submits. The total price is
// always computed server-side from the vehicle's daily rate.
type CreateBookingInput struct {
	VehicleID int64
	StartDate time.Time
	EndDate   time.Time
}

// CreateBooking validates dates, prices the rental and persists a pending
// booking. Re-submitting an identical pending booking returns the existing
// one instead of inserting a duplicate.
func (s BookingService) CreateBooking(session domain.Session, in CreateBookingInput) (models.Booking, error) {
	if session.UserID <= 0 {
		return models.Booking{}, domain.ForbiddenError{Msg: "sign in to book a vehicle"}
	}
	if in.VehicleID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "vehicle_id", Msg: "required"}
	}
	if err := domain.ValidateDateRange(in.StartDate, in.EndDate); err != nil {
		return models.Booking{}, err
	}

	vehicle, err := s.VehicleRepo.GetByID(in.VehicleID)
	if err != nil {
		return models.Booking{}, err
	}
	if !vehicle.Available {
		return models.Booking{}, domain.ConflictError{Resource: "vehicle", Msg: "not available for booking"}
	}
	if vehicle.PricePerDay <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "price_per_day", Msg: "vehicle has no valid daily rate"}
	}

	total := domain.TotalPrice(vehicle.PricePerDay, in.StartDate, in.EndDate)

	if existing, found, err := s.BookingRepo.FindPendingDuplicate(in.VehicleID, session.UserID, in.StartDate, in.EndDate); err != nil {
		return models.Booking{}, err
	} else if found {
		utils.LogEvent(s.RequestID, "booking", "create",
			fmt.Sprintf("duplicate submit, returning booking_id=%d", existing.ID))
		return existing, nil
	}

	booking := models.Booking{
		Reference:  newBookingReference(),
		VehicleID:  in.VehicleID,
		UserID:     session.UserID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		TotalPrice: total,
		Status:     domain.BookingPending,
	}
	id, err := s.BookingRepo.Insert(booking)
	if err != nil {
		return models.Booking{}, err
	}
	booking.ID = id

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d vehicle_id=%d user_id=%d total=%d", id, in.VehicleID, session.UserID, total))
	return booking, nil
}

// SetBookingStatus is the administrative override. Only transitions in the
// lifecycle table pass; anything else fails without touching the row.
func (s BookingService) SetBookingStatus(session domain.Session, bookingID int64, rawStatus string) (models.Booking, error) {
	if !session.IsAdmin() {
		return models.Booking{}, domain.ForbiddenError{Msg: "admin role required"}
	}
	newStatus, err := domain.ParseBookingStatus(rawStatus)
	if err != nil {
		return models.Booking{}, err
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if err := domain.CheckTransition(booking.Status, newStatus); err != nil {
		return models.Booking{}, err
	}
	if err := s.BookingRepo.UpdateStatus(bookingID, newStatus); err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "set_status",
		fmt.Sprintf("booking_id=%d %s -> %s by user_id=%d", bookingID, booking.Status, newStatus, session.UserID))
	booking.Status = newStatus
	return booking, nil
}

// GetBooking returns a booking with its vehicle and payments. Customers see
// only their own bookings; admins see all.
func (s BookingService) GetBooking(session domain.Session, bookingID int64) (models.BookingDetail, error) {
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.BookingDetail{}, err
	}
	if booking.UserID != session.UserID && !session.IsAdmin() {
		return models.BookingDetail{}, domain.ForbiddenError{Msg: "not your booking"}
	}
	return s.toDetail(booking), nil
}

// ListUserBookings returns a customer's history, newest first.
func (s BookingService) ListUserBookings(session domain.Session, userID int64) ([]models.BookingDetail, error) {
	if userID != session.UserID && !session.IsAdmin() {
		return nil, domain.ForbiddenError{Msg: "not your bookings"}
	}
	bookings, err := s.BookingRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, s.toDetail(b))
	}
	return out, nil
}

// ListBookings serves the admin back office. Tabs mirror the dashboard:
// active (in use today), pending, completed (derived), cancelled.
func (s BookingService) ListBookings(session domain.Session, filter models.BookingFilter) ([]models.BookingDetail, error) {
	if !session.IsAdmin() {
		return nil, domain.ForbiddenError{Msg: "admin role required"}
	}
	bookings, err := s.BookingRepo.List(filter)
	if err != nil {
		return nil, err
	}

	today := s.now()
	out := []models.BookingDetail{}
	for _, b := range bookings {
		if !matchesTab(b, filter.Tab, today) {
			continue
		}
		out = append(out, s.toDetail(b))
	}
	return out, nil
}

func matchesTab(b models.Booking, tab string, today time.Time) bool {
	switch strings.ToLower(strings.TrimSpace(tab)) {
	case "", "all":
		return true
	case "active":
		return b.IsActiveNow(today)
	case "pending":
		return b.Status == domain.BookingPending
	case "completed":
		return b.DisplayStatus(today) == domain.BookingCompleted
	case "cancelled":
		return b.Status == domain.BookingCancelled
	default:
		return true
	}
}

func (s BookingService) toDetail(b models.Booking) models.BookingDetail {
	today := s.now()
	detail := models.BookingDetail{
		Booking:       b,
		DisplayStatus: b.DisplayStatus(today),
		ActiveNow:     b.IsActiveNow(today),
	}
	if v, err := s.VehicleRepo.GetByID(b.VehicleID); err == nil {
		detail.Vehicle = &v
	}
	if payments, err := s.PaymentRepo.ListByBooking(b.ID); err == nil {
		detail.Payments = payments
	}
	return detail
}

// newBookingReference builds a short human-readable code for receipts.
func newBookingReference() string {
	return "WW-" + strings.ToUpper(uuid.NewString()[:8])
}
