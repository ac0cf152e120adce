package services

import (
	"time"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/repositories"
	"wheelie-backend/internal/utils"
)

type ReportsService struct {
	VehicleRepo repositories.VehicleRepository
	BookingRepo repositories.BookingRepository
	UserRepo    repositories.UserRepository
	PaymentRepo repositories.PaymentRepository
	Now         func() time.Time
}

// DashboardStats backs the admin landing page counters.
type DashboardStats struct {
	TotalVehicles  int   `json:"total_vehicles"`
	TotalBookings  int   `json:"total_bookings"`
	ActiveBookings int   `json:"active_bookings"`
	TotalUsers     int   `json:"total_users"`
	TotalRevenue   int64 `json:"total_revenue"`
}

// GetDashboardStats aggregates fleet size, booking volume, rentals out today
// and revenue from paid payments.
func (s ReportsService) GetDashboardStats(session domain.Session) (DashboardStats, error) {
	if !session.IsAdmin() {
		return DashboardStats{}, domain.ForbiddenError{Msg: "admin role required"}
	}

	var stats DashboardStats
	var err error
	if stats.TotalVehicles, err = s.VehicleRepo.CountAll(); err != nil {
		return DashboardStats{}, err
	}
	if stats.TotalBookings, err = s.BookingRepo.CountAll(); err != nil {
		return DashboardStats{}, err
	}
	if stats.ActiveBookings, err = s.BookingRepo.CountActiveOn(s.today()); err != nil {
		return DashboardStats{}, err
	}
	if stats.TotalUsers, err = s.UserRepo.CountAll(); err != nil {
		return DashboardStats{}, err
	}
	if stats.TotalRevenue, err = s.PaymentRepo.SumPaid(); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}

func (s ReportsService) today() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.Today()
}
