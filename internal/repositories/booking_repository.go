package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "wheelie-backend/internal/config"
	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"
	"wheelie-backend/internal/utils"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `
	id,
	COALESCE(reference,''),
	vehicle_id,
	user_id,
	start_date,
	end_date,
	COALESCE(total_price,0),
	COALESCE(status,'pending'),
	created_at,
	updated_at`

func (r BookingRepository) Insert(b models.Booking) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO bookings (reference, vehicle_id, user_id, start_date, end_date, total_price, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		b.Reference,
		b.VehicleID,
		b.UserID,
		utils.FormatDate(b.StartDate),
		utils.FormatDate(b.EndDate),
		b.TotalPrice,
		string(b.Status),
	)
	if err != nil {
		return 0, domain.StoreError{Op: "insert booking", Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow("SELECT "+bookingColumns+" FROM bookings WHERE id = ? LIMIT 1", id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.StoreError{Op: "get booking", Err: err}
	}
	return b, nil
}

// FindPendingDuplicate looks for an identical pending booking so a retried
// form post does not create a second row.
func (r BookingRepository) FindPendingDuplicate(vehicleID, userID int64, start, end time.Time) (models.Booking, bool, error) {
	row := r.db().QueryRow("SELECT "+bookingColumns+` FROM bookings
		WHERE vehicle_id = ? AND user_id = ? AND start_date = ? AND end_date = ? AND status = ?
		ORDER BY id DESC LIMIT 1`,
		vehicleID, userID, utils.FormatDate(start), utils.FormatDate(end), string(domain.BookingPending),
	)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, false, nil
		}
		return models.Booking{}, false, domain.StoreError{Op: "find duplicate booking", Err: err}
	}
	return b, true, nil
}

// UpdateStatus writes the new status. Transition legality is the service's
// job; this only touches the row.
func (r BookingRepository) UpdateStatus(id int64, status domain.BookingStatus) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	res, err := r.db().Exec(`UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ?`, string(status), id)
	if err != nil {
		return domain.StoreError{Op: "update booking status", Err: err}
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, domain.ValidationError{Field: "user_id", Msg: "must be positive"}
	}
	return r.list("WHERE user_id = ?", userID)
}

// List returns bookings for the admin screen, optionally narrowed by status.
func (r BookingRepository) List(filter models.BookingFilter) ([]models.Booking, error) {
	where := []string{}
	args := []any{}
	if filter.UserID != nil {
		where = append(where, "user_id = ?")
		args = append(args, *filter.UserID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}
	return r.list(clause, args...)
}

func (r BookingRepository) list(whereClause string, args ...any) ([]models.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings " + whereClause + " ORDER BY id DESC"
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.StoreError{Op: "list bookings", Err: err}
	}
	defer rows.Close()

	list := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.StoreError{Op: "scan booking", Err: err}
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError{Op: "iterate bookings", Err: err}
	}
	return list, nil
}

func (r BookingRepository) CountAll() (int, error) {
	var count int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		return 0, domain.StoreError{Op: "count bookings", Err: err}
	}
	return count, nil
}

// CountActiveOn counts confirmed bookings whose date range covers the day.
func (r BookingRepository) CountActiveOn(day time.Time) (int, error) {
	var count int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM bookings
		WHERE status = ? AND start_date <= ? AND end_date >= ?
	`, string(domain.BookingConfirmed), utils.FormatDate(day), utils.FormatDate(day)).Scan(&count)
	if err != nil {
		return 0, domain.StoreError{Op: "count active bookings", Err: err}
	}
	return count, nil
}

func scanBooking(row rowScanner) (models.Booking, error) {
	var b models.Booking
	var status string
	if err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.VehicleID,
		&b.UserID,
		&b.StartDate,
		&b.EndDate,
		&b.TotalPrice,
		&status,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	return b, nil
}
