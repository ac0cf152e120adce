package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "wheelie-backend/internal/config"
	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `
	id,
	booking_id,
	COALESCE(amount,0),
	COALESCE(method,''),
	COALESCE(status,'pending'),
	paid_at,
	created_at,
	updated_at`

func (r PaymentRepository) Insert(p models.Payment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO payments (booking_id, amount, method, status, paid_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`,
		p.BookingID,
		p.Amount,
		p.Method,
		string(p.Status),
		p.PaidAt,
	)
	if err != nil {
		return 0, domain.StoreError{Op: "insert payment", Err: err}
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow("SELECT "+paymentColumns+" FROM payments WHERE id = ? LIMIT 1", id)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
		}
		return models.Payment{}, domain.StoreError{Op: "get payment", Err: err}
	}
	return p, nil
}

func (r PaymentRepository) ListByBooking(bookingID int64) ([]models.Payment, error) {
	if bookingID <= 0 {
		return nil, domain.ValidationError{Field: "booking_id", Msg: "must be positive"}
	}
	return r.list("WHERE booking_id = ?", bookingID)
}

func (r PaymentRepository) List(filter models.PaymentFilter) ([]models.Payment, error) {
	where := []string{}
	args := []any{}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Method != "" {
		where = append(where, "method = ?")
		args = append(args, filter.Method)
	}
	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}
	return r.list(clause, args...)
}

func (r PaymentRepository) list(whereClause string, args ...any) ([]models.Payment, error) {
	query := "SELECT " + paymentColumns + " FROM payments " + whereClause + " ORDER BY id DESC"
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.StoreError{Op: "list payments", Err: err}
	}
	defer rows.Close()

	list := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, domain.StoreError{Op: "scan payment", Err: err}
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError{Op: "iterate payments", Err: err}
	}
	return list, nil
}

// UpdateStatus sets the payment status. paid_at is written only for paid and
// cleared otherwise, so a record can never claim paid without a timestamp.
func (r PaymentRepository) UpdateStatus(id int64, status domain.PaymentStatus, paidAt *time.Time) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	if status != domain.PaymentPaid {
		paidAt = nil
	}
	res, err := r.db().Exec(`UPDATE payments SET status = ?, paid_at = ?, updated_at = NOW() WHERE id = ?`,
		string(status), paidAt, id)
	if err != nil {
		return domain.StoreError{Op: "update payment status", Err: err}
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "payment"}
	}
	return nil
}

// SumPaid totals all paid payments (dashboard revenue).
func (r PaymentRepository) SumPaid() (int64, error) {
	var total int64
	err := r.db().QueryRow(`SELECT COALESCE(SUM(amount),0) FROM payments WHERE status = ?`,
		string(domain.PaymentPaid)).Scan(&total)
	if err != nil {
		return 0, domain.StoreError{Op: "sum paid payments", Err: err}
	}
	return total, nil
}

func scanPayment(row rowScanner) (models.Payment, error) {
	var p models.Payment
	var status string
	var paidAt sql.NullTime
	if err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.Method,
		&status,
		&paidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return models.Payment{}, err
	}
	p.Status = domain.PaymentStatus(status)
	if paidAt.Valid {
		t := paidAt.Time
		p.PaidAt = &t
	}
	return p, nil
}
