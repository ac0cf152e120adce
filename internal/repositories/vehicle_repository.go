package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "wheelie-backend/internal/config"
	intdb "wheelie-backend/internal/db"
	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleColumns = `
	id,
	name,
	COALESCE(category,''),
	COALESCE(brand,''),
	COALESCE(model,''),
	year,
	COALESCE(price_per_day,0),
	COALESCE(image_url,''),
	COALESCE(available,1),
	location_id,
	created_at,
	updated_at`

// List returns vehicles matching the filter, newest first.
func (r VehicleRepository) List(filter models.VehicleFilter) ([]models.Vehicle, error) {
	where := []string{}
	args := []any{}

	if filter.LocationID != nil {
		where = append(where, "location_id = ?")
		args = append(args, *filter.LocationID)
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.OnlyAvailable {
		where = append(where, "available = 1")
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		where = append(where, "(name LIKE ? OR brand LIKE ? OR model LIKE ?)")
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}

	query := "SELECT " + vehicleColumns + " FROM vehicles"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.StoreError{Op: "list vehicles", Err: err}
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, domain.StoreError{Op: "scan vehicle", Err: err}
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError{Op: "iterate vehicles", Err: err}
	}
	return list, nil
}

func (r VehicleRepository) GetByID(id int64) (models.Vehicle, error) {
	if id <= 0 {
		return models.Vehicle{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}

	row := r.db().QueryRow("SELECT "+vehicleColumns+" FROM vehicles WHERE id = ? LIMIT 1", id)
	v, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle", Err: err}
		}
		return models.Vehicle{}, domain.StoreError{Op: "get vehicle", Err: err}
	}
	return v, nil
}

func (r VehicleRepository) Create(p models.VehiclePayload) (int64, error) {
	available := true
	if p.Available != nil {
		available = *p.Available
	}
	res, err := r.db().Exec(`
		INSERT INTO vehicles (name, category, brand, model, year, price_per_day, image_url, available, location_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		strings.TrimSpace(p.Name),
		p.Category,
		intdb.NullIfEmpty(strings.TrimSpace(p.Brand)),
		intdb.NullIfEmpty(strings.TrimSpace(p.Model)),
		p.Year,
		p.PricePerDay,
		intdb.NullIfEmpty(strings.TrimSpace(p.ImageURL)),
		available,
		p.LocationID,
	)
	if err != nil {
		return 0, wrapMySQLError("create vehicle", "vehicle", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r VehicleRepository) Update(id int64, p models.VehiclePayload) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	available := true
	if p.Available != nil {
		available = *p.Available
	}
	res, err := r.db().Exec(`
		UPDATE vehicles
		SET name = ?, category = ?, brand = ?, model = ?, year = ?, price_per_day = ?, image_url = ?, available = ?, location_id = ?, updated_at = NOW()
		WHERE id = ?
	`,
		strings.TrimSpace(p.Name),
		p.Category,
		intdb.NullIfEmpty(strings.TrimSpace(p.Brand)),
		intdb.NullIfEmpty(strings.TrimSpace(p.Model)),
		p.Year,
		p.PricePerDay,
		intdb.NullIfEmpty(strings.TrimSpace(p.ImageURL)),
		available,
		p.LocationID,
		id,
	)
	if err != nil {
		return wrapMySQLError("update vehicle", "vehicle", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

func (r VehicleRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	res, err := r.db().Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return domain.StoreError{Op: "delete vehicle", Err: err}
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

// CountByLocation tells the admin how many vehicles a location delete will touch.
func (r VehicleRepository) CountByLocation(locationID int64) (int, error) {
	var count int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM vehicles WHERE location_id = ?`, locationID).Scan(&count)
	if err != nil {
		return 0, domain.StoreError{Op: "count vehicles by location", Err: err}
	}
	return count, nil
}

// ClearLocation detaches vehicles from a deleted location. Vehicles are
// never cascade-deleted with their location.
func (r VehicleRepository) ClearLocation(locationID int64) error {
	_, err := r.db().Exec(`UPDATE vehicles SET location_id = NULL, updated_at = NOW() WHERE location_id = ?`, locationID)
	if err != nil {
		return domain.StoreError{Op: "clear vehicle location", Err: err}
	}
	return nil
}

func (r VehicleRepository) CountAll() (int, error) {
	var count int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM vehicles`).Scan(&count); err != nil {
		return 0, domain.StoreError{Op: "count vehicles", Err: err}
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (models.Vehicle, error) {
	var v models.Vehicle
	var year sql.NullInt64
	var locationID sql.NullInt64
	if err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Category,
		&v.Brand,
		&v.Model,
		&year,
		&v.PricePerDay,
		&v.ImageURL,
		&v.Available,
		&locationID,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return models.Vehicle{}, err
	}
	if year.Valid {
		y := int(year.Int64)
		v.Year = &y
	}
	if locationID.Valid {
		id := locationID.Int64
		v.LocationID = &id
	}
	return v, nil
}

// wrapMySQLError maps duplicate-key violations to ConflictError so handlers
// can answer 409 instead of 500.
func wrapMySQLError(op, resource string, err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return domain.ConflictError{Resource: resource, Msg: "already exists", Err: err}
	}
	return domain.StoreError{Op: op, Err: err}
}
