package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	intconfig "wheelie-backend/internal/config"
	intdb "wheelie-backend/internal/db"
	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"
)

type LocationRepository struct {
	DB *sql.DB
}

func (r LocationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const locationColumns = `
	id,
	city,
	COALESCE(address,''),
	latitude,
	longitude,
	COALESCE(pickup_points,''),
	created_at,
	updated_at`

func (r LocationRepository) List() ([]models.Location, error) {
	rows, err := r.db().Query("SELECT " + locationColumns + " FROM locations ORDER BY city ASC")
	if err != nil {
		return nil, domain.StoreError{Op: "list locations", Err: err}
	}
	defer rows.Close()

	list := []models.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, domain.StoreError{Op: "scan location", Err: err}
		}
		list = append(list, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError{Op: "iterate locations", Err: err}
	}
	return list, nil
}

func (r LocationRepository) GetByID(id int64) (models.Location, error) {
	if id <= 0 {
		return models.Location{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow("SELECT "+locationColumns+" FROM locations WHERE id = ? LIMIT 1", id)
	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Location{}, domain.NotFoundError{Resource: "location", Err: err}
		}
		return models.Location{}, domain.StoreError{Op: "get location", Err: err}
	}
	return loc, nil
}

// GetByCity matches case-insensitively so slug lookups like "new delhi" work.
func (r LocationRepository) GetByCity(city string) (models.Location, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return models.Location{}, domain.ValidationError{Field: "city", Msg: "required"}
	}
	row := r.db().QueryRow("SELECT "+locationColumns+" FROM locations WHERE LOWER(city) = LOWER(?) LIMIT 1", city)
	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Location{}, domain.NotFoundError{Resource: "location", Err: err}
		}
		return models.Location{}, domain.StoreError{Op: "get location by city", Err: err}
	}
	return loc, nil
}

func (r LocationRepository) Create(p models.LocationPayload) (int64, error) {
	points, err := marshalPickupPoints(p.PickupPoints)
	if err != nil {
		return 0, err
	}
	res, err := r.db().Exec(`
		INSERT INTO locations (city, address, latitude, longitude, pickup_points, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`,
		strings.TrimSpace(p.City),
		intdb.NullIfEmpty(strings.TrimSpace(p.Address)),
		p.Latitude,
		p.Longitude,
		points,
	)
	if err != nil {
		return 0, wrapMySQLError("create location", "location", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r LocationRepository) Update(id int64, p models.LocationPayload) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	points, err := marshalPickupPoints(p.PickupPoints)
	if err != nil {
		return err
	}
	res, err := r.db().Exec(`
		UPDATE locations
		SET city = ?, address = ?, latitude = ?, longitude = ?, pickup_points = ?, updated_at = NOW()
		WHERE id = ?
	`,
		strings.TrimSpace(p.City),
		intdb.NullIfEmpty(strings.TrimSpace(p.Address)),
		p.Latitude,
		p.Longitude,
		points,
		id,
	)
	if err != nil {
		return wrapMySQLError("update location", "location", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "location"}
	}
	return nil
}

func (r LocationRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	res, err := r.db().Exec(`DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return domain.StoreError{Op: "delete location", Err: err}
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "location"}
	}
	return nil
}

func scanLocation(row rowScanner) (models.Location, error) {
	var loc models.Location
	var lat, lng sql.NullFloat64
	var points string
	if err := row.Scan(
		&loc.ID,
		&loc.City,
		&loc.Address,
		&lat,
		&lng,
		&points,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	); err != nil {
		return models.Location{}, err
	}
	if lat.Valid {
		v := lat.Float64
		loc.Latitude = &v
	}
	if lng.Valid {
		v := lng.Float64
		loc.Longitude = &v
	}
	if strings.TrimSpace(points) != "" {
		_ = json.Unmarshal([]byte(points), &loc.PickupPoints)
	}
	return loc, nil
}

func marshalPickupPoints(points []models.PickupPoint) (any, error) {
	if len(points) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(points)
	if err != nil {
		return nil, domain.ValidationError{Field: "pickupPoints", Msg: "not serializable", Err: err}
	}
	return string(raw), nil
}
