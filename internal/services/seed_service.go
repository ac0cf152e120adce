package services

import (
	"database/sql"
	"fmt"

	intconfig "wheelie-backend/internal/config"
	intdb "wheelie-backend/internal/db"
	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"
	"wheelie-backend/internal/repositories"
	"wheelie-backend/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// SeedService creates the schema and loads the starter fleet for demos and
// fresh installs. Seeding is additive and skips rows that already exist.
type SeedService struct {
	DB           *sql.DB
	LocationRepo repositories.LocationRepository
	VehicleRepo  repositories.VehicleRepository
	UserRepo     repositories.UserRepository
	RequestID    string
}

func (s SeedService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// SeedResult reports what the run actually inserted.
type SeedResult struct {
	Locations int `json:"locations"`
	Vehicles  int `json:"vehicles"`
	Users     int `json:"users"`
}

// Run ensures the schema exists and inserts the sample catalog.
func (s SeedService) Run(session domain.Session) (SeedResult, error) {
	if !session.IsAdmin() {
		return SeedResult{}, domain.ForbiddenError{Msg: "admin role required"}
	}
	if err := s.EnsureSchema(); err != nil {
		return SeedResult{}, err
	}

	var result SeedResult
	locationIDs := map[string]int64{}
	for _, loc := range seedLocations() {
		existing, err := s.LocationRepo.GetByCity(loc.City)
		if err == nil {
			locationIDs[loc.City] = existing.ID
			continue
		}
		if !domain.IsNotFound(err) {
			return result, err
		}
		id, err := s.LocationRepo.Create(loc)
		if err != nil {
			return result, err
		}
		locationIDs[loc.City] = id
		result.Locations++
	}

	for _, sv := range seedVehicles() {
		existing, err := s.VehicleRepo.List(models.VehicleFilter{Query: sv.payload.Name})
		if err != nil {
			return result, err
		}
		if len(existing) > 0 {
			continue
		}
		if id, ok := locationIDs[sv.city]; ok {
			sv.payload.LocationID = &id
		}
		if _, err := s.VehicleRepo.Create(sv.payload); err != nil {
			return result, err
		}
		result.Vehicles++
	}

	for _, u := range seedUsers() {
		if _, err := s.UserRepo.GetByEmail(u.Email); err == nil {
			continue
		} else if !domain.IsNotFound(err) {
			return result, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return result, domain.InternalError{Msg: "hash seed password", Err: err}
		}
		u.User.PasswordHash = string(hash)
		if _, err := s.UserRepo.Create(u.User); err != nil {
			return result, err
		}
		result.Users++
	}

	utils.LogEvent(s.RequestID, "seed", "run",
		fmt.Sprintf("locations=%d vehicles=%d users=%d", result.Locations, result.Vehicles, result.Users))
	return result, nil
}

// EnsureSchema creates any missing tables.
func (s SeedService) EnsureSchema() error {
	db := s.db()
	if db == nil {
		return domain.InternalError{Msg: "database not available"}
	}
	for table, ddl := range schemaDDL {
		if intdb.HasTable(db, table) {
			continue
		}
		if _, err := db.Exec(ddl); err != nil {
			return domain.StoreError{Op: "create table " + table, Err: err}
		}
	}

	// installs that predate booking references get the column added in place
	if intdb.HasTable(db, "bookings") && !intdb.HasColumn(db, "bookings", "reference") {
		if _, err := db.Exec(`ALTER TABLE bookings ADD COLUMN reference VARCHAR(50) NULL AFTER id`); err != nil {
			return domain.StoreError{Op: "add bookings.reference", Err: err}
		}
	}
	return nil
}

var schemaDDL = map[string]string{
	"users": `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) NOT NULL,
	full_name VARCHAR(255) NULL,
	phone VARCHAR(50) NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'user',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
	"locations": `
CREATE TABLE IF NOT EXISTS locations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	city VARCHAR(100) NOT NULL,
	address VARCHAR(255) NULL,
	latitude DOUBLE NULL,
	longitude DOUBLE NULL,
	pickup_points JSON NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_city (city)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
	"vehicles": `
CREATE TABLE IF NOT EXISTS vehicles (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	category VARCHAR(50) NOT NULL,
	brand VARCHAR(100) NULL,
	model VARCHAR(100) NULL,
	year INT NULL,
	price_per_day BIGINT NOT NULL DEFAULT 0,
	image_url VARCHAR(500) NULL,
	available TINYINT(1) NOT NULL DEFAULT 1,
	location_id BIGINT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_location (location_id),
	KEY idx_category (category)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
	"bookings": `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	reference VARCHAR(50) NULL,
	vehicle_id BIGINT NOT NULL,
	user_id BIGINT NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	total_price BIGINT NOT NULL DEFAULT 0,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_vehicle (vehicle_id),
	KEY idx_user (user_id),
	KEY idx_status (status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
	"payments": `
CREATE TABLE IF NOT EXISTS payments (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	amount BIGINT NOT NULL DEFAULT 0,
	method VARCHAR(20) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	paid_at DATETIME NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_booking (booking_id),
	KEY idx_status (status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
}

func seedLocations() []models.LocationPayload {
	lat := func(v float64) *float64 { return &v }
	return []models.LocationPayload{
		{
			City: "Rishikesh", Address: "Near Laxman Jhula, Rishikesh, Uttarakhand",
			Latitude: lat(30.1087), Longitude: lat(78.2932),
			PickupPoints: []models.PickupPoint{
				{Name: "Laxman Jhula Stand", Address: "Laxman Jhula Road"},
				{Name: "Tapovan Office", Address: "Badrinath Highway, Tapovan"},
			},
		},
		{
			City: "Dehradun", Address: "Rajpur Road, Dehradun, Uttarakhand",
			Latitude: lat(30.3165), Longitude: lat(78.0322),
			PickupPoints: []models.PickupPoint{
				{Name: "ISBT Counter", Address: "ISBT Dehradun"},
				{Name: "Clock Tower Office", Address: "Paltan Bazaar"},
			},
		},
		{
			City: "Haridwar", Address: "Near Har Ki Pauri, Haridwar, Uttarakhand",
			Latitude: lat(29.9457), Longitude: lat(78.1642),
			PickupPoints: []models.PickupPoint{
				{Name: "Railway Station Stand", Address: "Haridwar Junction"},
			},
		},
	}
}

type seedVehicle struct {
	payload models.VehiclePayload
	city    string
}

func seedVehicles() []seedVehicle {
	year := func(v int) *int { return &v }
	return []seedVehicle{
		{models.VehiclePayload{Name: "Honda Activa 6G", Category: models.CategoryScooter, Brand: "Honda", Model: "Activa 6G", Year: year(2023), PricePerDay: 350}, "Rishikesh"},
		{models.VehiclePayload{Name: "TVS Jupiter", Category: models.CategoryScooter, Brand: "TVS", Model: "Jupiter", Year: year(2022), PricePerDay: 350}, "Haridwar"},
		{models.VehiclePayload{Name: "Royal Enfield Classic 350", Category: models.CategoryCruiser, Brand: "Royal Enfield", Model: "Classic 350", Year: year(2023), PricePerDay: 800}, "Rishikesh"},
		{models.VehiclePayload{Name: "Royal Enfield Himalayan", Category: models.CategoryCruiser, Brand: "Royal Enfield", Model: "Himalayan", Year: year(2022), PricePerDay: 800}, "Dehradun"},
		{models.VehiclePayload{Name: "Bajaj Pulsar 150", Category: models.CategoryBike, Brand: "Bajaj", Model: "Pulsar 150", Year: year(2022), PricePerDay: 500}, "Dehradun"},
		{models.VehiclePayload{Name: "Honda CB Shine", Category: models.CategoryBike, Brand: "Honda", Model: "CB Shine", Year: year(2021), PricePerDay: 400}, "Haridwar"},
		{models.VehiclePayload{Name: "Ather 450X", Category: models.CategoryElectric, Brand: "Ather", Model: "450X", Year: year(2023), PricePerDay: 600}, "Dehradun"},
	}
}

type seedUser struct {
	models.User
	password string
}

func seedUsers() []seedUser {
	return []seedUser{
		{models.User{Email: "admin@wheelie.local", FullName: "Wheelie Admin", Role: domain.RoleAdmin}, "admin123"},
		{models.User{Email: "demo@wheelie.local", FullName: "Demo Rider", Role: domain.RoleUser}, "demo1234"},
	}
}
