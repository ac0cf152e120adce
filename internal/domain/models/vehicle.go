package models

import (
	"time"

	"wheelie-backend/internal/domain"
)

// Vehicle categories offered on the site.
const (
	CategoryScooter  = "scooter"
	CategoryBike     = "bike"
	CategoryCruiser  = "cruiser"
	CategoryElectric = "electric"
)

type Vehicle struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand,omitempty"`
	Model       string    `json:"model,omitempty"`
	Year        *int      `json:"year,omitempty"`
	PricePerDay int64     `json:"pricePerDay"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Available   bool      `json:"available"`
	LocationID  *int64    `json:"locationId,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PricePerHour is a display-only estimate derived from the daily rate.
func (v Vehicle) PricePerHour() int64 {
	return domain.HourlyRate(v.PricePerDay)
}

// ValidCategory reports whether the category is one the site offers.
func ValidCategory(c string) bool {
	switch c {
	case CategoryScooter, CategoryBike, CategoryCruiser, CategoryElectric:
		return true
	}
	return false
}

// VehicleFilter narrows vehicle listings.
type VehicleFilter struct {
	LocationID    *int64
	Category      string
	OnlyAvailable bool
	Query         string
}

// VehiclePayload is the admin create/update body.
type VehiclePayload struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Year        *int   `json:"year"`
	PricePerDay int64  `json:"pricePerDay" binding:"required"`
	ImageURL    string `json:"imageUrl"`
	Available   *bool  `json:"available"`
	LocationID  *int64 `json:"locationId"`
}
