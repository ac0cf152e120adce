package models

import "time"

// PickupPoint is a named spot inside a city where vehicles are handed over.
type PickupPoint struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type Location struct {
	ID           int64         `json:"id"`
	City         string        `json:"city"`
	Address      string        `json:"address,omitempty"`
	Latitude     *float64      `json:"latitude,omitempty"`
	Longitude    *float64      `json:"longitude,omitempty"`
	PickupPoints []PickupPoint `json:"pickupPoints,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// LocationPayload is the admin create/update body.
type LocationPayload struct {
	City         string        `json:"city" binding:"required"`
	Address      string        `json:"address"`
	Latitude     *float64      `json:"latitude"`
	Longitude    *float64      `json:"longitude"`
	PickupPoints []PickupPoint `json:"pickupPoints"`
}
