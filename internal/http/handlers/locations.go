package handlers

import (
	"net/http"

	"wheelie-backend/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/locations
func GetLocations(c *gin.Context) {
	locations, err := catalogService(c).ListLocations()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// GET /api/locations/:id
func GetLocationByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	location, err := catalogService(c).GetLocation(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": location})
}

// GET /api/locations/city/:slug serves city pages like /locations/city/new-delhi
// and includes the fleet stationed there.
func GetLocationBySlug(c *gin.Context) {
	location, vehicles, err := catalogService(c).GetLocationBySlug(c.Param("slug"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]vehicleView, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleView(v))
	}
	c.JSON(http.StatusOK, gin.H{"location": location, "vehicles": out})
}

// POST /api/admin/locations
func CreateLocation(c *gin.Context) {
	var payload models.LocationPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	location, err := catalogService(c).CreateLocation(payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"location": location})
}

// PUT /api/admin/locations/:id
func UpdateLocation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var payload models.LocationPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	location, err := catalogService(c).UpdateLocation(id, payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": location})
}

// DELETE /api/admin/locations/:id?confirm=true
// Vehicles stationed at the location are detached, never deleted. Without
// confirm the response reports how many would be affected.
func DeleteLocation(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	confirmed := c.Query("confirm") == "true"
	detached, err := catalogService(c).DeleteLocation(id, confirmed)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "location deleted", "detached_vehicles": detached})
}
