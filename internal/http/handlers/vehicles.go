package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"wheelie-backend/internal/domain/models"
	"wheelie-backend/internal/http/middleware"
	"wheelie-backend/internal/repositories"
	"wheelie-backend/internal/services"
	"wheelie-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func catalogService(c *gin.Context) services.CatalogService {
	return services.CatalogService{RequestID: middleware.GetRequestID(c)}
}

// vehicleView decorates a vehicle with its derived hourly rate.
type vehicleView struct {
	models.Vehicle
	PricePerHour int64 `json:"pricePerHour"`
}

func toVehicleView(v models.Vehicle) vehicleView {
	return vehicleView{Vehicle: v, PricePerHour: v.PricePerHour()}
}

// GET /api/vehicles?location_id=&city=&category=&available=true&q=
func GetVehicles(c *gin.Context) {
	filter := models.VehicleFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Query:    strings.TrimSpace(c.Query("q")),
	}
	if raw := c.Query("location_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(c, http.StatusBadRequest, "invalid_location_id", "invalid location_id parameter", nil)
			return
		}
		filter.LocationID = &id
	} else if city := strings.TrimSpace(c.Query("city")); city != "" {
		loc, err := (repositories.LocationRepository{}).GetByCity(utils.CityFromSlug(city))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		filter.LocationID = &loc.ID
	}
	if c.Query("available") == "true" {
		filter.OnlyAvailable = true
	}

	vehicles, err := catalogService(c).ListVehicles(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]vehicleView, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleView(v))
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": out})
}

// GET /api/vehicles/:id
func GetVehicleByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	vehicle, location, err := catalogService(c).GetVehicle(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	resp := gin.H{"vehicle": toVehicleView(vehicle)}
	if location != nil {
		resp["location"] = location
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/admin/vehicles
func CreateVehicle(c *gin.Context) {
	var payload models.VehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	vehicle, err := catalogService(c).CreateVehicle(payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": toVehicleView(vehicle)})
}

// PUT /api/admin/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var payload models.VehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	vehicle, err := catalogService(c).UpdateVehicle(id, payload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": toVehicleView(vehicle)})
}

// DELETE /api/admin/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := catalogService(c).DeleteVehicle(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}
