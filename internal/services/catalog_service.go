package services

import (
	"fmt"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"
	"wheelie-backend/internal/repositories"
	"wheelie-backend/internal/utils"
)

// CatalogService covers the browse side of the site plus the admin CRUD for
// vehicles and locations.
type CatalogService struct {
	VehicleRepo  repositories.VehicleRepository
	LocationRepo repositories.LocationRepository
	RequestID    string
}

func (s CatalogService) ListVehicles(filter models.VehicleFilter) ([]models.Vehicle, error) {
	return s.VehicleRepo.List(filter)
}

// GetVehicle returns the vehicle with its location attached when it has one.
func (s CatalogService) GetVehicle(id int64) (models.Vehicle, *models.Location, error) {
	vehicle, err := s.VehicleRepo.GetByID(id)
	if err != nil {
		return models.Vehicle{}, nil, err
	}
	if vehicle.LocationID == nil {
		return vehicle, nil, nil
	}
	loc, err := s.LocationRepo.GetByID(*vehicle.LocationID)
	if err != nil {
		if domain.IsNotFound(err) {
			return vehicle, nil, nil
		}
		return models.Vehicle{}, nil, err
	}
	return vehicle, &loc, nil
}

func (s CatalogService) ListLocations() ([]models.Location, error) {
	return s.LocationRepo.List()
}

func (s CatalogService) GetLocation(id int64) (models.Location, error) {
	return s.LocationRepo.GetByID(id)
}

// GetLocationBySlug resolves city pages like /locations/new-delhi and
// returns the fleet stationed there.
func (s CatalogService) GetLocationBySlug(slug string) (models.Location, []models.Vehicle, error) {
	city := utils.CityFromSlug(slug)
	loc, err := s.LocationRepo.GetByCity(city)
	if err != nil {
		return models.Location{}, nil, err
	}
	vehicles, err := s.VehicleRepo.List(models.VehicleFilter{LocationID: &loc.ID})
	if err != nil {
		return models.Location{}, nil, err
	}
	return loc, vehicles, nil
}

func (s CatalogService) CreateVehicle(p models.VehiclePayload) (models.Vehicle, error) {
	if err := s.validateVehiclePayload(p); err != nil {
		return models.Vehicle{}, err
	}
	id, err := s.VehicleRepo.Create(p)
	if err != nil {
		return models.Vehicle{}, err
	}
	utils.LogEvent(s.RequestID, "catalog", "create_vehicle", fmt.Sprintf("vehicle_id=%d name=%s", id, p.Name))
	return s.VehicleRepo.GetByID(id)
}

func (s CatalogService) UpdateVehicle(id int64, p models.VehiclePayload) (models.Vehicle, error) {
	if err := s.validateVehiclePayload(p); err != nil {
		return models.Vehicle{}, err
	}
	if err := s.VehicleRepo.Update(id, p); err != nil {
		return models.Vehicle{}, err
	}
	return s.VehicleRepo.GetByID(id)
}

func (s CatalogService) DeleteVehicle(id int64) error {
	if err := s.VehicleRepo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "catalog", "delete_vehicle", fmt.Sprintf("vehicle_id=%d", id))
	return nil
}

func (s CatalogService) validateVehiclePayload(p models.VehiclePayload) error {
	if !models.ValidCategory(p.Category) {
		return domain.ValidationError{Field: "category", Msg: "unknown category " + p.Category}
	}
	if p.PricePerDay <= 0 {
		return domain.ValidationError{Field: "price_per_day", Msg: "must be positive"}
	}
	if p.LocationID != nil {
		if _, err := s.LocationRepo.GetByID(*p.LocationID); err != nil {
			return err
		}
	}
	return nil
}

func (s CatalogService) CreateLocation(p models.LocationPayload) (models.Location, error) {
	p.City = utils.NormalizeSpace(p.City)
	id, err := s.LocationRepo.Create(p)
	if err != nil {
		return models.Location{}, err
	}
	utils.LogEvent(s.RequestID, "catalog", "create_location", fmt.Sprintf("location_id=%d city=%s", id, p.City))
	return s.LocationRepo.GetByID(id)
}

func (s CatalogService) UpdateLocation(id int64, p models.LocationPayload) (models.Location, error) {
	p.City = utils.NormalizeSpace(p.City)
	if err := s.LocationRepo.Update(id, p); err != nil {
		return models.Location{}, err
	}
	return s.LocationRepo.GetByID(id)
}

// DeleteLocation removes a city. Vehicles stationed there survive with their
// location cleared, but the caller must confirm once we report how many.
func (s CatalogService) DeleteLocation(id int64, confirmed bool) (int, error) {
	count, err := s.VehicleRepo.CountByLocation(id)
	if err != nil {
		return 0, err
	}
	if count > 0 && !confirmed {
		return count, domain.ConflictError{
			Resource: "location",
			Msg:      fmt.Sprintf("%d vehicle(s) are stationed here; retry with confirm=true to detach them", count),
		}
	}
	if count > 0 {
		if err := s.VehicleRepo.ClearLocation(id); err != nil {
			return count, err
		}
	}
	if err := s.LocationRepo.Delete(id); err != nil {
		return count, err
	}
	utils.LogEvent(s.RequestID, "catalog", "delete_location",
		fmt.Sprintf("location_id=%d detached_vehicles=%d", id, count))
	return count, nil
}
