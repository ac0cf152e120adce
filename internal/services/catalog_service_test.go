package services

import (
	"testing"

	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"
	"wheelie-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDeleteLocationRequiresConfirmWhenFleetAttached(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := CatalogService{
		VehicleRepo:  repositories.VehicleRepository{DB: db},
		LocationRepo: repositories.LocationRepository{DB: db},
	}

	// two vehicles stationed here, no confirm -> conflict, nothing written
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM vehicles WHERE location_id").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	count, err := svc.DeleteLocation(4, false)
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError without confirm, got %v", err)
	}
	if count != 2 {
		t.Fatalf("expected affected count 2, got %d", count)
	}

	// confirmed -> vehicles are detached, then the location goes
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM vehicles WHERE location_id").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec("UPDATE vehicles SET location_id = NULL").WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM locations").WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	count, err = svc.DeleteLocation(4, true)
	if err != nil {
		t.Fatalf("DeleteLocation returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 detached vehicles, got %d", count)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteLocationEmptyNeedsNoConfirm(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM vehicles WHERE location_id").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM locations").WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := CatalogService{
		VehicleRepo:  repositories.VehicleRepository{DB: db},
		LocationRepo: repositories.LocationRepository{DB: db},
	}
	if _, err := svc.DeleteLocation(4, false); err != nil {
		t.Fatalf("DeleteLocation returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateVehicleValidatesCategoryAndPrice(t *testing.T) {
	svc := CatalogService{}

	_, err := svc.CreateVehicle(models.VehiclePayload{Name: "Honda Activa 6G", Category: "hoverboard", PricePerDay: 350})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for unknown category, got %v", err)
	}

	_, err = svc.CreateVehicle(models.VehiclePayload{Name: "Honda Activa 6G", Category: "scooter"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for zero price, got %v", err)
	}
}
