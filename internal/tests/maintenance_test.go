package tests

import (
	"context"
	"errors"
	"testing"

	"fleetops/internal/domain"
	"fleetops/internal/service"
)

func newMaintenanceFixture() (*MockMaintenanceRepository, *service.MaintenanceService) {
	maintenanceRepo := NewMockMaintenanceRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "veh-1", Registration: "KDA 123A", Status: domain.VehicleStatusActive})
	return maintenanceRepo, service.NewMaintenanceService(maintenanceRepo, vehicleRepo)
}

func TestMaintenance_TotalIsLaborPlusParts(t *testing.T) {
	t.Parallel()

	_, svc := newMaintenanceFixture()

	record, err := svc.Create(context.Background(), service.CreateMaintenanceRequest{
		VehicleID: "veh-1",
		Provider:  "Central Garage",
		LaborCost: 4_500,
		PartsCost: 12_300,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.TotalCost != 16_800 {
		t.Errorf("expected total 16800, got %.2f", record.TotalCost)
	}
}

func TestMaintenance_UpdateRecomputesTotal(t *testing.T) {
	t.Parallel()

	maintenanceRepo, svc := newMaintenanceFixture()

	record, err := svc.Create(context.Background(), service.CreateMaintenanceRequest{
		VehicleID: "veh-1",
		Provider:  "Central Garage",
		LaborCost: 1_000,
		PartsCost: 2_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record.PartsCost = 5_000
	record.TotalCost = 999 // client-supplied totals are ignored
	updated, err := svc.Update(context.Background(), record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.TotalCost != 6_000 {
		t.Errorf("expected recomputed total 6000, got %.2f", updated.TotalCost)
	}

	stored, err := maintenanceRepo.GetByID(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.TotalCost != 6_000 {
		t.Errorf("expected stored total 6000, got %.2f", stored.TotalCost)
	}
}

func TestMaintenance_RequiresKnownVehicle(t *testing.T) {
	t.Parallel()

	_, svc := newMaintenanceFixture()

	_, err := svc.Create(context.Background(), service.CreateMaintenanceRequest{
		VehicleID: "ghost",
		Provider:  "Central Garage",
	})
	if !errors.Is(err, service.ErrUnknownVehicle) {
		t.Errorf("expected ErrUnknownVehicle, got %v", err)
	}
}

func TestVehicle_RetireIsStatusTransition(t *testing.T) {
	t.Parallel()

	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "veh-1", Registration: "KDA 123A", Status: domain.VehicleStatusActive})
	svc := service.NewVehicleService(vehicleRepo)

	vehicle, err := svc.Retire(context.Background(), "veh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vehicle.Status != domain.VehicleStatusRetired {
		t.Errorf("expected retired status, got %s", vehicle.Status)
	}

	// The record itself survives.
	stored := vehicleRepo.GetVehicle("veh-1")
	if stored == nil {
		t.Fatal("retired vehicle must not be deleted")
	}
	if stored.Status != domain.VehicleStatusRetired {
		t.Errorf("expected stored status retired, got %s", stored.Status)
	}
}
