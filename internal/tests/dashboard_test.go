package tests

import (
	"context"
	"errors"
	"testing"

	"fleetops/internal/domain"
	"fleetops/internal/service"
)

func newDashboardFixture() (*MockVehicleRepository, *MockTicketRepository, *MockFuelRepository, *service.DashboardService) {
	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	ticketRepo := NewMockTicketRepository()
	fuelRepo := NewMockFuelRepository()
	accountRepo := NewMockAccountRepository()
	maintenanceRepo := NewMockMaintenanceRepository()

	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "veh-1", Status: domain.VehicleStatusActive})
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "veh-2", Status: domain.VehicleStatusActive})
	vehicleRepo.AddVehicle(&domain.Vehicle{ID: "veh-3", Status: domain.VehicleStatusMaintenance})
	driverRepo.AddDriver(&domain.Driver{ID: "drv-1", Status: domain.DriverStatusActive})
	driverRepo.AddDriver(&domain.Driver{ID: "drv-2", Status: domain.DriverStatusSuspended})
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-1", Status: domain.TicketStatusPending})
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-2", Status: domain.TicketStatusApproved})
	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-3", Status: domain.TicketStatusRejected})
	fuelRepo.AddRecord(&domain.FuelRecord{ID: "fr-1", Quantity: 50, TotalCost: 9_000})
	fuelRepo.AddRecord(&domain.FuelRecord{ID: "fr-2", Quantity: 30, TotalCost: 5_400})
	accountRepo.AddAccount(&domain.BulkFuelAccount{ID: "acct-1", CurrentBalance: 100_000, Status: domain.AccountStatusActive})
	accountRepo.AddAccount(&domain.BulkFuelAccount{ID: "acct-2", CurrentBalance: 40_000, Status: domain.AccountStatusClosed})
	maintenanceRepo.AddRecord(&domain.MaintenanceRecord{ID: "mr-1", Status: domain.MaintenanceStatusCompleted, TotalCost: 12_000})
	maintenanceRepo.AddRecord(&domain.MaintenanceRecord{ID: "mr-2", Status: domain.MaintenanceStatusScheduled, TotalCost: 3_000})

	svc := service.NewDashboardService(vehicleRepo, driverRepo, ticketRepo, fuelRepo, accountRepo, maintenanceRepo, testLogger())
	return vehicleRepo, ticketRepo, fuelRepo, svc
}

func TestDashboard_CountsMatchCollections(t *testing.T) {
	t.Parallel()

	_, _, _, svc := newDashboardFixture()

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Partial {
		t.Error("expected a complete summary")
	}
	if summary.TotalVehicles != 3 || summary.ActiveVehicles != 2 {
		t.Errorf("vehicle counts wrong: total=%d active=%d", summary.TotalVehicles, summary.ActiveVehicles)
	}
	if summary.VehiclesByStatus[domain.VehicleStatusMaintenance] != 1 {
		t.Errorf("expected 1 vehicle in maintenance, got %d", summary.VehiclesByStatus[domain.VehicleStatusMaintenance])
	}
	if summary.TotalDrivers != 2 || summary.ActiveDrivers != 1 {
		t.Errorf("driver counts wrong: total=%d active=%d", summary.TotalDrivers, summary.ActiveDrivers)
	}
	if summary.PendingTickets != 1 || summary.ApprovedTickets != 1 || summary.RejectedTickets != 1 {
		t.Errorf("ticket counts wrong: %+v", summary)
	}
	if summary.FuelRecords != 2 || summary.FuelLiters != 80 || summary.FuelSpend != 14_400 {
		t.Errorf("fuel totals wrong: records=%d liters=%.1f spend=%.1f", summary.FuelRecords, summary.FuelLiters, summary.FuelSpend)
	}
	if summary.ActiveBulkAccounts != 1 || summary.BulkAccountFunds != 100_000 {
		t.Errorf("account totals wrong: active=%d funds=%.1f", summary.ActiveBulkAccounts, summary.BulkAccountFunds)
	}
	if summary.MaintenanceRecords != 2 || summary.OpenMaintenance != 1 || summary.MaintenanceSpend != 15_000 {
		t.Errorf("maintenance totals wrong: %+v", summary)
	}
}

func TestDashboard_ReflectsLiveData(t *testing.T) {
	t.Parallel()

	_, ticketRepo, _, svc := newDashboardFixture()

	before, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ticketRepo.AddTicket(&domain.WorkTicket{ID: "wt-new", Status: domain.TicketStatusPending})

	after, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.PendingTickets != before.PendingTickets+1 {
		t.Errorf("summary must not be cached: before=%d after=%d", before.PendingTickets, after.PendingTickets)
	}
}

func TestDashboard_PartialFailureTolerated(t *testing.T) {
	t.Parallel()

	vehicleRepo, _, _, svc := newDashboardFixture()
	vehicleRepo.GetAllError = errors.New("connection reset")

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("a failed collection must not fail the summary: %v", err)
	}

	if !summary.Partial {
		t.Error("expected the partial flag")
	}
	if summary.TotalVehicles != 0 {
		t.Errorf("failed collection contributes zero counts, got %d", summary.TotalVehicles)
	}
	// The other collections still report.
	if summary.TotalTickets != 3 {
		t.Errorf("expected ticket counts despite vehicle failure, got %d", summary.TotalTickets)
	}
}
