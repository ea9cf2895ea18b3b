package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// DashboardService aggregates fleet-wide counts and totals for the
// admin overview screen.
type DashboardService struct {
	vehicleRepo     repository.VehicleRepository
	driverRepo      repository.DriverRepository
	ticketRepo      repository.TicketRepository
	fuelRepo        repository.FuelRepository
	accountRepo     repository.AccountRepository
	maintenanceRepo repository.MaintenanceRepository
	log             *logrus.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	ticketRepo repository.TicketRepository,
	fuelRepo repository.FuelRepository,
	accountRepo repository.AccountRepository,
	maintenanceRepo repository.MaintenanceRepository,
	log *logrus.Logger,
) *DashboardService {
	return &DashboardService{
		vehicleRepo:     vehicleRepo,
		driverRepo:      driverRepo,
		ticketRepo:      ticketRepo,
		fuelRepo:        fuelRepo,
		accountRepo:     accountRepo,
		maintenanceRepo: maintenanceRepo,
		log:             log,
	}
}

// DashboardSummary holds the aggregated fleet overview. When Partial is
// true one or more collections could not be read and contribute zero to
// every count they would have fed.
type DashboardSummary struct {
	TotalVehicles    int
	ActiveVehicles   int
	VehiclesByStatus map[domain.VehicleStatus]int

	TotalDrivers  int
	ActiveDrivers int

	TotalTickets    int
	PendingTickets  int
	ApprovedTickets int
	RejectedTickets int

	FuelRecords       int
	FuelLiters        float64
	FuelSpend         float64
	BulkAccountFunds  float64
	ActiveBulkAccounts int

	MaintenanceRecords int
	OpenMaintenance    int
	MaintenanceSpend   float64

	Partial bool
}

// Summary reads every collection concurrently and folds the results
// into one snapshot. A failed read is logged and tolerated; the caller
// still gets the counts that were available.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{
		VehiclesByStatus: make(map[domain.VehicleStatus]int),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	fail := func(collection string, err error) {
		s.log.WithError(err).WithField("collection", collection).Warn("dashboard read failed")
		mu.Lock()
		summary.Partial = true
		mu.Unlock()
	}

	wg.Add(6)

	go func() {
		defer wg.Done()
		vehicles, err := s.vehicleRepo.GetAll(ctx)
		if err != nil {
			fail("vehicles", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		summary.TotalVehicles = len(vehicles)
		for _, v := range vehicles {
			summary.VehiclesByStatus[v.Status]++
			if v.Status == domain.VehicleStatusActive {
				summary.ActiveVehicles++
			}
		}
	}()

	go func() {
		defer wg.Done()
		drivers, err := s.driverRepo.GetAll(ctx)
		if err != nil {
			fail("drivers", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		summary.TotalDrivers = len(drivers)
		for _, d := range drivers {
			if d.Status == domain.DriverStatusActive {
				summary.ActiveDrivers++
			}
		}
	}()

	go func() {
		defer wg.Done()
		tickets, err := s.ticketRepo.GetAll(ctx)
		if err != nil {
			fail("work_tickets", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		summary.TotalTickets = len(tickets)
		for _, t := range tickets {
			switch t.Status {
			case domain.TicketStatusPending:
				summary.PendingTickets++
			case domain.TicketStatusApproved:
				summary.ApprovedTickets++
			case domain.TicketStatusRejected:
				summary.RejectedTickets++
			}
		}
	}()

	go func() {
		defer wg.Done()
		records, err := s.fuelRepo.GetAll(ctx)
		if err != nil {
			fail("fuel_records", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		summary.FuelRecords = len(records)
		for _, r := range records {
			summary.FuelLiters += r.Quantity
			summary.FuelSpend += r.TotalCost
		}
	}()

	go func() {
		defer wg.Done()
		accounts, err := s.accountRepo.GetAll(ctx)
		if err != nil {
			fail("bulk_accounts", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		for _, a := range accounts {
			if a.Status == domain.AccountStatusActive {
				summary.ActiveBulkAccounts++
				summary.BulkAccountFunds += a.CurrentBalance
			}
		}
	}()

	go func() {
		defer wg.Done()
		records, err := s.maintenanceRepo.GetAll(ctx)
		if err != nil {
			fail("maintenance_records", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		summary.MaintenanceRecords = len(records)
		for _, r := range records {
			summary.MaintenanceSpend += r.TotalCost
			if r.Status == domain.MaintenanceStatusScheduled || r.Status == domain.MaintenanceStatusInProgress {
				summary.OpenMaintenance++
			}
		}
	}()

	wg.Wait()
	return summary, nil
}
