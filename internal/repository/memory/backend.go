// Package memory implements every repository interface over in-memory
// maps. It backs sample-data mode: collections start from the seed
// dataset unless the local store already holds a newer copy, and every
// mutation rewrites the full collection through the local store before
// returning, so records created during a demo survive a restart.
package memory

import (
	"fleetops/internal/localstore"
	"fleetops/internal/sample"
)

// Collection keys in the local store.
const (
	keyVehicles    = "vehicles"
	keyDrivers     = "drivers"
	keyTickets     = "work_tickets"
	keyFuelRecords = "fuel_records"
	keyMaintenance = "maintenance_records"
	keyAccounts    = "bulk_accounts"
)

// Backend bundles the in-memory repositories for all collections.
type Backend struct {
	Vehicles    *VehicleRepository
	Drivers     *DriverRepository
	Tickets     *TicketRepository
	Fuel        *FuelRepository
	Accounts    *AccountRepository
	Maintenance *MaintenanceRepository
}

// NewBackend builds all repositories from the seed dataset, letting any
// previously stored collection win over its seed. store may be nil, in
// which case nothing persists across restarts.
func NewBackend(store *localstore.Store, seed *sample.Dataset) *Backend {
	return &Backend{
		Vehicles:    NewVehicleRepository(store, seed.Vehicles),
		Drivers:     NewDriverRepository(store, seed.Drivers),
		Tickets:     NewTicketRepository(store, seed.Tickets),
		Fuel:        NewFuelRepository(store, seed.FuelRecords),
		Accounts:    NewAccountRepository(store, seed.Accounts),
		Maintenance: NewMaintenanceRepository(store, seed.Maintenance),
	}
}
