package datastore

import (
	"context"
	"errors"
	"time"

	"fleetops/internal/domain"
)

// logReadFallback records a per-call fallback. The session mode latch
// is deliberately untouched: one transient remote failure must not flip
// the whole session into sample-data mode.
func (s *Store) logReadFallback(op string, err error) {
	s.log.WithError(err).WithField("op", op).Warn("remote read failed; serving sample data for this call")
}

// ── vehicles ──

type vehicleStore struct{ s *Store }

func (v *vehicleStore) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	if v.s.remoteMode() {
		return v.s.writeError("vehicle.create", v.s.remoteVehicles.Create(ctx, vehicle))
	}
	return v.s.fallback.Vehicles.Create(ctx, vehicle)
}

func (v *vehicleStore) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if v.s.remoteMode() {
		vehicle, err := v.s.remoteVehicles.GetByID(ctx, id)
		if !readErrorFallsBack(err) {
			return vehicle, err
		}
		v.s.logReadFallback("vehicle.get", err)
	}
	return v.s.fallback.Vehicles.GetByID(ctx, id)
}

func (v *vehicleStore) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	if v.s.remoteMode() {
		vehicles, err := v.s.remoteVehicles.GetAll(ctx)
		if err == nil {
			return vehicles, nil
		}
		v.s.logReadFallback("vehicle.list", err)
	}
	return v.s.fallback.Vehicles.GetAll(ctx)
}

func (v *vehicleStore) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	if v.s.remoteMode() {
		return v.s.writeError("vehicle.update", v.s.remoteVehicles.Update(ctx, vehicle))
	}
	return v.s.fallback.Vehicles.Update(ctx, vehicle)
}

// ── drivers ──

type driverStore struct{ s *Store }

func (d *driverStore) Create(ctx context.Context, driver *domain.Driver) error {
	if d.s.remoteMode() {
		return d.s.writeError("driver.create", d.s.remoteDrivers.Create(ctx, driver))
	}
	return d.s.fallback.Drivers.Create(ctx, driver)
}

func (d *driverStore) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	if d.s.remoteMode() {
		driver, err := d.s.remoteDrivers.GetByID(ctx, id)
		if !readErrorFallsBack(err) {
			return driver, err
		}
		d.s.logReadFallback("driver.get", err)
	}
	return d.s.fallback.Drivers.GetByID(ctx, id)
}

func (d *driverStore) GetByUsername(ctx context.Context, username string) (*domain.Driver, error) {
	if d.s.remoteMode() {
		driver, err := d.s.remoteDrivers.GetByUsername(ctx, username)
		if !readErrorFallsBack(err) {
			return driver, err
		}
		d.s.logReadFallback("driver.get_by_username", err)
	}
	return d.s.fallback.Drivers.GetByUsername(ctx, username)
}

func (d *driverStore) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	if d.s.remoteMode() {
		drivers, err := d.s.remoteDrivers.GetAll(ctx)
		if err == nil {
			return drivers, nil
		}
		d.s.logReadFallback("driver.list", err)
	}
	return d.s.fallback.Drivers.GetAll(ctx)
}

func (d *driverStore) Update(ctx context.Context, driver *domain.Driver) error {
	if d.s.remoteMode() {
		return d.s.writeError("driver.update", d.s.remoteDrivers.Update(ctx, driver))
	}
	return d.s.fallback.Drivers.Update(ctx, driver)
}

// ── work tickets ──

type ticketStore struct{ s *Store }

func (t *ticketStore) Create(ctx context.Context, ticket *domain.WorkTicket) error {
	if t.s.remoteMode() {
		return t.s.writeError("ticket.create", t.s.remoteTickets.Create(ctx, ticket))
	}
	return t.s.fallback.Tickets.Create(ctx, ticket)
}

func (t *ticketStore) GetByID(ctx context.Context, id string) (*domain.WorkTicket, error) {
	if t.s.remoteMode() {
		ticket, err := t.s.remoteTickets.GetByID(ctx, id)
		if !readErrorFallsBack(err) {
			return ticket, err
		}
		t.s.logReadFallback("ticket.get", err)
	}
	return t.s.fallback.Tickets.GetByID(ctx, id)
}

func (t *ticketStore) GetAll(ctx context.Context) ([]*domain.WorkTicket, error) {
	if t.s.remoteMode() {
		tickets, err := t.s.remoteTickets.GetAll(ctx)
		if err == nil {
			return tickets, nil
		}
		t.s.logReadFallback("ticket.list", err)
	}
	return t.s.fallback.Tickets.GetAll(ctx)
}

func (t *ticketStore) Approve(ctx context.Context, id, approver string, at time.Time) error {
	if t.s.remoteMode() {
		return t.s.writeError("ticket.approve", t.s.remoteTickets.Approve(ctx, id, approver, at))
	}
	return t.s.fallback.Tickets.Approve(ctx, id, approver, at)
}

func (t *ticketStore) Reject(ctx context.Context, id, rejecter, reason string, at time.Time) error {
	if t.s.remoteMode() {
		return t.s.writeError("ticket.reject", t.s.remoteTickets.Reject(ctx, id, rejecter, reason, at))
	}
	return t.s.fallback.Tickets.Reject(ctx, id, rejecter, reason, at)
}

// ── fuel records ──

type fuelStore struct{ s *Store }

func (f *fuelStore) Create(ctx context.Context, record *domain.FuelRecord) error {
	if f.s.remoteMode() {
		return f.s.writeError("fuel.create", f.s.remoteFuel.Create(ctx, record))
	}
	return f.s.fallback.Fuel.Create(ctx, record)
}

func (f *fuelStore) GetByID(ctx context.Context, id string) (*domain.FuelRecord, error) {
	if f.s.remoteMode() {
		record, err := f.s.remoteFuel.GetByID(ctx, id)
		if !readErrorFallsBack(err) {
			return record, err
		}
		f.s.logReadFallback("fuel.get", err)
	}
	return f.s.fallback.Fuel.GetByID(ctx, id)
}

func (f *fuelStore) GetAll(ctx context.Context) ([]*domain.FuelRecord, error) {
	if f.s.remoteMode() {
		records, err := f.s.remoteFuel.GetAll(ctx)
		if err == nil {
			return records, nil
		}
		f.s.logReadFallback("fuel.list", err)
	}
	return f.s.fallback.Fuel.GetAll(ctx)
}

// ── bulk fuel accounts ──

type accountStore struct{ s *Store }

func (a *accountStore) Create(ctx context.Context, account *domain.BulkFuelAccount) error {
	if a.s.remoteMode() {
		return a.s.writeError("account.create", a.s.remoteAccounts.Create(ctx, account))
	}
	return a.s.fallback.Accounts.Create(ctx, account)
}

func (a *accountStore) GetByID(ctx context.Context, id string) (*domain.BulkFuelAccount, error) {
	if a.s.remoteMode() {
		account, err := a.s.remoteAccounts.GetByID(ctx, id)
		if !readErrorFallsBack(err) {
			return account, err
		}
		a.s.logReadFallback("account.get", err)
	}
	return a.s.fallback.Accounts.GetByID(ctx, id)
}

func (a *accountStore) GetAll(ctx context.Context) ([]*domain.BulkFuelAccount, error) {
	if a.s.remoteMode() {
		accounts, err := a.s.remoteAccounts.GetAll(ctx)
		if err == nil {
			return accounts, nil
		}
		a.s.logReadFallback("account.list", err)
	}
	return a.s.fallback.Accounts.GetAll(ctx)
}

func (a *accountStore) Update(ctx context.Context, account *domain.BulkFuelAccount) error {
	if a.s.remoteMode() {
		return a.s.writeError("account.update", a.s.remoteAccounts.Update(ctx, account))
	}
	return a.s.fallback.Accounts.Update(ctx, account)
}

// DebitBalance is never softened by resilient writes: losing a debit
// silently would double-spend the account, so CAS conflicts and
// infrastructure failures both surface.
func (a *accountStore) DebitBalance(ctx context.Context, id string, amount, expected float64) error {
	if a.s.remoteMode() {
		err := a.s.remoteAccounts.DebitBalance(ctx, id, amount, expected)
		if err != nil && !isConditionalError(err) {
			a.s.log.WithError(err).WithField("op", "account.debit").Warn("remote debit failed")
			return errors.Join(ErrBackendUnavailable, err)
		}
		return err
	}
	return a.s.fallback.Accounts.DebitBalance(ctx, id, amount, expected)
}

// ── maintenance records ──

type maintenanceStore struct{ s *Store }

func (m *maintenanceStore) Create(ctx context.Context, record *domain.MaintenanceRecord) error {
	if m.s.remoteMode() {
		return m.s.writeError("maintenance.create", m.s.remoteMaintenance.Create(ctx, record))
	}
	return m.s.fallback.Maintenance.Create(ctx, record)
}

func (m *maintenanceStore) GetByID(ctx context.Context, id string) (*domain.MaintenanceRecord, error) {
	if m.s.remoteMode() {
		record, err := m.s.remoteMaintenance.GetByID(ctx, id)
		if !readErrorFallsBack(err) {
			return record, err
		}
		m.s.logReadFallback("maintenance.get", err)
	}
	return m.s.fallback.Maintenance.GetByID(ctx, id)
}

func (m *maintenanceStore) GetAll(ctx context.Context) ([]*domain.MaintenanceRecord, error) {
	if m.s.remoteMode() {
		records, err := m.s.remoteMaintenance.GetAll(ctx)
		if err == nil {
			return records, nil
		}
		m.s.logReadFallback("maintenance.list", err)
	}
	return m.s.fallback.Maintenance.GetAll(ctx)
}

func (m *maintenanceStore) Update(ctx context.Context, record *domain.MaintenanceRecord) error {
	if m.s.remoteMode() {
		return m.s.writeError("maintenance.update", m.s.remoteMaintenance.Update(ctx, record))
	}
	return m.s.fallback.Maintenance.Update(ctx, record)
}
