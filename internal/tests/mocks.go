package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	GetAllError error
	UpdateError error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{vehicles: make(map[string]*domain.Vehicle)}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[vehicle.ID]; !ok {
		return repository.ErrNotFound
	}
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

// GetVehicle returns a vehicle for test assertions.
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	GetAllError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{drivers: make(map[string]*domain.Driver)}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetByUsername(ctx context.Context, username string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.Username == username {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}
	m.drivers[driver.ID] = driver
	return nil
}

// ──────────────────────────────────────────────
// MOCK TICKET REPOSITORY
// ──────────────────────────────────────────────

// MockTicketRepository is a mock implementation of TicketRepository. Its
// Approve and Reject are conditional on pending status under the lock,
// matching the real backends.
type MockTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]*domain.WorkTicket

	// Counters for verification
	CreateCallCount  int32
	ApproveCallCount int32
	RejectCallCount  int32

	// Error injection
	CreateError  error
	GetAllError  error
	ApproveError error
}

// NewMockTicketRepository creates a new mock ticket repository.
func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{tickets: make(map[string]*domain.WorkTicket)}
}

// AddTicket adds a ticket to the mock repository.
func (m *MockTicketRepository) AddTicket(ticket *domain.WorkTicket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[ticket.ID] = ticket
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *domain.WorkTicket) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[ticket.ID] = ticket
	return nil
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id string) (*domain.WorkTicket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ticket, ok := m.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ticket
	return &copy, nil
}

func (m *MockTicketRepository) GetAll(ctx context.Context) ([]*domain.WorkTicket, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.WorkTicket, 0, len(m.tickets))
	for _, t := range m.tickets {
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTicketRepository) Approve(ctx context.Context, id, approver string, at time.Time) error {
	atomic.AddInt32(&m.ApproveCallCount, 1)
	if m.ApproveError != nil {
		return m.ApproveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[id]
	if !ok {
		return repository.ErrNotFound
	}
	if ticket.Status != domain.TicketStatusPending {
		return repository.ErrConflict
	}
	ticket.Status = domain.TicketStatusApproved
	ticket.ApprovedBy = approver
	ticket.ApprovedAt = at
	return nil
}

func (m *MockTicketRepository) Reject(ctx context.Context, id, rejecter, reason string, at time.Time) error {
	atomic.AddInt32(&m.RejectCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	ticket, ok := m.tickets[id]
	if !ok {
		return repository.ErrNotFound
	}
	if ticket.Status != domain.TicketStatusPending {
		return repository.ErrConflict
	}
	ticket.Status = domain.TicketStatusRejected
	ticket.RejectedBy = rejecter
	ticket.RejectedAt = at
	ticket.RejectionReason = reason
	return nil
}

// GetTicket returns a ticket for test assertions.
func (m *MockTicketRepository) GetTicket(id string) *domain.WorkTicket {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tickets[id]
}

// CountTickets returns the number of stored tickets.
func (m *MockTicketRepository) CountTickets() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tickets)
}

// ──────────────────────────────────────────────
// MOCK FUEL REPOSITORY
// ──────────────────────────────────────────────

// MockFuelRepository is a mock implementation of FuelRepository.
type MockFuelRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.FuelRecord

	CreateCallCount int32

	CreateError error
	GetAllError error
}

// NewMockFuelRepository creates a new mock fuel repository.
func NewMockFuelRepository() *MockFuelRepository {
	return &MockFuelRepository{records: make(map[string]*domain.FuelRecord)}
}

// AddRecord adds a fuel record to the mock repository.
func (m *MockFuelRepository) AddRecord(record *domain.FuelRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
}

func (m *MockFuelRepository) Create(ctx context.Context, record *domain.FuelRecord) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	return nil
}

func (m *MockFuelRepository) GetByID(ctx context.Context, id string) (*domain.FuelRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *record
	return &copy, nil
}

func (m *MockFuelRepository) GetAll(ctx context.Context) ([]*domain.FuelRecord, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.FuelRecord, 0, len(m.records))
	for _, r := range m.records {
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

// CountRecords returns the number of stored fuel records.
func (m *MockFuelRepository) CountRecords() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// ──────────────────────────────────────────────
// MOCK ACCOUNT REPOSITORY
// ──────────────────────────────────────────────

// MockAccountRepository is a mock implementation of AccountRepository.
// DebitBalance is compare-and-set under the lock, matching the real
// backends.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.BulkFuelAccount

	DebitCallCount int32

	GetAllError error
	DebitError  error
}

// NewMockAccountRepository creates a new mock account repository.
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.BulkFuelAccount)}
}

// AddAccount adds an account to the mock repository.
func (m *MockAccountRepository) AddAccount(account *domain.BulkFuelAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.BulkFuelAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.BulkFuelAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *account
	return &copy, nil
}

func (m *MockAccountRepository) GetAll(ctx context.Context) ([]*domain.BulkFuelAccount, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.BulkFuelAccount, 0, len(m.accounts))
	for _, a := range m.accounts {
		copy := *a
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.BulkFuelAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return repository.ErrNotFound
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) DebitBalance(ctx context.Context, id string, amount, expected float64) error {
	atomic.AddInt32(&m.DebitCallCount, 1)
	if m.DebitError != nil {
		return m.DebitError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if account.CurrentBalance != expected {
		return repository.ErrConflict
	}
	account.CurrentBalance -= amount
	account.UpdatedAt = time.Now()
	return nil
}

// GetAccount returns an account for test assertions.
func (m *MockAccountRepository) GetAccount(id string) *domain.BulkFuelAccount {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accounts[id]
}

// ──────────────────────────────────────────────
// MOCK MAINTENANCE REPOSITORY
// ──────────────────────────────────────────────

// MockMaintenanceRepository is a mock implementation of MaintenanceRepository.
type MockMaintenanceRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.MaintenanceRecord

	GetAllError error
}

// NewMockMaintenanceRepository creates a new mock maintenance repository.
func NewMockMaintenanceRepository() *MockMaintenanceRepository {
	return &MockMaintenanceRepository{records: make(map[string]*domain.MaintenanceRecord)}
}

// AddRecord adds a maintenance record to the mock repository.
func (m *MockMaintenanceRepository) AddRecord(record *domain.MaintenanceRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, record *domain.MaintenanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	return nil
}

func (m *MockMaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *record
	return &copy, nil
}

func (m *MockMaintenanceRepository) GetAll(ctx context.Context) ([]*domain.MaintenanceRecord, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.MaintenanceRecord, 0, len(m.records))
	for _, r := range m.records {
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockMaintenanceRepository) Update(ctx context.Context, record *domain.MaintenanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[record.ID]; !ok {
		return repository.ErrNotFound
	}
	m.records[record.ID] = record
	return nil
}
