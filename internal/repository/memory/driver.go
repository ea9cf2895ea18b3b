package memory

import (
	"context"
	"sort"
	"sync"

	"fleetops/internal/domain"
	"fleetops/internal/localstore"
	"fleetops/internal/repository"
)

// DriverRepository is an in-memory implementation of
// repository.DriverRepository.
type DriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver
	store   *localstore.Store
}

// NewDriverRepository creates an in-memory driver repository seeded
// from seed, unless the local store already holds the collection.
func NewDriverRepository(store *localstore.Store, seed []*domain.Driver) *DriverRepository {
	r := &DriverRepository{
		drivers: make(map[string]*domain.Driver),
		store:   store,
	}

	records := seed
	if store != nil {
		var stored []*domain.Driver
		if store.Load(keyDrivers, &stored) {
			records = stored
		}
	}
	for _, d := range records {
		copy := *d
		r.drivers[copy.ID] = &copy
	}

	return r
}

// Create persists a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *driver
	r.drivers[copy.ID] = &copy
	r.persist()
	return nil
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	driver, ok := r.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

// GetByUsername retrieves a driver by login username.
func (r *DriverRepository) GetByUsername(ctx context.Context, username string) (*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.drivers {
		if d.Username == username {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetAll retrieves all drivers, most recent first.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		copy := *d
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Update updates an existing driver.
func (r *DriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *driver
	r.drivers[copy.ID] = &copy
	r.persist()
	return nil
}

// persist rewrites the full collection. Callers must hold the lock.
func (r *DriverRepository) persist() {
	if r.store == nil {
		return
	}
	records := make([]*domain.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		records = append(records, d)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	r.store.Save(keyDrivers, records)
}

var _ repository.DriverRepository = (*DriverRepository)(nil)
