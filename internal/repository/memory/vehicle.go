package memory

import (
	"context"
	"sort"
	"sync"

	"fleetops/internal/domain"
	"fleetops/internal/localstore"
	"fleetops/internal/repository"
)

// VehicleRepository is an in-memory implementation of
// repository.VehicleRepository.
type VehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle
	store    *localstore.Store
}

// NewVehicleRepository creates an in-memory vehicle repository seeded
// from seed, unless the local store already holds the collection.
func NewVehicleRepository(store *localstore.Store, seed []*domain.Vehicle) *VehicleRepository {
	r := &VehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
		store:    store,
	}

	records := seed
	if store != nil {
		var stored []*domain.Vehicle
		if store.Load(keyVehicles, &stored) {
			records = stored
		}
	}
	for _, v := range records {
		copy := *v
		r.vehicles[copy.ID] = &copy
	}

	return r
}

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *vehicle
	r.vehicles[copy.ID] = &copy
	r.persist()
	return nil
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

// GetAll retrieves all vehicles, most recent first.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Update updates an existing vehicle.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[vehicle.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *vehicle
	r.vehicles[copy.ID] = &copy
	r.persist()
	return nil
}

// persist rewrites the full collection. Callers must hold the lock.
func (r *VehicleRepository) persist() {
	if r.store == nil {
		return
	}
	records := make([]*domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		records = append(records, v)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	r.store.Save(keyVehicles, records)
}

var _ repository.VehicleRepository = (*VehicleRepository)(nil)
