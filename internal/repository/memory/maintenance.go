package memory

import (
	"context"
	"sort"
	"sync"

	"fleetops/internal/domain"
	"fleetops/internal/localstore"
	"fleetops/internal/repository"
)

// MaintenanceRepository is an in-memory implementation of
// repository.MaintenanceRepository.
type MaintenanceRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.MaintenanceRecord
	store   *localstore.Store
}

// NewMaintenanceRepository creates an in-memory maintenance repository
// seeded from seed, unless the local store already holds the collection.
func NewMaintenanceRepository(store *localstore.Store, seed []*domain.MaintenanceRecord) *MaintenanceRepository {
	r := &MaintenanceRepository{
		records: make(map[string]*domain.MaintenanceRecord),
		store:   store,
	}

	records := seed
	if store != nil {
		var stored []*domain.MaintenanceRecord
		if store.Load(keyMaintenance, &stored) {
			records = stored
		}
	}
	for _, m := range records {
		copy := *m
		r.records[copy.ID] = &copy
	}

	return r
}

// Create persists a new maintenance record.
func (r *MaintenanceRepository) Create(ctx context.Context, record *domain.MaintenanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *record
	r.records[copy.ID] = &copy
	r.persist()
	return nil
}

// GetByID retrieves a maintenance record by ID.
func (r *MaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *record
	return &copy, nil
}

// GetAll retrieves all maintenance records, most recent first.
func (r *MaintenanceRepository) GetAll(ctx context.Context) ([]*domain.MaintenanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.MaintenanceRecord, 0, len(r.records))
	for _, m := range r.records {
		copy := *m
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Update updates an existing maintenance record.
func (r *MaintenanceRepository) Update(ctx context.Context, record *domain.MaintenanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *record
	r.records[copy.ID] = &copy
	r.persist()
	return nil
}

// persist rewrites the full collection. Callers must hold the lock.
func (r *MaintenanceRepository) persist() {
	if r.store == nil {
		return
	}
	records := make([]*domain.MaintenanceRecord, 0, len(r.records))
	for _, m := range r.records {
		records = append(records, m)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	r.store.Save(keyMaintenance, records)
}

var _ repository.MaintenanceRepository = (*MaintenanceRepository)(nil)
