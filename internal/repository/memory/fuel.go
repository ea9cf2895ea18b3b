package memory

import (
	"context"
	"sort"
	"sync"

	"fleetops/internal/domain"
	"fleetops/internal/localstore"
	"fleetops/internal/repository"
)

// FuelRepository is an in-memory implementation of
// repository.FuelRepository.
type FuelRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.FuelRecord
	store   *localstore.Store
}

// NewFuelRepository creates an in-memory fuel repository seeded from
// seed, unless the local store already holds the collection.
func NewFuelRepository(store *localstore.Store, seed []*domain.FuelRecord) *FuelRepository {
	r := &FuelRepository{
		records: make(map[string]*domain.FuelRecord),
		store:   store,
	}

	records := seed
	if store != nil {
		var stored []*domain.FuelRecord
		if store.Load(keyFuelRecords, &stored) {
			records = stored
		}
	}
	for _, f := range records {
		copy := *f
		r.records[copy.ID] = &copy
	}

	return r
}

// Create persists a new fuel record.
func (r *FuelRepository) Create(ctx context.Context, record *domain.FuelRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *record
	r.records[copy.ID] = &copy
	r.persist()
	return nil
}

// GetByID retrieves a fuel record by ID.
func (r *FuelRepository) GetByID(ctx context.Context, id string) (*domain.FuelRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *record
	return &copy, nil
}

// GetAll retrieves all fuel records, most recent first.
func (r *FuelRepository) GetAll(ctx context.Context) ([]*domain.FuelRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.FuelRecord, 0, len(r.records))
	for _, f := range r.records {
		copy := *f
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// persist rewrites the full collection. Callers must hold the lock.
func (r *FuelRepository) persist() {
	if r.store == nil {
		return
	}
	records := make([]*domain.FuelRecord, 0, len(r.records))
	for _, f := range r.records {
		records = append(records, f)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	r.store.Save(keyFuelRecords, records)
}

var _ repository.FuelRepository = (*FuelRepository)(nil)
