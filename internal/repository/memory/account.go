package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/localstore"
	"fleetops/internal/repository"
)

// AccountRepository is an in-memory implementation of
// repository.AccountRepository.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.BulkFuelAccount
	store    *localstore.Store
}

// NewAccountRepository creates an in-memory account repository seeded
// from seed, unless the local store already holds the collection.
func NewAccountRepository(store *localstore.Store, seed []*domain.BulkFuelAccount) *AccountRepository {
	r := &AccountRepository{
		accounts: make(map[string]*domain.BulkFuelAccount),
		store:    store,
	}

	records := seed
	if store != nil {
		var stored []*domain.BulkFuelAccount
		if store.Load(keyAccounts, &stored) {
			records = stored
		}
	}
	for _, a := range records {
		copy := *a
		r.accounts[copy.ID] = &copy
	}

	return r
}

// Create persists a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.BulkFuelAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *account
	r.accounts[copy.ID] = &copy
	r.persist()
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.BulkFuelAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *account
	return &copy, nil
}

// GetAll retrieves all accounts, most recent first.
func (r *AccountRepository) GetAll(ctx context.Context) ([]*domain.BulkFuelAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.BulkFuelAccount, 0, len(r.accounts))
	for _, a := range r.accounts {
		copy := *a
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Update updates an existing account.
func (r *AccountRepository) Update(ctx context.Context, account *domain.BulkFuelAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *account
	r.accounts[copy.ID] = &copy
	r.persist()
	return nil
}

// DebitBalance decrements the balance by amount, conditioned on the
// balance still being expected (compare-and-set).
func (r *AccountRepository) DebitBalance(ctx context.Context, id string, amount, expected float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if account.CurrentBalance != expected {
		return repository.ErrConflict
	}
	account.CurrentBalance -= amount
	account.UpdatedAt = time.Now()
	r.persist()
	return nil
}

// persist rewrites the full collection. Callers must hold the lock.
func (r *AccountRepository) persist() {
	if r.store == nil {
		return
	}
	records := make([]*domain.BulkFuelAccount, 0, len(r.accounts))
	for _, a := range r.accounts {
		records = append(records, a)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	r.store.Save(keyAccounts, records)
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
