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

// TicketRepository is an in-memory implementation of
// repository.TicketRepository.
type TicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]*domain.WorkTicket
	store   *localstore.Store
}

// NewTicketRepository creates an in-memory ticket repository seeded
// from seed, unless the local store already holds the collection.
func NewTicketRepository(store *localstore.Store, seed []*domain.WorkTicket) *TicketRepository {
	r := &TicketRepository{
		tickets: make(map[string]*domain.WorkTicket),
		store:   store,
	}

	records := seed
	if store != nil {
		var stored []*domain.WorkTicket
		if store.Load(keyTickets, &stored) {
			records = stored
		}
	}
	for _, t := range records {
		copy := *t
		r.tickets[copy.ID] = &copy
	}

	return r
}

// Create persists a new work ticket.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.WorkTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *ticket
	r.tickets[copy.ID] = &copy
	r.persist()
	return nil
}

// GetByID retrieves a work ticket by ID.
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.WorkTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ticket
	return &copy, nil
}

// GetAll retrieves all work tickets, most recent first.
func (r *TicketRepository) GetAll(ctx context.Context) ([]*domain.WorkTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.WorkTicket, 0, len(r.tickets))
	for _, t := range r.tickets {
		copy := *t
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Approve transitions a pending ticket to approved.
func (r *TicketRepository) Approve(ctx context.Context, id, approver string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return repository.ErrNotFound
	}
	if ticket.Status != domain.TicketStatusPending {
		return repository.ErrConflict
	}
	ticket.Status = domain.TicketStatusApproved
	ticket.ApprovedBy = approver
	ticket.ApprovedAt = at
	r.persist()
	return nil
}

// Reject transitions a pending ticket to rejected.
func (r *TicketRepository) Reject(ctx context.Context, id, rejecter, reason string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
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
	r.persist()
	return nil
}

// persist rewrites the full collection. Callers must hold the lock.
func (r *TicketRepository) persist() {
	if r.store == nil {
		return
	}
	records := make([]*domain.WorkTicket, 0, len(r.tickets))
	for _, t := range r.tickets {
		records = append(records, t)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	r.store.Save(keyTickets, records)
}

var _ repository.TicketRepository = (*TicketRepository)(nil)
