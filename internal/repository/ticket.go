package repository

import (
	"context"
	"time"

	"fleetops/internal/domain"
)

// TicketRepository defines the persistence operations for work tickets.
//
// Approve and Reject are conditional writes: they only take effect when
// the ticket is still pending, so a lost race between two admin
// sessions surfaces as ErrConflict instead of silently overwriting a
// terminal state.
type TicketRepository interface {
	// Create persists a new work ticket.
	Create(ctx context.Context, ticket *domain.WorkTicket) error

	// GetByID retrieves a work ticket by ID.
	GetByID(ctx context.Context, id string) (*domain.WorkTicket, error)

	// GetAll retrieves all work tickets, most recent first.
	GetAll(ctx context.Context) ([]*domain.WorkTicket, error)

	// Approve transitions a pending ticket to approved.
	// Returns ErrConflict if the ticket is no longer pending.
	Approve(ctx context.Context, id, approver string, at time.Time) error

	// Reject transitions a pending ticket to rejected.
	// Returns ErrConflict if the ticket is no longer pending.
	Reject(ctx context.Context, id, rejecter, reason string, at time.Time) error
}
