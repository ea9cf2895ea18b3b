package repository

import (
	"context"

	"fleetops/internal/domain"
)

// AccountRepository defines the persistence operations for bulk fuel
// accounts.
type AccountRepository interface {
	// Create persists a new bulk fuel account.
	Create(ctx context.Context, account *domain.BulkFuelAccount) error

	// GetByID retrieves an account by ID.
	GetByID(ctx context.Context, id string) (*domain.BulkFuelAccount, error)

	// GetAll retrieves all accounts, most recent first.
	GetAll(ctx context.Context) ([]*domain.BulkFuelAccount, error)

	// Update updates an existing account.
	Update(ctx context.Context, account *domain.BulkFuelAccount) error

	// DebitBalance decrements the account balance by amount, conditioned
	// on the balance still being expected at write time (compare-and-set).
	// Returns ErrConflict when the balance changed since it was read, so
	// the caller can re-read and retry instead of double-spending.
	DebitBalance(ctx context.Context, id string, amount, expected float64) error
}
