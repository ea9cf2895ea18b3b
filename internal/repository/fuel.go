package repository

import (
	"context"

	"fleetops/internal/domain"
)

// FuelRepository defines the persistence operations for fuel records.
// Fuel records are immutable after creation, so there is no Update.
type FuelRepository interface {
	// Create persists a new fuel record.
	Create(ctx context.Context, record *domain.FuelRecord) error

	// GetByID retrieves a fuel record by ID.
	GetByID(ctx context.Context, id string) (*domain.FuelRecord, error)

	// GetAll retrieves all fuel records, most recent first.
	GetAll(ctx context.Context) ([]*domain.FuelRecord, error)
}
