package repository

import (
	"context"

	"fleetops/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create persists a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByUsername retrieves a driver by login username.
	GetByUsername(ctx context.Context, username string) (*domain.Driver, error)

	// GetAll retrieves all drivers, most recent first.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// Update updates an existing driver.
	Update(ctx context.Context, driver *domain.Driver) error
}
