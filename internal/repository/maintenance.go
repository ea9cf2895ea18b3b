package repository

import (
	"context"

	"fleetops/internal/domain"
)

// MaintenanceRepository defines the persistence operations for
// maintenance records.
type MaintenanceRepository interface {
	// Create persists a new maintenance record.
	Create(ctx context.Context, record *domain.MaintenanceRecord) error

	// GetByID retrieves a maintenance record by ID.
	GetByID(ctx context.Context, id string) (*domain.MaintenanceRecord, error)

	// GetAll retrieves all maintenance records, most recent first.
	GetAll(ctx context.Context) ([]*domain.MaintenanceRecord, error)

	// Update updates an existing maintenance record.
	Update(ctx context.Context, record *domain.MaintenanceRecord) error
}
