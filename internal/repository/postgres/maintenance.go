package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// MaintenanceRepository is a PostgreSQL implementation of
// repository.MaintenanceRepository.
type MaintenanceRepository struct {
	q Querier
}

// NewMaintenanceRepository creates a new PostgreSQL maintenance repository.
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{q: db}
}

// NewMaintenanceRepositoryWithTx creates a maintenance repository using a transaction.
func NewMaintenanceRepositoryWithTx(tx *sql.Tx) *MaintenanceRepository {
	return &MaintenanceRepository{q: tx}
}

const maintenanceColumns = `id, vehicle_id, type, provider, description, parts_replaced, labor_cost, parts_cost, total_cost, odometer, service_date, next_service, next_mileage, status, priority, warranty, notes, created_at, updated_at`

// Create persists a new maintenance record.
func (r *MaintenanceRepository) Create(ctx context.Context, record *domain.MaintenanceRecord) error {
	query := `
		INSERT INTO maintenance_records (` + maintenanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	var nextService sql.NullTime
	if !record.NextService.IsZero() {
		nextService = sql.NullTime{Time: record.NextService, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		record.ID,
		record.VehicleID,
		record.Type,
		record.Provider,
		record.Description,
		pq.Array(record.PartsReplaced),
		record.LaborCost,
		record.PartsCost,
		record.TotalCost,
		record.Odometer,
		record.ServiceDate,
		nextService,
		record.NextMileage,
		record.Status,
		record.Priority,
		record.Warranty,
		record.Notes,
		record.CreatedAt,
		record.UpdatedAt,
	)

	return err
}

// GetByID retrieves a maintenance record by ID.
func (r *MaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records WHERE id = $1`

	record, err := scanMaintenance(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return record, nil
}

// GetAll retrieves all maintenance records, most recent first.
func (r *MaintenanceRepository) GetAll(ctx context.Context) ([]*domain.MaintenanceRecord, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_records ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.MaintenanceRecord
	for rows.Next() {
		record, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Update updates an existing maintenance record.
func (r *MaintenanceRepository) Update(ctx context.Context, record *domain.MaintenanceRecord) error {
	query := `
		UPDATE maintenance_records
		SET vehicle_id = $1, type = $2, provider = $3, description = $4, parts_replaced = $5, labor_cost = $6, parts_cost = $7, total_cost = $8, odometer = $9, service_date = $10, next_service = $11, next_mileage = $12, status = $13, priority = $14, warranty = $15, notes = $16, updated_at = $17
		WHERE id = $18
	`

	var nextService sql.NullTime
	if !record.NextService.IsZero() {
		nextService = sql.NullTime{Time: record.NextService, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		record.VehicleID,
		record.Type,
		record.Provider,
		record.Description,
		pq.Array(record.PartsReplaced),
		record.LaborCost,
		record.PartsCost,
		record.TotalCost,
		record.Odometer,
		record.ServiceDate,
		nextService,
		record.NextMileage,
		record.Status,
		record.Priority,
		record.Warranty,
		record.Notes,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanMaintenance(s scanner) (*domain.MaintenanceRecord, error) {
	var record domain.MaintenanceRecord
	var nextService sql.NullTime

	err := s.Scan(
		&record.ID,
		&record.VehicleID,
		&record.Type,
		&record.Provider,
		&record.Description,
		pq.Array(&record.PartsReplaced),
		&record.LaborCost,
		&record.PartsCost,
		&record.TotalCost,
		&record.Odometer,
		&record.ServiceDate,
		&nextService,
		&record.NextMileage,
		&record.Status,
		&record.Priority,
		&record.Warranty,
		&record.Notes,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if nextService.Valid {
		record.NextService = nextService.Time
	}

	return &record, nil
}

var _ repository.MaintenanceRepository = (*MaintenanceRepository)(nil)
