package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of
// repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

const vehicleColumns = `id, registration, make, model, year, engine_number, chassis_number, status, department, location, fuel_type, seating_capacity, equipment, notes, created_at, updated_at`

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.Registration,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.EngineNumber,
		vehicle.ChassisNumber,
		vehicle.Status,
		vehicle.Department,
		vehicle.Location,
		vehicle.FuelType,
		vehicle.SeatingCapacity,
		pq.Array(vehicle.Equipment),
		vehicle.Notes,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

// GetAll retrieves all vehicles, most recent first.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}

// Update updates an existing vehicle.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET registration = $1, make = $2, model = $3, year = $4, engine_number = $5, chassis_number = $6, status = $7, department = $8, location = $9, fuel_type = $10, seating_capacity = $11, equipment = $12, notes = $13, updated_at = $14
		WHERE id = $15
	`

	result, err := r.q.ExecContext(ctx, query,
		vehicle.Registration,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.EngineNumber,
		vehicle.ChassisNumber,
		vehicle.Status,
		vehicle.Department,
		vehicle.Location,
		vehicle.FuelType,
		vehicle.SeatingCapacity,
		pq.Array(vehicle.Equipment),
		vehicle.Notes,
		vehicle.UpdatedAt,
		vehicle.ID,
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

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVehicle(s scanner) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := s.Scan(
		&vehicle.ID,
		&vehicle.Registration,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.EngineNumber,
		&vehicle.ChassisNumber,
		&vehicle.Status,
		&vehicle.Department,
		&vehicle.Location,
		&vehicle.FuelType,
		&vehicle.SeatingCapacity,
		pq.Array(&vehicle.Equipment),
		&vehicle.Notes,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

var _ repository.VehicleRepository = (*VehicleRepository)(nil)
