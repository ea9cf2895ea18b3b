package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// FuelRepository is a PostgreSQL implementation of
// repository.FuelRepository.
type FuelRepository struct {
	q Querier
}

// NewFuelRepository creates a new PostgreSQL fuel repository.
func NewFuelRepository(db *sql.DB) *FuelRepository {
	return &FuelRepository{q: db}
}

// NewFuelRepositoryWithTx creates a fuel repository using a transaction.
func NewFuelRepositoryWithTx(tx *sql.Tx) *FuelRepository {
	return &FuelRepository{q: tx}
}

const fuelColumns = `id, vehicle_id, fuel_type, quantity, unit_cost, total_cost, odometer, date, station, receipt_number, payment_method, account_id, notes, created_at`

// Create persists a new fuel record.
func (r *FuelRepository) Create(ctx context.Context, record *domain.FuelRecord) error {
	query := `
		INSERT INTO fuel_records (` + fuelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	var accountID sql.NullString
	if record.AccountID != "" {
		accountID = sql.NullString{String: record.AccountID, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		record.ID,
		record.VehicleID,
		record.FuelType,
		record.Quantity,
		record.UnitCost,
		record.TotalCost,
		record.Odometer,
		record.Date,
		record.Station,
		record.ReceiptNumber,
		record.PaymentMethod,
		accountID,
		record.Notes,
		record.CreatedAt,
	)

	return err
}

// GetByID retrieves a fuel record by ID.
func (r *FuelRepository) GetByID(ctx context.Context, id string) (*domain.FuelRecord, error) {
	query := `SELECT ` + fuelColumns + ` FROM fuel_records WHERE id = $1`

	record, err := scanFuelRecord(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return record, nil
}

// GetAll retrieves all fuel records, most recent first.
func (r *FuelRepository) GetAll(ctx context.Context) ([]*domain.FuelRecord, error) {
	query := `SELECT ` + fuelColumns + ` FROM fuel_records ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.FuelRecord
	for rows.Next() {
		record, err := scanFuelRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanFuelRecord(s scanner) (*domain.FuelRecord, error) {
	var record domain.FuelRecord
	var accountID sql.NullString

	err := s.Scan(
		&record.ID,
		&record.VehicleID,
		&record.FuelType,
		&record.Quantity,
		&record.UnitCost,
		&record.TotalCost,
		&record.Odometer,
		&record.Date,
		&record.Station,
		&record.ReceiptNumber,
		&record.PaymentMethod,
		&accountID,
		&record.Notes,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if accountID.Valid {
		record.AccountID = accountID.String
	}

	return &record, nil
}

var _ repository.FuelRepository = (*FuelRepository)(nil)
