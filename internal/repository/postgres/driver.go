package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of
// repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

const driverColumns = `id, name, employee_id, license_number, license_class, license_expiry, email, phone, department, status, username, password_hash, join_date, notes, created_at, updated_at`

// Create persists a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		driver.EmployeeID,
		driver.LicenseNumber,
		driver.LicenseClass,
		driver.LicenseExpiry,
		driver.Email,
		driver.Phone,
		driver.Department,
		driver.Status,
		driver.Username,
		driver.PasswordHash,
		driver.JoinDate,
		driver.Notes,
		driver.CreatedAt,
		driver.UpdatedAt,
	)

	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByUsername retrieves a driver by login username.
func (r *DriverRepository) GetByUsername(ctx context.Context, username string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE username = $1`
	return r.getOne(ctx, query, username)
}

func (r *DriverRepository) getOne(ctx context.Context, query string, arg any) (*domain.Driver, error) {
	driver, err := scanDriver(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return driver, nil
}

// GetAll retrieves all drivers, most recent first.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	return drivers, rows.Err()
}

// Update updates an existing driver.
func (r *DriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	query := `
		UPDATE drivers
		SET name = $1, employee_id = $2, license_number = $3, license_class = $4, license_expiry = $5, email = $6, phone = $7, department = $8, status = $9, username = $10, password_hash = $11, join_date = $12, notes = $13, updated_at = $14
		WHERE id = $15
	`

	result, err := r.q.ExecContext(ctx, query,
		driver.Name,
		driver.EmployeeID,
		driver.LicenseNumber,
		driver.LicenseClass,
		driver.LicenseExpiry,
		driver.Email,
		driver.Phone,
		driver.Department,
		driver.Status,
		driver.Username,
		driver.PasswordHash,
		driver.JoinDate,
		driver.Notes,
		driver.UpdatedAt,
		driver.ID,
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

func scanDriver(s scanner) (*domain.Driver, error) {
	var driver domain.Driver
	err := s.Scan(
		&driver.ID,
		&driver.Name,
		&driver.EmployeeID,
		&driver.LicenseNumber,
		&driver.LicenseClass,
		&driver.LicenseExpiry,
		&driver.Email,
		&driver.Phone,
		&driver.Department,
		&driver.Status,
		&driver.Username,
		&driver.PasswordHash,
		&driver.JoinDate,
		&driver.Notes,
		&driver.CreatedAt,
		&driver.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

var _ repository.DriverRepository = (*DriverRepository)(nil)
