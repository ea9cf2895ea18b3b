package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// TicketRepository is a PostgreSQL implementation of
// repository.TicketRepository.
type TicketRepository struct {
	q Querier
}

// NewTicketRepository creates a new PostgreSQL ticket repository.
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{q: db}
}

// NewTicketRepositoryWithTx creates a ticket repository using a transaction.
func NewTicketRepositoryWithTx(tx *sql.Tx) *TicketRepository {
	return &TicketRepository{q: tx}
}

const ticketColumns = `id, driver_id, driver_name, driver_license, driver_email, vehicle_id, vehicle_registration, destination, purpose, fuel_required, estimated_distance, departure_date, return_date, notes, status, approved_by, approved_at, rejected_by, rejected_at, rejection_reason, created_at`

// Create persists a new work ticket.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.WorkTicket) error {
	query := `
		INSERT INTO work_tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	var approvedBy, rejectedBy, rejectionReason sql.NullString
	if ticket.ApprovedBy != "" {
		approvedBy = sql.NullString{String: ticket.ApprovedBy, Valid: true}
	}
	if ticket.RejectedBy != "" {
		rejectedBy = sql.NullString{String: ticket.RejectedBy, Valid: true}
	}
	if ticket.RejectionReason != "" {
		rejectionReason = sql.NullString{String: ticket.RejectionReason, Valid: true}
	}

	var approvedAt, rejectedAt sql.NullTime
	if !ticket.ApprovedAt.IsZero() {
		approvedAt = sql.NullTime{Time: ticket.ApprovedAt, Valid: true}
	}
	if !ticket.RejectedAt.IsZero() {
		rejectedAt = sql.NullTime{Time: ticket.RejectedAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		ticket.ID,
		ticket.DriverID,
		ticket.DriverName,
		ticket.DriverLicense,
		ticket.DriverEmail,
		ticket.VehicleID,
		ticket.VehicleRegistration,
		ticket.Destination,
		ticket.Purpose,
		ticket.FuelRequired,
		ticket.EstimatedDistance,
		ticket.DepartureDate,
		ticket.ReturnDate,
		ticket.Notes,
		ticket.Status,
		approvedBy,
		approvedAt,
		rejectedBy,
		rejectedAt,
		rejectionReason,
		ticket.CreatedAt,
	)

	return err
}

// GetByID retrieves a work ticket by ID.
func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.WorkTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM work_tickets WHERE id = $1`

	ticket, err := scanTicket(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return ticket, nil
}

// GetAll retrieves all work tickets, most recent first.
func (r *TicketRepository) GetAll(ctx context.Context) ([]*domain.WorkTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM work_tickets ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*domain.WorkTicket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

// Approve transitions a pending ticket to approved. The status guard is
// part of the WHERE clause so a concurrent transition loses cleanly.
func (r *TicketRepository) Approve(ctx context.Context, id, approver string, at time.Time) error {
	query := `
		UPDATE work_tickets
		SET status = $1, approved_by = $2, approved_at = $3
		WHERE id = $4 AND status = $5
	`

	result, err := r.q.ExecContext(ctx, query,
		domain.TicketStatusApproved, approver, at, id, domain.TicketStatusPending,
	)
	if err != nil {
		return err
	}

	return r.transitionOutcome(ctx, result, id)
}

// Reject transitions a pending ticket to rejected.
func (r *TicketRepository) Reject(ctx context.Context, id, rejecter, reason string, at time.Time) error {
	query := `
		UPDATE work_tickets
		SET status = $1, rejected_by = $2, rejected_at = $3, rejection_reason = $4
		WHERE id = $5 AND status = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		domain.TicketStatusRejected, rejecter, at, reason, id, domain.TicketStatusPending,
	)
	if err != nil {
		return err
	}

	return r.transitionOutcome(ctx, result, id)
}

// transitionOutcome distinguishes "ticket missing" from "ticket no
// longer pending" when a conditional transition touched no rows.
func (r *TicketRepository) transitionOutcome(ctx context.Context, result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM work_tickets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

func scanTicket(s scanner) (*domain.WorkTicket, error) {
	var ticket domain.WorkTicket
	var approvedBy, rejectedBy, rejectionReason sql.NullString
	var approvedAt, rejectedAt sql.NullTime

	err := s.Scan(
		&ticket.ID,
		&ticket.DriverID,
		&ticket.DriverName,
		&ticket.DriverLicense,
		&ticket.DriverEmail,
		&ticket.VehicleID,
		&ticket.VehicleRegistration,
		&ticket.Destination,
		&ticket.Purpose,
		&ticket.FuelRequired,
		&ticket.EstimatedDistance,
		&ticket.DepartureDate,
		&ticket.ReturnDate,
		&ticket.Notes,
		&ticket.Status,
		&approvedBy,
		&approvedAt,
		&rejectedBy,
		&rejectedAt,
		&rejectionReason,
		&ticket.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if approvedBy.Valid {
		ticket.ApprovedBy = approvedBy.String
	}
	if approvedAt.Valid {
		ticket.ApprovedAt = approvedAt.Time
	}
	if rejectedBy.Valid {
		ticket.RejectedBy = rejectedBy.String
	}
	if rejectedAt.Valid {
		ticket.RejectedAt = rejectedAt.Time
	}
	if rejectionReason.Valid {
		ticket.RejectionReason = rejectionReason.String
	}

	return &ticket, nil
}

var _ repository.TicketRepository = (*TicketRepository)(nil)
