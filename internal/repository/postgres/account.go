package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// AccountRepository is a PostgreSQL implementation of
// repository.AccountRepository.
type AccountRepository struct {
	q Querier
}

// NewAccountRepository creates a new PostgreSQL account repository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{q: db}
}

// NewAccountRepositoryWithTx creates an account repository using a transaction.
func NewAccountRepositoryWithTx(tx *sql.Tx) *AccountRepository {
	return &AccountRepository{q: tx}
}

const accountColumns = `id, supplier, account_number, current_balance, initial_balance, credit_limit, status, contact_name, contact_phone, contact_email, created_at, updated_at`

// Create persists a new bulk fuel account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.BulkFuelAccount) error {
	query := `
		INSERT INTO bulk_fuel_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		account.ID,
		account.Supplier,
		account.AccountNumber,
		account.CurrentBalance,
		account.InitialBalance,
		account.CreditLimit,
		account.Status,
		account.ContactName,
		account.ContactPhone,
		account.ContactEmail,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.BulkFuelAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bulk_fuel_accounts WHERE id = $1`

	account, err := scanAccount(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return account, nil
}

// GetAll retrieves all accounts, most recent first.
func (r *AccountRepository) GetAll(ctx context.Context) ([]*domain.BulkFuelAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bulk_fuel_accounts ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.BulkFuelAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Update updates an existing account.
func (r *AccountRepository) Update(ctx context.Context, account *domain.BulkFuelAccount) error {
	query := `
		UPDATE bulk_fuel_accounts
		SET supplier = $1, account_number = $2, current_balance = $3, initial_balance = $4, credit_limit = $5, status = $6, contact_name = $7, contact_phone = $8, contact_email = $9, updated_at = $10
		WHERE id = $11
	`

	result, err := r.q.ExecContext(ctx, query,
		account.Supplier,
		account.AccountNumber,
		account.CurrentBalance,
		account.InitialBalance,
		account.CreditLimit,
		account.Status,
		account.ContactName,
		account.ContactPhone,
		account.ContactEmail,
		account.UpdatedAt,
		account.ID,
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

// DebitBalance decrements the balance by amount with a compare-and-set:
// the write only lands if the balance is still what the caller read, so
// two concurrent debits against the same account cannot both succeed on
// the same balance.
func (r *AccountRepository) DebitBalance(ctx context.Context, id string, amount, expected float64) error {
	query := `
		UPDATE bulk_fuel_accounts
		SET current_balance = current_balance - $1, updated_at = $2
		WHERE id = $3 AND current_balance = $4
	`

	result, err := r.q.ExecContext(ctx, query, amount, time.Now(), id, expected)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM bulk_fuel_accounts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

func scanAccount(s scanner) (*domain.BulkFuelAccount, error) {
	var account domain.BulkFuelAccount
	err := s.Scan(
		&account.ID,
		&account.Supplier,
		&account.AccountNumber,
		&account.CurrentBalance,
		&account.InitialBalance,
		&account.CreditLimit,
		&account.Status,
		&account.ContactName,
		&account.ContactPhone,
		&account.ContactEmail,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
