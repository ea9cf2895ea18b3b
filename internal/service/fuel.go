package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fleetops/internal/domain"
	"fleetops/internal/redis"
	"fleetops/internal/repository"
)

const (
	// maxDebitAttempts bounds the compare-and-set retry loop on a
	// bulk-account debit before giving up with ErrBalanceChanged.
	maxDebitAttempts = 3

	accountLockTTL = 5 * time.Second
)

// FuelService handles fuel record creation and bulk-account charging.
// Fuel records are immutable once created.
type FuelService struct {
	fuelRepo    repository.FuelRepository
	vehicleRepo repository.VehicleRepository
	accountRepo repository.AccountRepository
	locks       redis.AccountLocker
	log         *logrus.Entry
}

// NewFuelService creates a new FuelService. locks may be nil; the
// compare-and-set debit is correct without it, the lock just cuts down
// on retry churn between sessions sharing one Redis.
func NewFuelService(
	fuelRepo repository.FuelRepository,
	vehicleRepo repository.VehicleRepository,
	accountRepo repository.AccountRepository,
	locks redis.AccountLocker,
	log *logrus.Logger,
) *FuelService {
	return &FuelService{
		fuelRepo:    fuelRepo,
		vehicleRepo: vehicleRepo,
		accountRepo: accountRepo,
		locks:       locks,
		log:         log.WithField("component", "fuel"),
	}
}

// CreateFuelRecordRequest contains the parameters for recording a fuel
// purchase.
type CreateFuelRecordRequest struct {
	VehicleID     string
	FuelType      string
	Quantity      float64
	UnitCost      float64
	Odometer      float64
	Date          time.Time
	Station       string
	ReceiptNumber string
	PaymentMethod domain.PaymentMethod
	AccountID     string
	Notes         string
}

// Create validates and persists a fuel purchase. Total cost is always
// quantity times unit cost. When paid from a bulk account, the account
// is debited by exactly the total, exactly once, before the record is
// written; a purchase exceeding the current balance is rejected before
// any write happens.
func (s *FuelService) Create(ctx context.Context, req CreateFuelRecordRequest) (*domain.FuelRecord, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidFuelQuantity
	}
	if req.UnitCost < 0 {
		return nil, ErrInvalidUnitCost
	}

	if _, err := s.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownVehicle
		}
		return nil, err
	}

	now := time.Now()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	record := &domain.FuelRecord{
		ID:            uuid.New().String(),
		VehicleID:     req.VehicleID,
		FuelType:      req.FuelType,
		Quantity:      req.Quantity,
		UnitCost:      req.UnitCost,
		TotalCost:     req.Quantity * req.UnitCost,
		Odometer:      req.Odometer,
		Date:          date,
		Station:       req.Station,
		ReceiptNumber: req.ReceiptNumber,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		CreatedAt:     now,
	}

	if req.PaymentMethod == domain.PaymentMethodBulkAccount {
		if req.AccountID == "" {
			return nil, ErrInvalidAccountID
		}
		record.AccountID = req.AccountID

		if err := s.debitAccount(ctx, req.AccountID, record.TotalCost); err != nil {
			return nil, err
		}
	}

	if err := s.fuelRepo.Create(ctx, record); err != nil {
		// The account was already charged; put the money back rather
		// than leave a debit with no record behind it.
		if record.AccountID != "" {
			s.refundAccount(ctx, record.AccountID, record.TotalCost)
		}
		return nil, err
	}

	return record, nil
}

// GetRecord retrieves a fuel record by ID.
func (s *FuelService) GetRecord(ctx context.Context, id string) (*domain.FuelRecord, error) {
	return s.fuelRepo.GetByID(ctx, id)
}

// GetAllRecords retrieves all fuel records.
func (s *FuelService) GetAllRecords(ctx context.Context) ([]*domain.FuelRecord, error) {
	return s.fuelRepo.GetAll(ctx)
}

// debitAccount charges amount against the account with a bounded
// compare-and-set loop: read balance, reject if insufficient, write
// back conditioned on the balance being unchanged since the read.
// Two concurrent charges against a balance sufficient for only one of
// them end with exactly one success.
func (s *FuelService) debitAccount(ctx context.Context, accountID string, amount float64) error {
	if s.locks != nil {
		locked, err := s.locks.AcquireAccountLock(ctx, accountID, accountLockTTL)
		if err != nil {
			s.log.WithError(err).Warn("account lock unavailable; relying on compare-and-set only")
		} else if locked {
			defer func() {
				_ = s.locks.ReleaseAccountLock(ctx, accountID)
			}()
		}
	}

	for attempt := 0; attempt < maxDebitAttempts; attempt++ {
		account, err := s.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUnknownAccount
			}
			return err
		}

		if account.Status != domain.AccountStatusActive {
			return ErrAccountNotActive
		}
		if amount > account.CurrentBalance {
			return ErrInsufficientBalance
		}

		err = s.accountRepo.DebitBalance(ctx, accountID, amount, account.CurrentBalance)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return err
		}
		// Balance moved under us; re-read and try again.
	}

	return ErrBalanceChanged
}

// refundAccount is best-effort compensation when the fuel record write
// fails after the debit landed.
func (s *FuelService) refundAccount(ctx context.Context, accountID string, amount float64) {
	for attempt := 0; attempt < maxDebitAttempts; attempt++ {
		account, err := s.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			break
		}
		if err := s.accountRepo.DebitBalance(ctx, accountID, -amount, account.CurrentBalance); err == nil {
			return
		} else if !errors.Is(err, repository.ErrConflict) {
			break
		}
	}
	s.log.WithFields(logrus.Fields{
		"account_id": accountID,
		"amount":     amount,
	}).Error("could not refund account after failed fuel record write; manual correction needed")
}

// CreateAccountRequest contains the parameters for opening a bulk fuel
// account with a supplier.
type CreateAccountRequest struct {
	Supplier       string
	AccountNumber  string
	InitialBalance float64
	CreditLimit    float64
	ContactName    string
	ContactPhone   string
	ContactEmail   string
}

// CreateAccount opens a new bulk fuel account in active status. The
// current balance starts at the initial balance.
func (s *FuelService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*domain.BulkFuelAccount, error) {
	if req.Supplier == "" {
		return nil, ErrMissingSupplier
	}

	now := time.Now()
	account := &domain.BulkFuelAccount{
		ID:             uuid.New().String(),
		Supplier:       req.Supplier,
		AccountNumber:  req.AccountNumber,
		CurrentBalance: req.InitialBalance,
		InitialBalance: req.InitialBalance,
		CreditLimit:    req.CreditLimit,
		Status:         domain.AccountStatusActive,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		ContactEmail:   req.ContactEmail,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount retrieves a bulk fuel account by ID.
func (s *FuelService) GetAccount(ctx context.Context, id string) (*domain.BulkFuelAccount, error) {
	if id == "" {
		return nil, ErrInvalidAccountID
	}
	return s.accountRepo.GetByID(ctx, id)
}

// GetAllAccounts retrieves all bulk fuel accounts.
func (s *FuelService) GetAllAccounts(ctx context.Context) ([]*domain.BulkFuelAccount, error) {
	return s.accountRepo.GetAll(ctx)
}
