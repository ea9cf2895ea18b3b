package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// DriverService handles driver registry operations.
type DriverService struct {
	driverRepo repository.DriverRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// CreateDriverRequest contains the parameters for registering a driver.
type CreateDriverRequest struct {
	Name          string
	EmployeeID    string
	LicenseNumber string
	LicenseClass  string
	LicenseExpiry time.Time
	Phone         string
	Email         string
	Department    string
	JoinDate      time.Time
	Username      string
	Password      string
	Notes         string
}

// Create registers a new driver in active status. When a username and
// password are supplied the driver can authenticate; the password is
// stored as a bcrypt hash.
func (s *DriverService) Create(ctx context.Context, req CreateDriverRequest) (*domain.Driver, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrMissingName
	}
	if (req.Username == "") != (req.Password == "") {
		return nil, ErrMissingCredentials
	}

	var passwordHash string
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = string(hash)
	}

	now := time.Now()
	driver := &domain.Driver{
		ID:            uuid.New().String(),
		Name:          req.Name,
		EmployeeID:    req.EmployeeID,
		LicenseNumber: req.LicenseNumber,
		LicenseClass:  req.LicenseClass,
		LicenseExpiry: req.LicenseExpiry,
		Phone:         req.Phone,
		Email:         req.Email,
		Department:    req.Department,
		JoinDate:      req.JoinDate,
		Status:        domain.DriverStatusActive,
		Username:      req.Username,
		PasswordHash:  passwordHash,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}

	return driver, nil
}

// Update applies an admin edit to an existing driver. The password hash
// is never modified through this path.
func (s *DriverService) Update(ctx context.Context, driver *domain.Driver) (*domain.Driver, error) {
	if driver.ID == "" {
		return nil, ErrInvalidDriverID
	}
	if strings.TrimSpace(driver.Name) == "" {
		return nil, ErrMissingName
	}

	existing, err := s.driverRepo.GetByID(ctx, driver.ID)
	if err != nil {
		return nil, err
	}
	driver.PasswordHash = existing.PasswordHash
	driver.CreatedAt = existing.CreatedAt
	driver.UpdatedAt = time.Now()

	if err := s.driverRepo.Update(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// GetDriver retrieves a driver by ID.
func (s *DriverService) GetDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.driverRepo.GetByID(ctx, driverID)
}

// GetAllDrivers retrieves all drivers.
func (s *DriverService) GetAllDrivers(ctx context.Context) ([]*domain.Driver, error) {
	return s.driverRepo.GetAll(ctx)
}
