package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// VehicleService handles vehicle registry operations. Vehicles are
// never hard-deleted; retirement is a status transition.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// CreateVehicleRequest contains the parameters for registering a vehicle.
type CreateVehicleRequest struct {
	Registration    string
	Make            string
	Model           string
	Year            int
	EngineNumber    string
	ChassisNumber   string
	Department      string
	Location        string
	FuelType        string
	SeatingCapacity int
	Equipment       []string
	Notes           string
}

// Create registers a new vehicle in active status.
func (s *VehicleService) Create(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	if strings.TrimSpace(req.Registration) == "" {
		return nil, ErrMissingRegistration
	}

	now := time.Now()
	vehicle := &domain.Vehicle{
		ID:              uuid.New().String(),
		Registration:    req.Registration,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		EngineNumber:    req.EngineNumber,
		ChassisNumber:   req.ChassisNumber,
		Status:          domain.VehicleStatusActive,
		Department:      req.Department,
		Location:        req.Location,
		FuelType:        req.FuelType,
		SeatingCapacity: req.SeatingCapacity,
		Equipment:       req.Equipment,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// Update applies an admin edit to an existing vehicle.
func (s *VehicleService) Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if vehicle.ID == "" {
		return nil, ErrInvalidVehicleID
	}
	if strings.TrimSpace(vehicle.Registration) == "" {
		return nil, ErrMissingRegistration
	}

	vehicle.UpdatedAt = time.Now()
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Retire transitions a vehicle to retired status.
func (s *VehicleService) Retire(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	vehicle.Status = domain.VehicleStatusRetired
	vehicle.UpdatedAt = time.Now()
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID.
func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

// GetAllVehicles retrieves all vehicles.
func (s *VehicleService) GetAllVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetAll(ctx)
}
