package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// MaintenanceService handles maintenance log operations.
type MaintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	vehicleRepo     repository.VehicleRepository
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(maintenanceRepo repository.MaintenanceRepository, vehicleRepo repository.VehicleRepository) *MaintenanceService {
	return &MaintenanceService{
		maintenanceRepo: maintenanceRepo,
		vehicleRepo:     vehicleRepo,
	}
}

// CreateMaintenanceRequest contains the parameters for logging a service event.
type CreateMaintenanceRequest struct {
	VehicleID     string
	Type          domain.MaintenanceType
	Provider      string
	Description   string
	PartsReplaced []string
	LaborCost     float64
	PartsCost     float64
	Odometer      float64
	ServiceDate   time.Time
	NextService   time.Time
	NextMileage   float64
	Status        domain.MaintenanceStatus
	Priority      domain.MaintenancePriority
	Warranty      string
	Notes         string
}

// Create logs a new maintenance record. The total cost is always derived
// from the labor and parts components; a client-supplied total is ignored.
func (s *MaintenanceService) Create(ctx context.Context, req CreateMaintenanceRequest) (*domain.MaintenanceRecord, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if strings.TrimSpace(req.Provider) == "" {
		return nil, ErrMissingSupplier
	}

	if _, err := s.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownVehicle
		}
		return nil, err
	}

	serviceDate := req.ServiceDate
	if serviceDate.IsZero() {
		serviceDate = time.Now()
	}
	status := req.Status
	if status == "" {
		status = domain.MaintenanceStatusCompleted
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.MaintenancePriorityMedium
	}

	now := time.Now()
	record := &domain.MaintenanceRecord{
		ID:            uuid.New().String(),
		VehicleID:     req.VehicleID,
		Type:          req.Type,
		Provider:      req.Provider,
		Description:   req.Description,
		PartsReplaced: req.PartsReplaced,
		LaborCost:     req.LaborCost,
		PartsCost:     req.PartsCost,
		TotalCost:     req.LaborCost + req.PartsCost,
		Odometer:      req.Odometer,
		ServiceDate:   serviceDate,
		NextService:   req.NextService,
		NextMileage:   req.NextMileage,
		Status:        status,
		Priority:      priority,
		Warranty:      req.Warranty,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.maintenanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Update applies an edit to an existing maintenance record, recomputing
// the total cost from the labor and parts components.
func (s *MaintenanceService) Update(ctx context.Context, record *domain.MaintenanceRecord) (*domain.MaintenanceRecord, error) {
	if record.ID == "" {
		return nil, ErrInvalidMaintenanceID
	}
	if record.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	existing, err := s.maintenanceRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = existing.CreatedAt
	record.TotalCost = record.LaborCost + record.PartsCost
	record.UpdatedAt = time.Now()

	if err := s.maintenanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecord retrieves a maintenance record by ID.
func (s *MaintenanceService) GetRecord(ctx context.Context, recordID string) (*domain.MaintenanceRecord, error) {
	if recordID == "" {
		return nil, ErrInvalidMaintenanceID
	}
	return s.maintenanceRepo.GetByID(ctx, recordID)
}

// GetAllRecords retrieves all maintenance records.
func (s *MaintenanceService) GetAllRecords(ctx context.Context) ([]*domain.MaintenanceRecord, error) {
	return s.maintenanceRepo.GetAll(ctx)
}
