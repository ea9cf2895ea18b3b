package domain

import "time"

// MaintenanceType represents the kind of maintenance performed.
type MaintenanceType string

const (
	MaintenanceTypeRoutine    MaintenanceType = "routine"
	MaintenanceTypeRepair     MaintenanceType = "repair"
	MaintenanceTypeEmergency  MaintenanceType = "emergency"
	MaintenanceTypeInspection MaintenanceType = "inspection"
)

// MaintenanceStatus represents the current status of a maintenance record.
type MaintenanceStatus string

const (
	MaintenanceStatusScheduled  MaintenanceStatus = "scheduled"
	MaintenanceStatusInProgress MaintenanceStatus = "in-progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
)

// MaintenancePriority represents the urgency of a maintenance record.
type MaintenancePriority string

const (
	MaintenancePriorityLow      MaintenancePriority = "low"
	MaintenancePriorityMedium   MaintenancePriority = "medium"
	MaintenancePriorityHigh     MaintenancePriority = "high"
	MaintenancePriorityCritical MaintenancePriority = "critical"
)

// MaintenanceRecord represents a service event for a vehicle.
// TotalCost is always LaborCost + PartsCost and is recomputed whenever
// either component changes.
type MaintenanceRecord struct {
	ID            string
	VehicleID     string
	Type          MaintenanceType
	Provider      string
	Description   string
	PartsReplaced []string
	LaborCost     float64
	PartsCost     float64
	TotalCost     float64
	Odometer      float64
	ServiceDate   time.Time
	NextService   time.Time
	NextMileage   float64
	Status        MaintenanceStatus
	Priority      MaintenancePriority
	Warranty      string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
