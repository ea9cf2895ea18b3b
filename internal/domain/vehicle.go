package domain

import "time"

// VehicleStatus represents the current status of a vehicle.
type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusInactive    VehicleStatus = "inactive"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusRetired     VehicleStatus = "retired"
)

// Vehicle represents a fleet vehicle.
// Vehicles are never hard-deleted; retirement is a status transition.
type Vehicle struct {
	ID              string
	Registration    string
	Make            string
	Model           string
	Year            int
	EngineNumber    string
	ChassisNumber   string
	Status          VehicleStatus
	Department      string
	Location        string
	FuelType        string
	SeatingCapacity int
	Equipment       []string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
