package domain

import "time"

// DriverStatus represents the current status of a driver.
type DriverStatus string

const (
	DriverStatusActive    DriverStatus = "active"
	DriverStatusInactive  DriverStatus = "inactive"
	DriverStatusSuspended DriverStatus = "suspended"
)

// Driver represents a fleet driver.
type Driver struct {
	ID            string
	Name          string
	EmployeeID    string
	LicenseNumber string
	LicenseClass  string
	LicenseExpiry time.Time
	Email         string
	Phone         string
	Department    string
	Status        DriverStatus
	Username      string
	PasswordHash  string // bcrypt hash; the plaintext is never stored
	JoinDate      time.Time
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
