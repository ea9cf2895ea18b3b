package domain

import "time"

// PaymentMethod represents how a fuel purchase was paid for.
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodBulkAccount PaymentMethod = "bulk-account"
)

// FuelRecord represents a single fuel purchase for a vehicle.
// Fuel records are immutable after creation.
type FuelRecord struct {
	ID            string
	VehicleID     string
	FuelType      string
	Quantity      float64 // liters
	UnitCost      float64
	TotalCost     float64 // always Quantity * UnitCost
	Odometer      float64
	Date          time.Time
	Station       string
	ReceiptNumber string
	PaymentMethod PaymentMethod
	AccountID     string // set when PaymentMethod is bulk-account
	Notes         string
	CreatedAt     time.Time
}

// AccountStatus represents the current status of a bulk fuel account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusClosed    AccountStatus = "closed"
)

// BulkFuelAccount represents a prepaid/credit account with a fuel
// supplier against which individual purchases can be charged.
type BulkFuelAccount struct {
	ID             string
	Supplier       string
	AccountNumber  string
	CurrentBalance float64
	InitialBalance float64
	CreditLimit    float64
	Status         AccountStatus
	ContactName    string
	ContactPhone   string
	ContactEmail   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
