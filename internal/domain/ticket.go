package domain

import "time"

// TicketStatus represents the current status of a work ticket.
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusApproved TicketStatus = "approved"
	TicketStatusRejected TicketStatus = "rejected"

	// TicketStatusCompleted exists in the data model for future use.
	// No transition currently moves a ticket into it.
	TicketStatusCompleted TicketStatus = "completed"
)

// WorkTicket represents a trip/fuel authorization request.
//
// The Driver* and Vehicle* snapshot fields are copied from the
// referenced records at creation time and are intentionally not kept
// in sync with later edits: an authorization document must reflect
// what was true when it was authorized.
type WorkTicket struct {
	ID       string
	DriverID string

	// Driver snapshot, fixed at creation.
	DriverName    string
	DriverLicense string
	DriverEmail   string

	VehicleID string

	// Vehicle snapshot, fixed at creation.
	VehicleRegistration string

	Destination       string
	Purpose           string
	FuelRequired      float64 // liters
	EstimatedDistance float64 // kilometers
	DepartureDate     time.Time
	ReturnDate        time.Time
	Notes             string

	Status     TicketStatus
	ApprovedBy string
	ApprovedAt time.Time
	RejectedBy string
	RejectedAt time.Time
	RejectionReason string

	CreatedAt time.Time
}
