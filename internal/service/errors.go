package service

import "errors"

// Validation errors: the request is malformed or references unknown
// records. These block the operation before any backend write.
var (
	// ErrInvalidDriverID is returned when a driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidVehicleID is returned when a vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidTicketID is returned when a ticket ID is empty.
	ErrInvalidTicketID = errors.New("invalid ticket id")

	// ErrInvalidMaintenanceID is returned when a maintenance record ID
	// is empty.
	ErrInvalidMaintenanceID = errors.New("invalid maintenance record id")

	// ErrUnknownDriver is returned when the driver ID does not resolve
	// to a known driver record.
	ErrUnknownDriver = errors.New("driver not found for given id")

	// ErrUnknownVehicle is returned when the vehicle ID does not
	// resolve to a known vehicle record.
	ErrUnknownVehicle = errors.New("vehicle not found for given id")

	// ErrMissingDestination is returned when a ticket has no destination.
	ErrMissingDestination = errors.New("destination is required")

	// ErrMissingPurpose is returned when a ticket has no purpose.
	ErrMissingPurpose = errors.New("purpose is required")

	// ErrInvalidFuelQuantity is returned when the requested or purchased
	// fuel quantity is not positive.
	ErrInvalidFuelQuantity = errors.New("fuel quantity must be positive")

	// ErrInvalidUnitCost is returned when a fuel unit cost is negative.
	ErrInvalidUnitCost = errors.New("unit cost must not be negative")

	// ErrMissingRejectReason is returned when rejecting a ticket without
	// a non-empty reason.
	ErrMissingRejectReason = errors.New("rejection reason is required")

	// ErrMissingRegistration is returned when a vehicle has no
	// registration code.
	ErrMissingRegistration = errors.New("registration is required")

	// ErrMissingName is returned when a driver has no name.
	ErrMissingName = errors.New("name is required")

	// ErrMissingCredentials is returned when a driver is created without
	// username or password.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrInvalidAccountID is returned when a bulk-account payment names
	// no account.
	ErrInvalidAccountID = errors.New("invalid bulk account id")

	// ErrUnknownAccount is returned when the account ID does not resolve
	// to a known bulk fuel account.
	ErrUnknownAccount = errors.New("bulk account not found for given id")

	// ErrMissingSupplier is returned when a bulk account has no supplier.
	ErrMissingSupplier = errors.New("supplier is required")
)

// Invalid state transition errors: the request is well formed but the
// record is not in a state that permits it. Never swallowed, unlike
// backend-unavailability errors.
var (
	// ErrTicketNotPending is returned when approving or rejecting a
	// ticket that has already been actioned.
	ErrTicketNotPending = errors.New("ticket is not pending")

	// ErrTicketNotApproved is returned when requesting an authorization
	// document for a ticket that was never approved.
	ErrTicketNotApproved = errors.New("ticket is not approved")

	// ErrAccountNotActive is returned when charging a suspended or
	// closed bulk account.
	ErrAccountNotActive = errors.New("bulk account is not active")

	// ErrInsufficientBalance is returned when a bulk-account charge
	// exceeds the account's current balance.
	ErrInsufficientBalance = errors.New("insufficient bulk account balance")

	// ErrBalanceChanged is returned when the account balance moved
	// between read and debit and retries were exhausted. The operation
	// is safe to retry.
	ErrBalanceChanged = errors.New("account balance changed, please retry")
)
