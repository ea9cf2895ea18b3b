package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetops/internal/auth"
	"fleetops/internal/datastore"
	"fleetops/internal/repository"
	"fleetops/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidTicketID),
		errors.Is(err, service.ErrInvalidMaintenanceID),
		errors.Is(err, service.ErrInvalidAccountID),
		errors.Is(err, service.ErrUnknownDriver),
		errors.Is(err, service.ErrUnknownVehicle),
		errors.Is(err, service.ErrUnknownAccount),
		errors.Is(err, service.ErrMissingDestination),
		errors.Is(err, service.ErrMissingPurpose),
		errors.Is(err, service.ErrInvalidFuelQuantity),
		errors.Is(err, service.ErrInvalidUnitCost),
		errors.Is(err, service.ErrMissingRejectReason),
		errors.Is(err, service.ErrMissingRegistration),
		errors.Is(err, service.ErrMissingName),
		errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrMissingSupplier):
		return http.StatusBadRequest

	// Invalid state transitions and concurrency losses - Conflict
	case errors.Is(err, service.ErrTicketNotPending),
		errors.Is(err, service.ErrTicketNotApproved),
		errors.Is(err, service.ErrAccountNotActive),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrBalanceChanged),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrSessionNotFound):
		return http.StatusUnauthorized

	// Backend unavailable
	case errors.Is(err, datastore.ErrBackendUnavailable):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
