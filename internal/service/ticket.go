package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fleetops/internal/domain"
	"fleetops/internal/repository"
)

// TicketService owns the work-ticket lifecycle:
// pending -> approved | rejected, both terminal. The "completed" status
// exists in the data model but no operation transitions into it.
//
// There is exactly one copy of this logic; admin and driver views are
// read projections over it, never separate implementations.
type TicketService struct {
	ticketRepo  repository.TicketRepository
	driverRepo  repository.DriverRepository
	vehicleRepo repository.VehicleRepository
	log         *logrus.Entry
}

// NewTicketService creates a new TicketService.
func NewTicketService(
	ticketRepo repository.TicketRepository,
	driverRepo repository.DriverRepository,
	vehicleRepo repository.VehicleRepository,
	log *logrus.Logger,
) *TicketService {
	return &TicketService{
		ticketRepo:  ticketRepo,
		driverRepo:  driverRepo,
		vehicleRepo: vehicleRepo,
		log:         log.WithField("component", "tickets"),
	}
}

// SubmitTicketRequest contains the parameters for submitting a work ticket.
type SubmitTicketRequest struct {
	DriverID          string
	VehicleID         string
	Destination       string
	Purpose           string
	FuelRequired      float64
	EstimatedDistance float64
	DepartureDate     time.Time
	ReturnDate        time.Time
	Notes             string
}

// Submit creates a work ticket in the pending state. Driver and vehicle
// must resolve to known records; their identifying fields are copied
// onto the ticket at this instant and never updated afterwards.
func (s *TicketService) Submit(ctx context.Context, req SubmitTicketRequest) (*domain.WorkTicket, error) {
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if strings.TrimSpace(req.Destination) == "" {
		return nil, ErrMissingDestination
	}
	if strings.TrimSpace(req.Purpose) == "" {
		return nil, ErrMissingPurpose
	}
	if req.FuelRequired <= 0 {
		return nil, ErrInvalidFuelQuantity
	}

	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownDriver
		}
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownVehicle
		}
		return nil, err
	}

	now := time.Now()
	departure := req.DepartureDate
	if departure.IsZero() {
		departure = now
	}
	returnDate := req.ReturnDate
	if returnDate.IsZero() {
		returnDate = now
	}

	ticket := &domain.WorkTicket{
		ID:                  uuid.New().String(),
		DriverID:            driver.ID,
		DriverName:          driver.Name,
		DriverLicense:       driver.LicenseNumber,
		DriverEmail:         driver.Email,
		VehicleID:           vehicle.ID,
		VehicleRegistration: vehicle.Registration,
		Destination:         req.Destination,
		Purpose:             req.Purpose,
		FuelRequired:        req.FuelRequired,
		EstimatedDistance:   req.EstimatedDistance,
		DepartureDate:       departure,
		ReturnDate:          returnDate,
		Notes:               req.Notes,
		Status:              domain.TicketStatusPending,
		CreatedAt:           now,
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

// Approve transitions a pending ticket to approved, recording who
// approved it and when. Approving a non-pending ticket is an error.
func (s *TicketService) Approve(ctx context.Context, ticketID string, approver domain.Identity) (*domain.WorkTicket, error) {
	if ticketID == "" {
		return nil, ErrInvalidTicketID
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != domain.TicketStatusPending {
		return nil, ErrTicketNotPending
	}

	now := time.Now()
	if err := s.ticketRepo.Approve(ctx, ticketID, approverName(approver), now); err != nil {
		// A concurrent transition can win between the read and the
		// conditional write; that loss is the same state error.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrTicketNotPending
		}
		return nil, err
	}

	return s.ticketRepo.GetByID(ctx, ticketID)
}

// Reject transitions a pending ticket to rejected. A non-empty reason
// is mandatory; without one the ticket stays pending.
func (s *TicketService) Reject(ctx context.Context, ticketID, reason string, rejecter domain.Identity) (*domain.WorkTicket, error) {
	if ticketID == "" {
		return nil, ErrInvalidTicketID
	}
	if strings.TrimSpace(reason) == "" {
		return nil, ErrMissingRejectReason
	}

	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != domain.TicketStatusPending {
		return nil, ErrTicketNotPending
	}

	now := time.Now()
	if err := s.ticketRepo.Reject(ctx, ticketID, approverName(rejecter), reason, now); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrTicketNotPending
		}
		return nil, err
	}

	return s.ticketRepo.GetByID(ctx, ticketID)
}

// GetTicket retrieves a ticket by ID.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.WorkTicket, error) {
	if ticketID == "" {
		return nil, ErrInvalidTicketID
	}
	return s.ticketRepo.GetByID(ctx, ticketID)
}

// VisibleTicket is a ticket as seen through the role-scoped filter.
// LegacyMatch marks tickets that matched the viewer only through the
// fuzzy email-prefix rule; those are data-quality issues, not verified
// ownership.
type VisibleTicket struct {
	*domain.WorkTicket
	LegacyMatch bool
}

// ListFor returns the tickets visible to the given identity. Admins see
// everything; drivers see only their own tickets, resolved in priority
// order: driver id, snapshot name, snapshot email, then a
// case-insensitive containment of the email local-part in the snapshot
// name. The last rule only tolerates historical records created before
// driver-id linkage was enforced.
func (s *TicketService) ListFor(ctx context.Context, viewer domain.Identity) ([]VisibleTicket, error) {
	tickets, err := s.ticketRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if viewer.Role == domain.RoleAdmin {
		result := make([]VisibleTicket, 0, len(tickets))
		for _, t := range tickets {
			result = append(result, VisibleTicket{WorkTicket: t})
		}
		return result, nil
	}

	var result []VisibleTicket
	for _, t := range tickets {
		matched, legacy := matchesDriver(t, viewer)
		if !matched {
			continue
		}
		if legacy {
			s.log.WithFields(logrus.Fields{
				"ticket_id": t.ID,
				"driver_id": viewer.DriverID,
			}).Warn("ticket resolved via legacy email-prefix rule; driver linkage missing")
		}
		result = append(result, VisibleTicket{WorkTicket: t, LegacyMatch: legacy})
	}
	return result, nil
}

// matchesDriver applies the four ownership rules in priority order,
// first match wins. The second return value reports a rule-4 match.
func matchesDriver(ticket *domain.WorkTicket, viewer domain.Identity) (matched, legacy bool) {
	if viewer.DriverID != "" && ticket.DriverID == viewer.DriverID {
		return true, false
	}
	if viewer.Name != "" && ticket.DriverName == viewer.Name {
		return true, false
	}
	if viewer.Email != "" && ticket.DriverEmail == viewer.Email {
		return true, false
	}

	local := emailLocalPart(viewer.Email)
	if local != "" && strings.Contains(strings.ToLower(ticket.DriverName), strings.ToLower(local)) {
		return true, true
	}

	return false, false
}

func emailLocalPart(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return ""
	}
	return email[:at]
}

func approverName(id domain.Identity) string {
	if id.Name != "" {
		return id.Name
	}
	return id.Email
}
