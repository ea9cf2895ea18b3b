package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetops/internal/domain"
	"fleetops/internal/middleware"
	"fleetops/internal/service"
)

// TicketHandler handles HTTP requests for work tickets.
type TicketHandler struct {
	ticketService *service.TicketService
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// SubmitTicketRequest is the HTTP request body for submitting a work ticket.
type SubmitTicketRequest struct {
	DriverID          string  `json:"driver_id"`
	VehicleID         string  `json:"vehicle_id"`
	Destination       string  `json:"destination"`
	Purpose           string  `json:"purpose"`
	FuelRequired      float64 `json:"fuel_required"`
	EstimatedDistance float64 `json:"estimated_distance,omitempty"`
	DepartureDate     string  `json:"departure_date,omitempty"`
	ReturnDate        string  `json:"return_date,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// RejectTicketRequest is the HTTP request body for rejecting a work ticket.
type RejectTicketRequest struct {
	Reason string `json:"reason"`
}

// TicketResponse is the HTTP representation of a work ticket.
type TicketResponse struct {
	ID                  string  `json:"id"`
	DriverID            string  `json:"driver_id,omitempty"`
	DriverName          string  `json:"driver_name"`
	DriverLicense       string  `json:"driver_license,omitempty"`
	DriverEmail         string  `json:"driver_email,omitempty"`
	VehicleID           string  `json:"vehicle_id"`
	VehicleRegistration string  `json:"vehicle_registration"`
	Destination         string  `json:"destination"`
	Purpose             string  `json:"purpose"`
	FuelRequired        float64 `json:"fuel_required"`
	EstimatedDistance   float64 `json:"estimated_distance"`
	DepartureDate       string  `json:"departure_date"`
	ReturnDate          string  `json:"return_date"`
	Notes               string  `json:"notes,omitempty"`
	Status              string  `json:"status"`
	ApprovedBy          string  `json:"approved_by,omitempty"`
	ApprovedAt          string  `json:"approved_at,omitempty"`
	RejectedBy          string  `json:"rejected_by,omitempty"`
	RejectedAt          string  `json:"rejected_at,omitempty"`
	RejectionReason     string  `json:"rejection_reason,omitempty"`
	CreatedAt           string  `json:"created_at"`
	LegacyMatch         bool    `json:"legacy_match,omitempty"`
}

func ticketResponse(ticket *domain.WorkTicket) TicketResponse {
	resp := TicketResponse{
		ID:                  ticket.ID,
		DriverID:            ticket.DriverID,
		DriverName:          ticket.DriverName,
		DriverLicense:       ticket.DriverLicense,
		DriverEmail:         ticket.DriverEmail,
		VehicleID:           ticket.VehicleID,
		VehicleRegistration: ticket.VehicleRegistration,
		Destination:         ticket.Destination,
		Purpose:             ticket.Purpose,
		FuelRequired:        ticket.FuelRequired,
		EstimatedDistance:   ticket.EstimatedDistance,
		DepartureDate:       formatTime(ticket.DepartureDate),
		ReturnDate:          formatTime(ticket.ReturnDate),
		Notes:               ticket.Notes,
		Status:              string(ticket.Status),
		ApprovedBy:          ticket.ApprovedBy,
		RejectedBy:          ticket.RejectedBy,
		RejectionReason:     ticket.RejectionReason,
		CreatedAt:           formatTime(ticket.CreatedAt),
	}
	if !ticket.ApprovedAt.IsZero() {
		resp.ApprovedAt = formatTime(ticket.ApprovedAt)
	}
	if !ticket.RejectedAt.IsZero() {
		resp.RejectedAt = formatTime(ticket.RejectedAt)
	}
	return resp
}

// SubmitTicket handles POST /v1/tickets
func (h *TicketHandler) SubmitTicket(c *gin.Context) {
	var req SubmitTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	departure, ok := parseTime(c, req.DepartureDate)
	if !ok {
		return
	}
	ret, ok := parseTime(c, req.ReturnDate)
	if !ok {
		return
	}

	ticket, err := h.ticketService.Submit(c.Request.Context(), service.SubmitTicketRequest{
		DriverID:          req.DriverID,
		VehicleID:         req.VehicleID,
		Destination:       req.Destination,
		Purpose:           req.Purpose,
		FuelRequired:      req.FuelRequired,
		EstimatedDistance: req.EstimatedDistance,
		DepartureDate:     departure,
		ReturnDate:        ret,
		Notes:             req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, ticketResponse(ticket))
}

// ListTickets handles GET /v1/tickets. Admin sees every ticket; a
// driver sees only tickets matched to them.
func (h *TicketHandler) ListTickets(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authorization required"})
		return
	}

	visible, err := h.ticketService.ListFor(c.Request.Context(), *identity)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]TicketResponse, 0, len(visible))
	for _, v := range visible {
		resp := ticketResponse(v.WorkTicket)
		resp.LegacyMatch = v.LegacyMatch
		responses = append(responses, resp)
	}

	respondJSON(c, http.StatusOK, responses)
}

// GetTicket handles GET /v1/tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticket, err := h.ticketService.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ticketResponse(ticket))
}

// ApproveTicket handles POST /v1/tickets/:id/approve
func (h *TicketHandler) ApproveTicket(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authorization required"})
		return
	}

	ticket, err := h.ticketService.Approve(c.Request.Context(), c.Param("id"), *identity)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ticketResponse(ticket))
}

// RejectTicket handles POST /v1/tickets/:id/reject
func (h *TicketHandler) RejectTicket(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authorization required"})
		return
	}

	var req RejectTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ticket, err := h.ticketService.Reject(c.Request.Context(), c.Param("id"), req.Reason, *identity)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ticketResponse(ticket))
}

// TicketDocumentResponse is the printable authorization document for an
// approved ticket. It is a projection of the ticket's snapshot fields;
// nothing here is stored separately.
type TicketDocumentResponse struct {
	TicketID            string  `json:"ticket_id"`
	IssuedAt            string  `json:"issued_at"`
	DriverName          string  `json:"driver_name"`
	DriverLicense       string  `json:"driver_license,omitempty"`
	VehicleRegistration string  `json:"vehicle_registration"`
	Destination         string  `json:"destination"`
	Purpose             string  `json:"purpose"`
	FuelAuthorized      float64 `json:"fuel_authorized"`
	DepartureDate       string  `json:"departure_date"`
	ReturnDate          string  `json:"return_date"`
	ApprovedBy          string  `json:"approved_by"`
	ApprovedAt          string  `json:"approved_at"`
}

// GetTicketDocument handles GET /v1/tickets/:id/document. Only approved
// tickets have an authorization document.
func (h *TicketHandler) GetTicketDocument(c *gin.Context) {
	ticket, err := h.ticketService.GetTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if ticket.Status != domain.TicketStatusApproved {
		respondError(c, service.ErrTicketNotApproved)
		return
	}

	respondJSON(c, http.StatusOK, TicketDocumentResponse{
		TicketID:            ticket.ID,
		IssuedAt:            formatTime(time.Now()),
		DriverName:          ticket.DriverName,
		DriverLicense:       ticket.DriverLicense,
		VehicleRegistration: ticket.VehicleRegistration,
		Destination:         ticket.Destination,
		Purpose:             ticket.Purpose,
		FuelAuthorized:      ticket.FuelRequired,
		DepartureDate:       formatTime(ticket.DepartureDate),
		ReturnDate:          formatTime(ticket.ReturnDate),
		ApprovedBy:          ticket.ApprovedBy,
		ApprovedAt:          formatTime(ticket.ApprovedAt),
	})
}

// formatTime renders a timestamp in RFC3339; zero values render empty.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// parseTime parses an optional RFC3339 timestamp from a request body,
// responding with a 400 on malformed input.
func parseTime(c *gin.Context, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid timestamp: " + value})
		return time.Time{}, false
	}
	return t, true
}
