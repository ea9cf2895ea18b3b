package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetops/internal/domain"
	"fleetops/internal/service"
)

// MaintenanceHandler handles HTTP requests for maintenance records.
type MaintenanceHandler struct {
	maintenanceService *service.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// MaintenanceRequest is the HTTP request body for logging or editing a
// maintenance record. Total cost is derived server-side from labor and
// parts; any client-supplied total is ignored.
type MaintenanceRequest struct {
	VehicleID     string   `json:"vehicle_id"`
	Type          string   `json:"type,omitempty"`
	Provider      string   `json:"provider"`
	Description   string   `json:"description,omitempty"`
	PartsReplaced []string `json:"parts_replaced,omitempty"`
	LaborCost     float64  `json:"labor_cost"`
	PartsCost     float64  `json:"parts_cost"`
	Odometer      float64  `json:"odometer,omitempty"`
	ServiceDate   string   `json:"service_date,omitempty"`
	NextService   string   `json:"next_service,omitempty"`
	NextMileage   float64  `json:"next_mileage,omitempty"`
	Status        string   `json:"status,omitempty"`
	Priority      string   `json:"priority,omitempty"`
	Warranty      string   `json:"warranty,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// MaintenanceResponse is the HTTP representation of a maintenance record.
type MaintenanceResponse struct {
	ID            string   `json:"id"`
	VehicleID     string   `json:"vehicle_id"`
	Type          string   `json:"type,omitempty"`
	Provider      string   `json:"provider"`
	Description   string   `json:"description,omitempty"`
	PartsReplaced []string `json:"parts_replaced,omitempty"`
	LaborCost     float64  `json:"labor_cost"`
	PartsCost     float64  `json:"parts_cost"`
	TotalCost     float64  `json:"total_cost"`
	Odometer      float64  `json:"odometer,omitempty"`
	ServiceDate   string   `json:"service_date"`
	NextService   string   `json:"next_service,omitempty"`
	NextMileage   float64  `json:"next_mileage,omitempty"`
	Status        string   `json:"status"`
	Priority      string   `json:"priority"`
	Warranty      string   `json:"warranty,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

func maintenanceResponse(record *domain.MaintenanceRecord) MaintenanceResponse {
	return MaintenanceResponse{
		ID:            record.ID,
		VehicleID:     record.VehicleID,
		Type:          string(record.Type),
		Provider:      record.Provider,
		Description:   record.Description,
		PartsReplaced: record.PartsReplaced,
		LaborCost:     record.LaborCost,
		PartsCost:     record.PartsCost,
		TotalCost:     record.TotalCost,
		Odometer:      record.Odometer,
		ServiceDate:   formatTime(record.ServiceDate),
		NextService:   formatTime(record.NextService),
		NextMileage:   record.NextMileage,
		Status:        string(record.Status),
		Priority:      string(record.Priority),
		Warranty:      record.Warranty,
		Notes:         record.Notes,
		CreatedAt:     formatTime(record.CreatedAt),
		UpdatedAt:     formatTime(record.UpdatedAt),
	}
}

// CreateMaintenance handles POST /v1/maintenance
func (h *MaintenanceHandler) CreateMaintenance(c *gin.Context) {
	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	serviceDate, ok := parseDate(c, req.ServiceDate)
	if !ok {
		return
	}
	nextService, ok := parseDate(c, req.NextService)
	if !ok {
		return
	}

	record, err := h.maintenanceService.Create(c.Request.Context(), service.CreateMaintenanceRequest{
		VehicleID:     req.VehicleID,
		Type:          domain.MaintenanceType(req.Type),
		Provider:      req.Provider,
		Description:   req.Description,
		PartsReplaced: req.PartsReplaced,
		LaborCost:     req.LaborCost,
		PartsCost:     req.PartsCost,
		Odometer:      req.Odometer,
		ServiceDate:   serviceDate,
		NextService:   nextService,
		NextMileage:   req.NextMileage,
		Status:        domain.MaintenanceStatus(req.Status),
		Priority:      domain.MaintenancePriority(req.Priority),
		Warranty:      req.Warranty,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, maintenanceResponse(record))
}

// ListMaintenance handles GET /v1/maintenance
func (h *MaintenanceHandler) ListMaintenance(c *gin.Context) {
	records, err := h.maintenanceService.GetAllRecords(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]MaintenanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, maintenanceResponse(record))
	}
	respondJSON(c, http.StatusOK, responses)
}

// UpdateMaintenance handles PUT /v1/maintenance/:id
func (h *MaintenanceHandler) UpdateMaintenance(c *gin.Context) {
	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	serviceDate, ok := parseDate(c, req.ServiceDate)
	if !ok {
		return
	}
	nextService, ok := parseDate(c, req.NextService)
	if !ok {
		return
	}

	record, err := h.maintenanceService.Update(c.Request.Context(), &domain.MaintenanceRecord{
		ID:            c.Param("id"),
		VehicleID:     req.VehicleID,
		Type:          domain.MaintenanceType(req.Type),
		Provider:      req.Provider,
		Description:   req.Description,
		PartsReplaced: req.PartsReplaced,
		LaborCost:     req.LaborCost,
		PartsCost:     req.PartsCost,
		Odometer:      req.Odometer,
		ServiceDate:   serviceDate,
		NextService:   nextService,
		NextMileage:   req.NextMileage,
		Status:        domain.MaintenanceStatus(req.Status),
		Priority:      domain.MaintenancePriority(req.Priority),
		Warranty:      req.Warranty,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, maintenanceResponse(record))
}
