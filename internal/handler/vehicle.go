package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetops/internal/domain"
	"fleetops/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// VehicleRequest is the HTTP request body for creating or updating a vehicle.
type VehicleRequest struct {
	Registration    string   `json:"registration"`
	Make            string   `json:"make,omitempty"`
	Model           string   `json:"model,omitempty"`
	Year            int      `json:"year,omitempty"`
	EngineNumber    string   `json:"engine_number,omitempty"`
	ChassisNumber   string   `json:"chassis_number,omitempty"`
	Status          string   `json:"status,omitempty"`
	Department      string   `json:"department,omitempty"`
	Location        string   `json:"location,omitempty"`
	FuelType        string   `json:"fuel_type,omitempty"`
	SeatingCapacity int      `json:"seating_capacity,omitempty"`
	Equipment       []string `json:"equipment,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// VehicleResponse is the HTTP representation of a vehicle.
type VehicleResponse struct {
	ID              string   `json:"id"`
	Registration    string   `json:"registration"`
	Make            string   `json:"make,omitempty"`
	Model           string   `json:"model,omitempty"`
	Year            int      `json:"year,omitempty"`
	EngineNumber    string   `json:"engine_number,omitempty"`
	ChassisNumber   string   `json:"chassis_number,omitempty"`
	Status          string   `json:"status"`
	Department      string   `json:"department,omitempty"`
	Location        string   `json:"location,omitempty"`
	FuelType        string   `json:"fuel_type,omitempty"`
	SeatingCapacity int      `json:"seating_capacity,omitempty"`
	Equipment       []string `json:"equipment,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func vehicleResponse(vehicle *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              vehicle.ID,
		Registration:    vehicle.Registration,
		Make:            vehicle.Make,
		Model:           vehicle.Model,
		Year:            vehicle.Year,
		EngineNumber:    vehicle.EngineNumber,
		ChassisNumber:   vehicle.ChassisNumber,
		Status:          string(vehicle.Status),
		Department:      vehicle.Department,
		Location:        vehicle.Location,
		FuelType:        vehicle.FuelType,
		SeatingCapacity: vehicle.SeatingCapacity,
		Equipment:       vehicle.Equipment,
		Notes:           vehicle.Notes,
		CreatedAt:       formatTime(vehicle.CreatedAt),
		UpdatedAt:       formatTime(vehicle.UpdatedAt),
	}
}

// CreateVehicle handles POST /v1/vehicles
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), service.CreateVehicleRequest{
		Registration:    req.Registration,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		EngineNumber:    req.EngineNumber,
		ChassisNumber:   req.ChassisNumber,
		Department:      req.Department,
		Location:        req.Location,
		FuelType:        req.FuelType,
		SeatingCapacity: req.SeatingCapacity,
		Equipment:       req.Equipment,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, vehicleResponse(vehicle))
}

// ListVehicles handles GET /v1/vehicles
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.vehicleService.GetAllVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		responses = append(responses, vehicleResponse(vehicle))
	}
	respondJSON(c, http.StatusOK, responses)
}

// GetVehicle handles GET /v1/vehicles/:id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, vehicleResponse(vehicle))
}

// UpdateVehicle handles PUT /v1/vehicles/:id
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	existing, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	existing.Registration = req.Registration
	existing.Make = req.Make
	existing.Model = req.Model
	existing.Year = req.Year
	existing.EngineNumber = req.EngineNumber
	existing.ChassisNumber = req.ChassisNumber
	if req.Status != "" {
		existing.Status = domain.VehicleStatus(req.Status)
	}
	existing.Department = req.Department
	existing.Location = req.Location
	existing.FuelType = req.FuelType
	existing.SeatingCapacity = req.SeatingCapacity
	existing.Equipment = req.Equipment
	existing.Notes = req.Notes

	vehicle, err := h.vehicleService.Update(c.Request.Context(), existing)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, vehicleResponse(vehicle))
}

// RetireVehicle handles POST /v1/vehicles/:id/retire
func (h *VehicleHandler) RetireVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.Retire(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, vehicleResponse(vehicle))
}
