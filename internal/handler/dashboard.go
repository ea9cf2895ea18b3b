package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetops/internal/service"
)

// DashboardHandler handles HTTP requests for the fleet overview.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardResponse is the HTTP representation of the fleet summary.
type DashboardResponse struct {
	TotalVehicles    int            `json:"total_vehicles"`
	ActiveVehicles   int            `json:"active_vehicles"`
	VehiclesByStatus map[string]int `json:"vehicles_by_status"`

	TotalDrivers  int `json:"total_drivers"`
	ActiveDrivers int `json:"active_drivers"`

	TotalTickets    int `json:"total_tickets"`
	PendingTickets  int `json:"pending_tickets"`
	ApprovedTickets int `json:"approved_tickets"`
	RejectedTickets int `json:"rejected_tickets"`

	FuelRecords        int     `json:"fuel_records"`
	FuelLiters         float64 `json:"fuel_liters"`
	FuelSpend          float64 `json:"fuel_spend"`
	BulkAccountFunds   float64 `json:"bulk_account_funds"`
	ActiveBulkAccounts int     `json:"active_bulk_accounts"`

	MaintenanceRecords int     `json:"maintenance_records"`
	OpenMaintenance    int     `json:"open_maintenance"`
	MaintenanceSpend   float64 `json:"maintenance_spend"`

	Partial bool `json:"partial"`
}

// GetSummary handles GET /v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	byStatus := make(map[string]int, len(summary.VehiclesByStatus))
	for status, count := range summary.VehiclesByStatus {
		byStatus[string(status)] = count
	}

	respondJSON(c, http.StatusOK, DashboardResponse{
		TotalVehicles:      summary.TotalVehicles,
		ActiveVehicles:     summary.ActiveVehicles,
		VehiclesByStatus:   byStatus,
		TotalDrivers:       summary.TotalDrivers,
		ActiveDrivers:      summary.ActiveDrivers,
		TotalTickets:       summary.TotalTickets,
		PendingTickets:     summary.PendingTickets,
		ApprovedTickets:    summary.ApprovedTickets,
		RejectedTickets:    summary.RejectedTickets,
		FuelRecords:        summary.FuelRecords,
		FuelLiters:         summary.FuelLiters,
		FuelSpend:          summary.FuelSpend,
		BulkAccountFunds:   summary.BulkAccountFunds,
		ActiveBulkAccounts: summary.ActiveBulkAccounts,
		MaintenanceRecords: summary.MaintenanceRecords,
		OpenMaintenance:    summary.OpenMaintenance,
		MaintenanceSpend:   summary.MaintenanceSpend,
		Partial:            summary.Partial,
	})
}
