package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetops/internal/domain"
	"fleetops/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// CreateDriverRequest is the HTTP request body for registering a driver.
type CreateDriverRequest struct {
	Name          string `json:"name"`
	EmployeeID    string `json:"employee_id,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
	LicenseClass  string `json:"license_class,omitempty"`
	LicenseExpiry string `json:"license_expiry,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Department    string `json:"department,omitempty"`
	JoinDate      string `json:"join_date,omitempty"`
	Username      string `json:"username,omitempty"`
	Password      string `json:"password,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// UpdateDriverRequest is the HTTP request body for editing a driver.
type UpdateDriverRequest struct {
	Name          string `json:"name"`
	EmployeeID    string `json:"employee_id,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
	LicenseClass  string `json:"license_class,omitempty"`
	LicenseExpiry string `json:"license_expiry,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Department    string `json:"department,omitempty"`
	Status        string `json:"status,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// DriverResponse is the HTTP representation of a driver. The password
// hash never leaves the server.
type DriverResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EmployeeID    string `json:"employee_id,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
	LicenseClass  string `json:"license_class,omitempty"`
	LicenseExpiry string `json:"license_expiry,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Department    string `json:"department,omitempty"`
	Status        string `json:"status"`
	Username      string `json:"username,omitempty"`
	JoinDate      string `json:"join_date,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func driverResponse(driver *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:            driver.ID,
		Name:          driver.Name,
		EmployeeID:    driver.EmployeeID,
		LicenseNumber: driver.LicenseNumber,
		LicenseClass:  driver.LicenseClass,
		LicenseExpiry: formatTime(driver.LicenseExpiry),
		Phone:         driver.Phone,
		Email:         driver.Email,
		Department:    driver.Department,
		Status:        string(driver.Status),
		Username:      driver.Username,
		JoinDate:      formatTime(driver.JoinDate),
		Notes:         driver.Notes,
		CreatedAt:     formatTime(driver.CreatedAt),
		UpdatedAt:     formatTime(driver.UpdatedAt),
	}
}

// CreateDriver handles POST /v1/drivers
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	licenseExpiry, ok := parseDate(c, req.LicenseExpiry)
	if !ok {
		return
	}
	joinDate, ok := parseDate(c, req.JoinDate)
	if !ok {
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), service.CreateDriverRequest{
		Name:          req.Name,
		EmployeeID:    req.EmployeeID,
		LicenseNumber: req.LicenseNumber,
		LicenseClass:  req.LicenseClass,
		LicenseExpiry: licenseExpiry,
		Phone:         req.Phone,
		Email:         req.Email,
		Department:    req.Department,
		JoinDate:      joinDate,
		Username:      req.Username,
		Password:      req.Password,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, driverResponse(driver))
}

// ListDrivers handles GET /v1/drivers
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.driverService.GetAllDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]DriverResponse, 0, len(drivers))
	for _, driver := range drivers {
		responses = append(responses, driverResponse(driver))
	}
	respondJSON(c, http.StatusOK, responses)
}

// GetDriver handles GET /v1/drivers/:id
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.driverService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, driverResponse(driver))
}

// UpdateDriver handles PUT /v1/drivers/:id
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var req UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	licenseExpiry, ok := parseDate(c, req.LicenseExpiry)
	if !ok {
		return
	}

	existing, err := h.driverService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	existing.Name = req.Name
	existing.EmployeeID = req.EmployeeID
	existing.LicenseNumber = req.LicenseNumber
	existing.LicenseClass = req.LicenseClass
	existing.LicenseExpiry = licenseExpiry
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Department = req.Department
	if req.Status != "" {
		existing.Status = domain.DriverStatus(req.Status)
	}
	existing.Notes = req.Notes

	driver, err := h.driverService.Update(c.Request.Context(), existing)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, driverResponse(driver))
}

// parseDate parses an optional date from a request body, accepting
// either a bare date or a full RFC3339 timestamp.
func parseDate(c *gin.Context, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	return parseTime(c, value)
}
