package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetops/internal/domain"
	"fleetops/internal/service"
)

// FuelHandler handles HTTP requests for fuel records and bulk accounts.
type FuelHandler struct {
	fuelService *service.FuelService
}

// NewFuelHandler creates a new FuelHandler.
func NewFuelHandler(fuelService *service.FuelService) *FuelHandler {
	return &FuelHandler{fuelService: fuelService}
}

// CreateFuelRecordRequest is the HTTP request body for recording a fuel
// purchase.
type CreateFuelRecordRequest struct {
	VehicleID     string  `json:"vehicle_id"`
	FuelType      string  `json:"fuel_type,omitempty"`
	Quantity      float64 `json:"quantity"`
	UnitCost      float64 `json:"unit_cost"`
	Odometer      float64 `json:"odometer,omitempty"`
	Date          string  `json:"date,omitempty"`
	Station       string  `json:"station,omitempty"`
	ReceiptNumber string  `json:"receipt_number,omitempty"`
	PaymentMethod string  `json:"payment_method"`
	AccountID     string  `json:"account_id,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// FuelRecordResponse is the HTTP representation of a fuel record.
type FuelRecordResponse struct {
	ID            string  `json:"id"`
	VehicleID     string  `json:"vehicle_id"`
	FuelType      string  `json:"fuel_type,omitempty"`
	Quantity      float64 `json:"quantity"`
	UnitCost      float64 `json:"unit_cost"`
	TotalCost     float64 `json:"total_cost"`
	Odometer      float64 `json:"odometer,omitempty"`
	Date          string  `json:"date"`
	Station       string  `json:"station,omitempty"`
	ReceiptNumber string  `json:"receipt_number,omitempty"`
	PaymentMethod string  `json:"payment_method"`
	AccountID     string  `json:"account_id,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func fuelRecordResponse(record *domain.FuelRecord) FuelRecordResponse {
	return FuelRecordResponse{
		ID:            record.ID,
		VehicleID:     record.VehicleID,
		FuelType:      record.FuelType,
		Quantity:      record.Quantity,
		UnitCost:      record.UnitCost,
		TotalCost:     record.TotalCost,
		Odometer:      record.Odometer,
		Date:          formatTime(record.Date),
		Station:       record.Station,
		ReceiptNumber: record.ReceiptNumber,
		PaymentMethod: string(record.PaymentMethod),
		AccountID:     record.AccountID,
		Notes:         record.Notes,
		CreatedAt:     formatTime(record.CreatedAt),
	}
}

// CreateFuelRecord handles POST /v1/fuel
func (h *FuelHandler) CreateFuelRecord(c *gin.Context) {
	var req CreateFuelRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	date, ok := parseDate(c, req.Date)
	if !ok {
		return
	}

	record, err := h.fuelService.Create(c.Request.Context(), service.CreateFuelRecordRequest{
		VehicleID:     req.VehicleID,
		FuelType:      req.FuelType,
		Quantity:      req.Quantity,
		UnitCost:      req.UnitCost,
		Odometer:      req.Odometer,
		Date:          date,
		Station:       req.Station,
		ReceiptNumber: req.ReceiptNumber,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		AccountID:     req.AccountID,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, fuelRecordResponse(record))
}

// ListFuelRecords handles GET /v1/fuel
func (h *FuelHandler) ListFuelRecords(c *gin.Context) {
	records, err := h.fuelService.GetAllRecords(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]FuelRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, fuelRecordResponse(record))
	}
	respondJSON(c, http.StatusOK, responses)
}

// CreateAccountRequest is the HTTP request body for opening a bulk fuel
// account.
type CreateAccountRequest struct {
	Supplier       string  `json:"supplier"`
	AccountNumber  string  `json:"account_number,omitempty"`
	InitialBalance float64 `json:"initial_balance"`
	CreditLimit    float64 `json:"credit_limit,omitempty"`
	ContactName    string  `json:"contact_name,omitempty"`
	ContactPhone   string  `json:"contact_phone,omitempty"`
	ContactEmail   string  `json:"contact_email,omitempty"`
}

// AccountResponse is the HTTP representation of a bulk fuel account.
type AccountResponse struct {
	ID             string  `json:"id"`
	Supplier       string  `json:"supplier"`
	AccountNumber  string  `json:"account_number,omitempty"`
	CurrentBalance float64 `json:"current_balance"`
	InitialBalance float64 `json:"initial_balance"`
	CreditLimit    float64 `json:"credit_limit,omitempty"`
	Status         string  `json:"status"`
	ContactName    string  `json:"contact_name,omitempty"`
	ContactPhone   string  `json:"contact_phone,omitempty"`
	ContactEmail   string  `json:"contact_email,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func accountResponse(account *domain.BulkFuelAccount) AccountResponse {
	return AccountResponse{
		ID:             account.ID,
		Supplier:       account.Supplier,
		AccountNumber:  account.AccountNumber,
		CurrentBalance: account.CurrentBalance,
		InitialBalance: account.InitialBalance,
		CreditLimit:    account.CreditLimit,
		Status:         string(account.Status),
		ContactName:    account.ContactName,
		ContactPhone:   account.ContactPhone,
		ContactEmail:   account.ContactEmail,
		CreatedAt:      formatTime(account.CreatedAt),
		UpdatedAt:      formatTime(account.UpdatedAt),
	}
}

// CreateAccount handles POST /v1/accounts
func (h *FuelHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	account, err := h.fuelService.CreateAccount(c.Request.Context(), service.CreateAccountRequest{
		Supplier:       req.Supplier,
		AccountNumber:  req.AccountNumber,
		InitialBalance: req.InitialBalance,
		CreditLimit:    req.CreditLimit,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		ContactEmail:   req.ContactEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, accountResponse(account))
}

// ListAccounts handles GET /v1/accounts
func (h *FuelHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.fuelService.GetAllAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, accountResponse(account))
	}
	respondJSON(c, http.StatusOK, responses)
}
