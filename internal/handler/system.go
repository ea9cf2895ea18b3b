package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetops/internal/datastore"
)

// SystemHandler reports backend mode. The frontend's demo banner keys
// off this endpoint.
type SystemHandler struct {
	store *datastore.Store
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(store *datastore.Store) *SystemHandler {
	return &SystemHandler{store: store}
}

// SystemStatusResponse is the HTTP representation of backend mode.
type SystemStatusResponse struct {
	Mode           string `json:"mode"`
	UsingSampleData bool   `json:"using_sample_data"`
}

// GetStatus handles GET /v1/system/status
func (h *SystemHandler) GetStatus(c *gin.Context) {
	mode := "remote"
	usingSample := h.store.UsingSampleData()
	if usingSample {
		mode = "sample"
	}
	respondJSON(c, http.StatusOK, SystemStatusResponse{
		Mode:            mode,
		UsingSampleData: usingSample,
	})
}
