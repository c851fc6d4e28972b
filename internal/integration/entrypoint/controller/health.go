// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController answers load-balancer probes.
type HealthController struct {
	dbPing func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. dbPing
// reports whether the database connection is alive.
func NewHealthController(dbPing func() bool) *HealthController {
	return &HealthController{
		dbPing: dbPing,
	}
}

// Check handles GET /health requests. The endpoint always answers 200; a
// broken database shows up in the body, not the status code.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbPing != nil && h.dbPing() {
		dbStatus = "connected"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
