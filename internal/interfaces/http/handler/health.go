package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger checks liveness of a backing service
type Pinger interface {
	Ping() error
}

// HealthHandler exposes the health check endpoint
type HealthHandler struct {
	BaseHandler
	db Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /healthz
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		h.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is unreachable")
		return
	}
	h.Success(c, gin.H{"status": "ok"})
}
