package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifescope/backend/internal/application/adapter"
)

const probeTimeout = 2 * time.Second

// Probe reports whether one backing service is reachable.
type Probe struct {
	Name string
	// Required probes turn a failure into a 503; optional ones only mark the
	// service degraded.
	Required bool
	Check    func(ctx context.Context) error
}

// HealthController serves GET /health.
type HealthController struct {
	clock  adapter.Clock
	probes []Probe
}

// HealthResponse is the body of GET /health. Database mirrors the "database"
// probe for older monitors.
type HealthResponse struct {
	Status    string            `json:"status"`
	Database  string            `json:"database"`
	Checks    map[string]string `json:"checks"`
	Timestamp string            `json:"timestamp"`
}

// NewHealthController creates a health controller running probes in order.
func NewHealthController(clock adapter.Clock, probes ...Probe) *HealthController {
	return &HealthController{clock: clock, probes: probes}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  "disconnected",
		Checks:    make(map[string]string, len(h.probes)),
		Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
	}
	code := http.StatusOK

	for _, p := range h.probes {
		state := "connected"
		if err := p.Check(ctx); err != nil {
			state = "disconnected"
			if p.Required {
				response.Status = "unavailable"
				code = http.StatusServiceUnavailable
			} else if response.Status == "ok" {
				response.Status = "degraded"
			}
		}
		response.Checks[p.Name] = state
		if p.Name == "database" {
			response.Database = state
		}
	}

	c.JSON(code, response)
}
