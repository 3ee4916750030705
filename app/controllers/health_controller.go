package controllers

import (
	"net/http"
	"time"
)

// HealthController answers liveness probes
type HealthController struct {
	now func() time.Time
}

// NewHealthController creates a new HealthController
func NewHealthController() *HealthController {
	return &HealthController{now: time.Now}
}

// Health reports the service as up along with the current UTC time
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   hc.now().UTC().Format(time.RFC3339Nano),
	})
}
