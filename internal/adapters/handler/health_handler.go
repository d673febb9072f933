package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Pinger is anything the readiness probe can ping, here the session store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerReporter exposes the clinic API circuit breaker state.
type BreakerReporter interface {
	BreakerState() gobreaker.State
}

type HealthHandler struct {
	sessions  Pinger
	clinicAPI BreakerReporter
	startTime time.Time
	version   string
}

func NewHealthHandler(sessions Pinger, clinicAPI BreakerReporter, version string) *HealthHandler {
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		sessions:  sessions,
		clinicAPI: clinicAPI,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse follows Kubernetes/OpenShift health check conventions
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is a simple liveness check - just confirms the Go process is running
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// Ready checks if the portal can serve pages: sessions reachable, clinic API breaker not open.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := make(map[string]Check)
	status := "UP"
	httpStatus := http.StatusOK

	sessionCheck := h.checkSessions(r.Context())
	checks["sessions"] = sessionCheck
	if sessionCheck.Status != "UP" {
		status = "DOWN"
		httpStatus = http.StatusServiceUnavailable
	}

	apiCheck := h.checkClinicAPI()
	checks["clinic_api"] = apiCheck
	if apiCheck.Status != "UP" {
		status = "DOWN"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// Live is an alias for Health - simple liveness check
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

func (h *HealthHandler) checkSessions(parent context.Context) Check {
	if h.sessions == nil {
		return Check{
			Status:  "DOWN",
			Message: "Session store is not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 5*time.Second)
	defer cancel()

	if err := h.sessions.Ping(ctx); err != nil {
		return Check{
			Status:  "DOWN",
			Message: "Cannot reach session store",
		}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) checkClinicAPI() Check {
	if h.clinicAPI == nil {
		return Check{
			Status:  "DOWN",
			Message: "Clinic API client is not initialized",
		}
	}

	if state := h.clinicAPI.BreakerState(); state == gobreaker.StateOpen {
		return Check{
			Status:  "DOWN",
			Message: "Clinic API circuit breaker is " + state.String(),
		}
	}
	return Check{Status: "UP"}
}
