package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/render"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
)

// HTMX response headers.
const (
	HeaderRefresh = "HX-Refresh"
	HeaderReswap  = "HX-Reswap"
	HeaderTrigger = "HX-Trigger"
)

// Client-side events raised through HX-Trigger.
const (
	EventShowMessage  = "showMessage"
	EventDateSelected = "dateSelected"
)

func htmlHeader(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

// writeAlert renders res as the alert fragment with status.
func writeAlert(w http.ResponseWriter, view *render.Renderer, status int, res domain.Result) {
	htmlHeader(w)
	w.WriteHeader(status)
	if err := view.Alert(w, res); err != nil {
		log.Printf("Failed to render alert: %v", err)
	}
}

// refreshOnSuccess asks HTMX for a full reload when res succeeded.
func refreshOnSuccess(w http.ResponseWriter, res domain.Result) {
	if res.Success {
		w.Header().Set(HeaderRefresh, "true")
	}
}

func trigger(w http.ResponseWriter, events map[string]string) {
	payload, err := json.Marshal(events)
	if err != nil {
		log.Printf("Failed to encode HX-Trigger: %v", err)
		return
	}
	w.Header().Set(HeaderTrigger, string(payload))
}

// page runs a full-page or fragment render into the response.
func page(w http.ResponseWriter, name string, fn func() error) {
	htmlHeader(w)
	if err := fn(); err != nil {
		log.Printf("Failed to render %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func today() string {
	return time.Now().Format(domain.DateLayout)
}
