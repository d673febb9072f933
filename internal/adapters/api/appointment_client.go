package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

const appointmentAPI = "/api/appointments"

type AppointmentClient struct {
	c *Client
}

var _ ports.AppointmentAPI = (*AppointmentClient)(nil)

func NewAppointmentClient(c *Client) *AppointmentClient {
	return &AppointmentClient{c: c}
}

// List returns the appointments on date (YYYY-MM-DD) for the doctor behind
// token, optionally narrowed to patientName. Failures yield an empty list.
func (a *AppointmentClient) List(ctx context.Context, date, patientName, token string) []domain.Appointment {
	resp, err := a.c.do(ctx, "appointments", "list", http.MethodGet, path(appointmentAPI, date, patientName, token), nil)
	if err != nil {
		log.Printf("api: error fetching appointments: %v", err)
		return []domain.Appointment{}
	}
	if !resp.ok() {
		log.Printf("api: fetching appointments failed with status %d", resp.status)
		return []domain.Appointment{}
	}

	appointments, err := decodeAppointments(resp.body)
	if err != nil {
		log.Printf("api: error decoding appointments: %v", err)
		return []domain.Appointment{}
	}
	return appointments
}

func (a *AppointmentClient) Book(ctx context.Context, appointment domain.Appointment, token string) domain.Result {
	resp, err := a.c.do(ctx, "appointments", "book", http.MethodPost, path(appointmentAPI+"/book", token), appointment)
	if err != nil {
		log.Printf("api: error booking appointment: %v", err)
		return domain.Failure("Failed to book appointment.")
	}
	return toResult(resp, "Appointment booked successfully!", "Failed to book appointment.")
}

// decodeAppointments accepts a bare array or an {"appointments": [...]} envelope.
func decodeAppointments(body []byte) ([]domain.Appointment, error) {
	trimmed := bytes.TrimSpace(body)
	out := []domain.Appointment{}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var env struct {
		Appointments []domain.Appointment `json:"appointments"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Appointments != nil {
		out = env.Appointments
	}
	return out, nil
}
