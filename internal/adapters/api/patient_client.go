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

type PatientClient struct {
	c *Client
}

var _ ports.PatientAPI = (*PatientClient)(nil)

func NewPatientClient(c *Client) *PatientClient {
	return &PatientClient{c: c}
}

// Details loads the logged-in patient's profile for token.
func (p *PatientClient) Details(ctx context.Context, token string) (domain.Patient, bool) {
	resp, err := p.c.do(ctx, "patients", "details", http.MethodGet, path("/api/patient/get", token), nil)
	if err != nil {
		log.Printf("api: error fetching patient details: %v", err)
		return domain.Patient{}, false
	}
	if !resp.ok() {
		log.Printf("api: fetching patient details failed with status %d", resp.status)
		return domain.Patient{}, false
	}

	var env struct {
		Patient *domain.Patient `json:"patient"`
	}
	if err := json.Unmarshal(resp.body, &env); err != nil {
		log.Printf("api: error decoding patient details: %v", err)
		return domain.Patient{}, false
	}
	if env.Patient != nil {
		return *env.Patient, true
	}

	// Some deployments answer with the bare patient object.
	var patient domain.Patient
	if err := json.Unmarshal(bytes.TrimSpace(resp.body), &patient); err != nil || patient.ID == 0 {
		log.Printf("api: patient details response carried no patient")
		return domain.Patient{}, false
	}
	return patient, true
}

type PrescriptionClient struct {
	c *Client
}

var _ ports.PrescriptionAPI = (*PrescriptionClient)(nil)

func NewPrescriptionClient(c *Client) *PrescriptionClient {
	return &PrescriptionClient{c: c}
}

func (p *PrescriptionClient) Save(ctx context.Context, prescription domain.Prescription, token string) domain.Result {
	resp, err := p.c.do(ctx, "prescriptions", "save", http.MethodPost, path("/api/prescription/save", token), prescription)
	if err != nil {
		log.Printf("api: error saving prescription: %v", err)
		return domain.Failure("Failed to save prescription.")
	}
	return toResult(resp, "Prescription saved successfully.", "Failed to save prescription.")
}
