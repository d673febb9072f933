package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

const doctorAPI = "/api/doctors"

type DoctorClient struct {
	c *Client
}

var _ ports.DoctorAPI = (*DoctorClient)(nil)

func NewDoctorClient(c *Client) *DoctorClient {
	return &DoctorClient{c: c}
}

type doctorsEnvelope struct {
	Doctors []domain.Doctor `json:"doctors"`
}

// List fetches every doctor. Any failure yields an empty list.
func (d *DoctorClient) List(ctx context.Context) []domain.Doctor {
	resp, err := d.c.do(ctx, "doctors", "list", http.MethodGet, doctorAPI, nil)
	if err != nil {
		log.Printf("api: error fetching doctors: %v", err)
		return []domain.Doctor{}
	}
	return decodeDoctors(resp, "fetching doctors")
}

// Filter searches doctors by name, time ("AM"/"PM") and specialty. Empty
// filters are sent as "null", which the backend reads as "match all".
func (d *DoctorClient) Filter(ctx context.Context, name, time, specialty string) []domain.Doctor {
	resp, err := d.c.do(ctx, "doctors", "filter", http.MethodGet, path(doctorAPI+"/search", name, time, specialty), nil)
	if err != nil {
		log.Printf("api: error filtering doctors: %v", err)
		return []domain.Doctor{}
	}
	return decodeDoctors(resp, "filtering doctors")
}

func (d *DoctorClient) Save(ctx context.Context, doctor domain.Doctor, token string) domain.Result {
	resp, err := d.c.do(ctx, "doctors", "save", http.MethodPost, path(doctorAPI+"/add", token), doctor)
	if err != nil {
		log.Printf("api: error saving doctor: %v", err)
		return domain.Failure("Failed to save doctor.")
	}
	return toResult(resp, "Doctor added successfully.", "Failed to save doctor.")
}

func (d *DoctorClient) Delete(ctx context.Context, id int64, token string) domain.Result {
	endpoint := path(doctorAPI, strconv.FormatInt(id, 10), token)
	resp, err := d.c.do(ctx, "doctors", "delete", http.MethodDelete, endpoint, nil)
	if err != nil {
		log.Printf("api: error deleting doctor %d: %v", id, err)
		return domain.Failure("Failed to delete doctor.")
	}
	return toResult(resp, "Doctor deleted successfully.", "Failed to delete doctor.")
}

func decodeDoctors(resp *response, action string) []domain.Doctor {
	if !resp.ok() {
		log.Printf("api: %s failed with status %d", action, resp.status)
		return []domain.Doctor{}
	}
	var env doctorsEnvelope
	if err := json.Unmarshal(resp.body, &env); err != nil {
		log.Printf("api: error %s: %v", action, err)
		return []domain.Doctor{}
	}
	if env.Doctors == nil {
		return []domain.Doctor{}
	}
	return env.Doctors
}
