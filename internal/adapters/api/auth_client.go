package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
)

const (
	adminLoginAPI   = "/api/admin/login"
	doctorLoginAPI  = "/api/doctors/login"
	patientLoginAPI = "/api/patient/login"
)

type AuthClient struct {
	c *Client
}

var _ ports.AuthAPI = (*AuthClient)(nil)

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type adminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (a *AuthClient) AdminLogin(ctx context.Context, username, password string) (string, bool) {
	return a.login(ctx, "admin_login", adminLoginAPI, adminCredentials{Username: username, Password: password})
}

func (a *AuthClient) DoctorLogin(ctx context.Context, email, password string) (string, bool) {
	return a.login(ctx, "doctor_login", doctorLoginAPI, userCredentials{Email: email, Password: password})
}

func (a *AuthClient) PatientLogin(ctx context.Context, email, password string) (string, bool) {
	return a.login(ctx, "patient_login", patientLoginAPI, userCredentials{Email: email, Password: password})
}

func (a *AuthClient) login(ctx context.Context, operation, endpoint string, credentials any) (string, bool) {
	resp, err := a.c.do(ctx, "auth", operation, http.MethodPost, endpoint, credentials)
	if err != nil {
		log.Printf("api: %s error: %v", operation, err)
		return "", false
	}
	if !resp.ok() {
		log.Printf("api: %s rejected with status %d", operation, resp.status)
		return "", false
	}

	var tr tokenResponse
	if err := json.Unmarshal(resp.body, &tr); err != nil {
		log.Printf("api: %s returned an unreadable body: %v", operation, err)
		return "", false
	}
	if tr.Token == "" {
		log.Printf("api: %s returned no token", operation)
		return "", false
	}
	return tr.Token, true
}
