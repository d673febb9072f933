// Package api is the portal's service layer over the clinic backend REST API.
//
// Every exported call issues exactly one HTTP request. Transport failures,
// non-2xx answers and undecodable bodies are logged and turned into neutral
// values (empty slices, failed Results, ok=false); callers never see an error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/metrics"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/domain"
)

// nullSegment is what the backend expects for an unset path filter.
const nullSegment = "null"

const maxBodyBytes = 4 << 20

const (
	outcomeSuccess     = "success"
	outcomeHTTPError   = "http_error"
	outcomeTransport   = "transport_error"
	outcomeBreakerOpen = "breaker_open"
	outcomeCanceled    = "canceled"
)

// Client carries what every resource client shares: the base URL, the HTTP
// client, the Clinic-API circuit breaker and the upstream metrics.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
}

func NewClient(baseURL string, timeout time.Duration, cb *gobreaker.CircuitBreaker, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cb:      cb,
		metrics: m,
	}
}

// BreakerState reports the Clinic-API breaker state for readiness checks.
func (c *Client) BreakerState() gobreaker.State {
	return c.cb.State()
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

type upstreamError struct {
	status int
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.status)
}

// do sends one request through the breaker. Server errors count as breaker
// failures but the response is still returned alongside the error so callers
// can read the backend's message. A request abandoned by its caller is not a
// backend failure and leaves the breaker counts alone.
func (c *Client) do(ctx context.Context, resource, operation, method, endpoint string, payload any) (*response, error) {
	started := time.Now()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", resource, operation, err)
		}
		body = bytes.NewReader(b)
	}

	var abandoned error
	raw, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				abandoned = err
				return nil, nil
			}
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			if ctx.Err() != nil {
				abandoned = err
				return nil, nil
			}
			return nil, err
		}

		out := &response{status: resp.StatusCode, body: raw}
		if resp.StatusCode >= http.StatusInternalServerError {
			return out, &upstreamError{status: resp.StatusCode}
		}
		return out, nil
	})

	if err == nil && abandoned != nil {
		c.metrics.ObserveUpstream(resource, operation, outcomeCanceled, started)
		return nil, abandoned
	}

	resp, _ := raw.(*response)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.metrics.ObserveUpstream(resource, operation, outcomeBreakerOpen, started)
	case resp != nil && resp.ok():
		c.metrics.ObserveUpstream(resource, operation, outcomeSuccess, started)
	case resp != nil:
		c.metrics.ObserveUpstream(resource, operation, outcomeHTTPError, started)
	default:
		c.metrics.ObserveUpstream(resource, operation, outcomeTransport, started)
	}

	var ue *upstreamError
	if errors.As(err, &ue) {
		return resp, nil
	}
	return resp, err
}

// path joins escaped segments; empty segments become the literal "null".
func path(prefix string, segments ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(nullable(s)))
	}
	return b.String()
}

func nullable(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nullSegment
	}
	return s
}

type messageEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// toResult maps a mutating call's response to a Result. An empty 2xx body is a
// success with successMsg; an unreadable body is a failure with failureMsg.
func toResult(resp *response, successMsg, failureMsg string) domain.Result {
	var env messageEnvelope
	if len(bytes.TrimSpace(resp.body)) > 0 {
		if err := json.Unmarshal(resp.body, &env); err != nil {
			return domain.Result{Success: false, Message: failureMsg}
		}
	}

	msg := env.Message
	if msg == "" {
		msg = env.Error
	}
	if resp.ok() {
		if msg == "" {
			msg = successMsg
		}
		return domain.Result{Success: true, Message: msg}
	}
	if msg == "" {
		msg = failureMsg
	}
	return domain.Result{Success: false, Message: msg}
}
