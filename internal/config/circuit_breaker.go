package config

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

const (
	BreakerClinicAPI = "Clinic-API"
	BreakerRedis     = "Redis-Session"
	BreakerRabbitMQ  = "RabbitMQ-Audit"
)

// NewCircuitBreaker creates a circuit breaker with standard settings.
// The name parameter uniquely identifies the circuit breaker instance.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	var timeout time.Duration

	// Open-state duration per dependency, kept in line with the readiness probe timeouts
	switch name {
	case BreakerRedis:
		timeout = time.Second * 5
	case BreakerClinicAPI:
		timeout = time.Second * 10
	default:
		timeout = time.Second * 30
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Open circuit after 3 consecutive failures
			return counts.ConsecutiveFailures >= 3
		},
		// A caller that gave up says nothing about the dependency's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[CRITICAL] Circuit Breaker %s: %s -> %s", name, from, to)
		},
	})
}
