package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/api"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/handler"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/messaging"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/metrics"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/middleware"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/render"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/adapters/session"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/config"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/ports"
	"github.com/AchilleasB/baby-kliniek/clinic-portal/internal/core/services"
)

func main() {
	log.Println("Starting clinic portal...")

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	portalMetrics := metrics.New(registry)

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, config.NewCircuitBreaker(config.BreakerClinicAPI), portalMetrics)
	log.Printf("portal: clinic API at %s", cfg.APIBaseURL)

	store := newSessionStore(ctx, cfg)

	var audit ports.AuditPublisher = messaging.LogPublisher{}
	if cfg.RabbitMQURL != "" {
		broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.AuditQueueName)
		if err != nil {
			log.Printf("portal: WARNING - failed to connect to RabbitMQ, audit events go to the log: %v", err)
		} else {
			defer broker.Close()
			audit = broker
			log.Println("portal: connected to RabbitMQ")
		}
	}

	doctorAPI := api.NewDoctorClient(client)
	appointmentAPI := api.NewAppointmentClient(client)
	patientAPI := api.NewPatientClient(client)

	authService := services.NewAuthService(api.NewAuthClient(client), store, audit, cfg.SessionTTL)
	directory := services.NewDoctorService(doctorAPI, audit)
	schedule := services.NewScheduleService(appointmentAPI, api.NewPrescriptionClient(client), audit)
	booking := services.NewBookingService(doctorAPI, patientAPI, appointmentAPI, audit)

	view, err := render.New(portalMetrics)
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}
	codec := session.NewCookieCodec(cfg.SessionSecret, cfg.CookieSecure)

	router := handler.NewRouter(handler.Routes{
		Auth:     handler.NewAuthHandler(authService, codec, view),
		Admin:    handler.NewAdminHandler(directory, view),
		Doctor:   handler.NewDoctorHandler(schedule, view),
		Patient:  handler.NewPatientHandler(directory, booking, view),
		Health:   handler.NewHealthHandler(store, client, cfg.Version),
		Sessions: middleware.NewSessionMiddleware(codec, authService),
		Limiter:  middleware.NewRateLimiter(ctx, cfg.LoginRateLimit, cfg.LoginBurst),
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),

		TrustedProxies: cfg.TrustedProxies,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("portal: received signal %v, initiating shutdown...", sig)
	case err := <-errChan:
		log.Printf("portal: server error, shutting down: %v", err)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("portal: error shutting down server: %v", err)
	}

	log.Println("portal: shutdown complete")
}

// newSessionStore uses Redis when it is configured and answers a ping.
// Otherwise sessions live in process memory and are lost on restart.
func newSessionStore(ctx context.Context, cfg *config.Config) ports.SessionStore {
	if cfg.RedisAddress == "" {
		log.Println("portal: WARNING - REDIS_ADDRESS not set, using in-memory sessions")
		return session.NewMemoryStore()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("portal: WARNING - failed to connect to redis, using in-memory sessions: %v", err)
		_ = redisClient.Close()
		return session.NewMemoryStore()
	}
	log.Println("Connected to Redis successfully")

	return session.NewRedisStore(redisClient, config.NewCircuitBreaker(config.BreakerRedis))
}
