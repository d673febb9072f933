package config

import (
	"log"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is the clinic backend the portal talks to when API_BASE_URL is unset.
const DefaultAPIBaseURL = "http://localhost:8080"

type Config struct {
	APIBaseURL     string
	APITimeout     time.Duration
	Port           string
	SessionSecret  []byte
	SessionTTL     time.Duration
	CookieSecure   bool
	RedisAddress   string
	RedisPassword  string
	RabbitMQURL    string
	AuditQueueName string
	LoginRateLimit float64
	LoginBurst     int
	TrustedProxies []netip.Prefix
	Version        string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, reading from environment variables")
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		panic("SESSION_SECRET environment variable is required")
	}

	return &Config{
		APIBaseURL:     strings.TrimRight(env("API_BASE_URL", DefaultAPIBaseURL), "/"),
		APITimeout:     duration("API_TIMEOUT", 10*time.Second),
		Port:           env("PORT", "8081"),
		SessionSecret:  []byte(secret),
		SessionTTL:     duration("SESSION_TTL", 24*time.Hour),
		CookieSecure:   os.Getenv("COOKIE_SECURE") == "true",
		RedisAddress:   os.Getenv("REDIS_ADDRESS"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		AuditQueueName: env("AUDIT_QUEUE_NAME", "portal-audit"),
		LoginRateLimit: float("LOGIN_RATE_LIMIT", 1),
		LoginBurst:     integer("LOGIN_RATE_BURST", 5),
		TrustedProxies: prefixes("TRUSTED_PROXIES"),
		Version:        env("APP_VERSION", "unknown"),
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func float(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// prefixes reads a comma list of CIDRs or bare addresses. Invalid entries are
// logged and skipped.
func prefixes(key string) []netip.Prefix {
	var out []netip.Prefix
	for _, raw := range strings.Split(os.Getenv(key), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if p, err := netip.ParsePrefix(raw); err == nil {
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			log.Printf("config: invalid %s entry %q, skipping", key, raw)
			continue
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out
}
