package config

import (
	"os"
	"strings"
	"time"

	platformstrings "vetgate/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
}

// Backend configures the authoritative case store client.
type Backend struct {
	BaseURL string
	Timeout time.Duration
}

// Redis configures the embedded-payload case cache. An empty URL disables
// redis and falls back to the in-memory cache.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Postgres configures the audit outbox store. An empty DSN keeps audit
// events in memory.
type Postgres struct {
	DSN string
}

// Kafka configures the audit outbox relay. No brokers means no relay.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Config aggregates all service configuration.
type Config struct {
	Server   Server
	Backend  Backend
	Redis    Redis
	Postgres Postgres
	Kafka    Kafka
}

// CasePayloadTTL bounds how long an embedded case payload may serve a
// bootstrap before a remote fetch is required.
var CasePayloadTTL = 5 * time.Minute

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	addr := os.Getenv("VETGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("VETGATE_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development fallback; production must set VETGATE_JWT_SIGNING_KEY.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	backendTimeout := 15 * time.Second
	if v := os.Getenv("VETGATE_BACKEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			backendTimeout = d
		}
	}

	var brokers []string
	if v := os.Getenv("VETGATE_KAFKA_BROKERS"); v != "" {
		brokers = platformstrings.DedupeAndTrim(strings.Split(v, ","))
	}
	topic := os.Getenv("VETGATE_KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "vetgate.audit"
	}

	return Config{
		Server: Server{
			Addr:          addr,
			JWTSigningKey: jwtSigningKey,
		},
		Backend: Backend{
			BaseURL: os.Getenv("VETGATE_BACKEND_URL"),
			Timeout: backendTimeout,
		},
		Redis: Redis{
			URL:          os.Getenv("VETGATE_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Postgres: Postgres{
			DSN: os.Getenv("VETGATE_POSTGRES_DSN"),
		},
		Kafka: Kafka{
			Brokers: brokers,
			Topic:   topic,
		},
	}
}
