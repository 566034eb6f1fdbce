package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"vetgate/internal/audit"
	"vetgate/internal/audit/relay"
	auditpg "vetgate/internal/audit/store/postgres"
	"vetgate/internal/backend"
	"vetgate/internal/platform/config"
	"vetgate/internal/platform/httpserver"
	"vetgate/internal/platform/logger"
	platformredis "vetgate/internal/platform/redis"
	"vetgate/internal/verification"
	"vetgate/internal/verification/casestore"
	"vetgate/internal/verification/handler"
	"vetgate/internal/verification/metrics"
	authmw "vetgate/pkg/platform/middleware/auth"
	"vetgate/pkg/platform/middleware/metadata"
	"vetgate/pkg/platform/middleware/requesttime"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives under internal/.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Case payload cache: redis when configured, in-process otherwise.
	var cache casestore.Store
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache = casestore.NewRedisStore(redisClient.Client, config.CasePayloadTTL)
		log.Info("case cache backed by redis")
	} else {
		cache = casestore.NewMemoryStore(config.CasePayloadTTL)
		log.Info("case cache in memory")
	}

	// Authoritative backend: remote HTTP service, or the built-in fixture
	// client for local development.
	var client backend.Client
	if cfg.Backend.BaseURL != "" {
		client = backend.NewHTTPClient(cfg.Backend)
		log.Info("backend client configured", "base_url", cfg.Backend.BaseURL)
	} else {
		client = backend.NewMockClient(150 * time.Millisecond)
		log.Warn("no backend configured, using fixture client")
	}

	// Audit trail: durable outbox when postgres is configured.
	var auditStore audit.Store
	var outbox *auditpg.Store
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		outbox, err = auditpg.New(db)
		if err != nil {
			log.Error("prepare audit outbox", "error", err)
			os.Exit(1)
		}
		auditStore = outbox
		log.Info("audit trail backed by postgres outbox")
	} else {
		auditStore = audit.NewInMemoryStore()
		log.Info("audit trail in memory")
	}
	auditor := audit.NewPublisher(auditStore, log)

	controller := verification.NewController(client, cache, auditor, log, metrics.New())
	service := verification.NewService(controller, log)

	router := chi.NewRouter()
	router.Use(requesttime.Middleware)
	router.Use(metadata.RequestID)
	router.Use(metadata.ClientMetadata)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth([]byte(cfg.Server.JWTSigningKey), log))
		handler.New(service, log).Register(r)
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting vetgate", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if outbox != nil && len(cfg.Kafka.Brokers) > 0 {
		auditRelay, err := relay.New(outbox, cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Error("start audit relay", "error", err)
			os.Exit(1)
		}
		group.Go(func() error {
			log.Info("audit relay running", "topic", cfg.Kafka.Topic)
			if err := auditRelay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
