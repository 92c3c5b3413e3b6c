package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"attesta/internal/audit"
	"attesta/internal/document/cache"
	dochandler "attesta/internal/document/handler"
	docmetrics "attesta/internal/document/metrics"
	"attesta/internal/document/render"
	docservice "attesta/internal/document/service"
	docstore "attesta/internal/document/store"
	httpapi "attesta/internal/http"
	"attesta/internal/platform/config"
	"attesta/internal/platform/httpserver"
	"attesta/internal/platform/logger"
	pgplatform "attesta/internal/platform/postgres"
	redisplatform "attesta/internal/platform/redis"
	"attesta/internal/proofofaddress"
	poahandler "attesta/internal/proofofaddress/handler"
	"attesta/internal/resident"
	"attesta/pkg/platform/middleware/auth"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var documents docstore.Store
	var directory resident.Directory
	if cfg.DatabaseURL != "" {
		db, err := pgplatform.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := docstore.Migrate(ctx, db); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		if err := resident.Migrate(ctx, db); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		documents = docstore.NewPostgres(db)
		directory = resident.NewPostgres(db)
	} else {
		log.Warn("no database configured, using in-memory stores")
		documents = docstore.NewInMemory()
		directory = resident.NewInMemory()
	}

	opts := []docservice.Option{
		docservice.WithLogger(log),
		docservice.WithMetrics(docmetrics.New()),
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redisplatform.Open(ctx, cfg.RedisAddr)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		opts = append(opts, docservice.WithCache(
			cache.New(redisClient, config.VerificationCacheTTL, log),
		))
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := audit.NewKafkaPublisher(cfg.KafkaBrokers)
		if err != nil {
			log.Error("kafka producer failed", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		opts = append(opts, docservice.WithAuditPublisher(publisher))
	}

	service := docservice.New(
		documents,
		directory,
		render.NewTemplateRenderer(),
		render.NewFSArtifactStore(cfg.ArtifactDir),
		opts...,
	)
	proofs := proofofaddress.NewService(service, directory)

	validator := auth.NewValidator(cfg.JWTSigningKey)
	router := httpapi.NewRouter(
		dochandler.New(service, log),
		poahandler.New(proofs, log),
		validator,
		log,
	)

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting attesta", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
