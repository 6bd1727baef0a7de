package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"formscore_backend/internal/config"
	"formscore_backend/internal/email"
	"formscore_backend/internal/generator"
	"formscore_backend/internal/http/router"
	"formscore_backend/internal/submission"
	"formscore_backend/platform/db"
	"formscore_backend/platform/logger"
	"formscore_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure
	// ========================================================================

	mongoClient, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("failed to connect to document store", "error", err)
		panic("failed to connect to document store: " + err.Error())
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	log.Info("document store connection established", "database", cfg.MongoDatabase)

	gen, err := generator.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		log.Error("failed to initialize content generator", "error", err)
		panic("failed to initialize content generator: " + err.Error())
	}

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	if !cfg.EmailEnabled {
		log.Warn("email delivery disabled; generated emails will not be sent")
	}

	val := validator.New()

	// ========================================================================
	// Modules and HTTP layer
	// ========================================================================

	mongoDB := mongoClient.Database(cfg.MongoDatabase)
	submissionModule := submission.NewModule(mongoDB, gen, sender, cfg, val, log)

	engine := router.New(cfg, log, submissionModule)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
