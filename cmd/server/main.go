package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ssoverify/internal/auth/google"
	"ssoverify/internal/auth/keyset"
	"ssoverify/internal/auth/microsoft"
	"ssoverify/internal/config"
	"ssoverify/internal/domain"
	"ssoverify/internal/handler"
	"ssoverify/internal/logger"
	"ssoverify/internal/port"
	"ssoverify/internal/router"
	"ssoverify/internal/service"
)

func main() {
	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

func run() error {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A provider missing its configuration is not registered; its endpoint
	// answers 400 instead of the process refusing to start.
	verifiers := make(map[domain.AuthProvider]port.IdentityVerifier)

	if cfg.Google.Configured() {
		keys := keyset.NewCache(cfg.Google.JWKSURL, cfg.Keys.FetchTimeout, cfg.Keys.RefreshInterval)
		go keys.RefreshLoop(ctx, func(err error) {
			log.Warn().Err(err).Str("provider", "google").Msg("background key refresh failed")
		})
		verifiers[domain.AuthProviderGoogle] = google.NewVerifier(cfg.Google.ClientID, keys)
		log.Info().Msg("google verifier enabled")
	} else {
		log.Warn().Msg("google provider not configured")
	}

	if cfg.Microsoft.Configured() {
		keys := keyset.NewCache(cfg.Microsoft.JWKSURL, cfg.Keys.FetchTimeout, cfg.Keys.RefreshInterval)
		go keys.RefreshLoop(ctx, func(err error) {
			log.Warn().Err(err).Str("provider", "microsoft").Msg("background key refresh failed")
		})
		verifiers[domain.AuthProviderMicrosoft] = microsoft.NewVerifier(cfg.Microsoft.ClientID, cfg.Microsoft.Tenant, keys)
		log.Info().Str("tenant", cfg.Microsoft.Tenant).Msg("microsoft verifier enabled")
	} else {
		log.Warn().Msg("microsoft provider not configured")
	}

	verifySvc := service.NewVerificationService(verifiers, log)
	authH := handler.NewAuthHandler(verifySvc, log)
	r := router.Setup(cfg, authH, log)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server crashed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
