package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sanctuary_backend/internal/audio"
	"sanctuary_backend/internal/events"
	"sanctuary_backend/internal/explore"
	"sanctuary_backend/internal/geo"
	apphttp "sanctuary_backend/internal/http"
	"sanctuary_backend/internal/http/router"
	"sanctuary_backend/internal/narration"
	"sanctuary_backend/internal/profiles"
	"sanctuary_backend/internal/scheduler"
	"sanctuary_backend/internal/sources"
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
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

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	geoModule, err := geo.NewModule(cfg, log)
	if err != nil {
		log.Error("failed to initialize geo module", "error", err)
		panic("failed to initialize geo module: " + err.Error())
	}

	sourceClients, err := sources.New(cfg, log)
	if err != nil {
		log.Error("failed to initialize source clients", "error", err)
		panic("failed to initialize source clients: " + err.Error())
	}

	narrationModule, err := narration.NewModule(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize narration module", "error", err)
		panic("failed to initialize narration module: " + err.Error())
	}

	audioModule, err := audio.NewModule(cfg, log)
	if err != nil {
		log.Error("failed to initialize audio module", "error", err)
		panic("failed to initialize audio module: " + err.Error())
	}

	exploreModule := explore.NewModule(
		cfg,
		geoModule.Service(),
		sourceClients,
		narrationModule.Service(),
		audioModule.Service(),
		eventBus,
		log,
	)

	profilesModule, err := profiles.NewModule(cfg, log)
	if err != nil {
		log.Error("failed to initialize profiles module", "error", err)
		panic("failed to initialize profiles module: " + err.Error())
	}

	// Prewarm scheduler: only wired when redis is configured
	if cfg.GetRedisURL() != "" {
		schedulerClient, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize scheduler client", "error", err)
		} else {
			defer schedulerClient.Close()
			schedulerClient.Subscribe(eventBus, log)
			log.Info("narration prewarm scheduler enabled")
		}
	} else {
		log.Warn("REDIS_URL not configured; narration prewarming disabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			geoModule,
			exploreModule,
			profilesModule,
		},
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router.New(app),
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
