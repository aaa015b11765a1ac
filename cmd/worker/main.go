package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sanctuary_backend/internal/narration"
	"sanctuary_backend/internal/scheduler"
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	narrationModule, err := narration.NewModule(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize narration module", "error", err)
		panic("failed to initialize narration module: " + err.Error())
	}
	if !narrationModule.IsEnabled() {
		log.Warn("GEMINI_API_KEY not configured; prewarm tasks will be acknowledged without work")
	}

	worker, err := scheduler.NewWorker(cfg, narrationModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("worker stopped")
}
