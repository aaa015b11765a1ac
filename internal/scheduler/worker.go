package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"sanctuary_backend/internal/narration"
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
)

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	narration *narration.Service
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, narrationSvc *narration.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		narration: narrationSvc,
		log:       log,
	}

	mux.HandleFunc(TaskNarrationPrewarm, w.handleNarrationPrewarm)

	return w, nil
}

// handleNarrationPrewarm generates the narration for the species, which
// lands it in the shared cache. Already-cached species return instantly.
func (w *Worker) handleNarrationPrewarm(ctx context.Context, task *asynq.Task) error {
	if w.narration == nil {
		return nil
	}

	payload, err := ParseNarrationPrewarmPayload(task)
	if err != nil {
		return err
	}
	if payload.Species == "" {
		return nil
	}

	if _, err := w.narration.Narrate(ctx, payload.Species); err != nil {
		return err
	}

	w.log.Info("narration prewarmed", "species", payload.Species)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
