// Package scheduler runs background narration prewarming over asynq.
// When a request discovers a species set, the prewarm tasks let the
// worker fill the narration cache before the streaming phase needs it.
package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"sanctuary_backend/internal/events"
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
)

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueNarrationPrewarm schedules a prewarm job for one species. A nil
// client is a no-op so callers never have to branch on whether the
// scheduler is configured.
func (c *Client) EnqueueNarrationPrewarm(ctx context.Context, payload NarrationPrewarmPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewNarrationPrewarmTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// Subscribe registers the client on the event bus: every discovered
// species set is fanned out into individual prewarm tasks.
func (c *Client) Subscribe(bus events.Bus, log *logger.Logger) {
	bus.Subscribe((events.SpeciesDiscovered{}).EventName(), events.HandlerFunc(
		func(ctx context.Context, event events.Event) error {
			discovered, ok := event.(events.SpeciesDiscovered)
			if !ok {
				return nil
			}
			for _, species := range discovered.Species {
				if err := c.EnqueueNarrationPrewarm(ctx, NarrationPrewarmPayload{Species: species}); err != nil {
					log.Error("failed to enqueue narration prewarm",
						"species", species, "error", err)
				}
			}
			return nil
		}))
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
