package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"sanctuary_backend/internal/events"
	"sanctuary_backend/platform/logger"
)

type testSchedulerConfig struct {
	redisURL string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return "test" }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNarrationPrewarmTask_RoundTrip(t *testing.T) {
	task, err := NewNarrationPrewarmTask(NarrationPrewarmPayload{Species: "Vulpes vulpes"})
	if err != nil {
		t.Fatalf("NewNarrationPrewarmTask: %v", err)
	}
	if task.Type() != TaskNarrationPrewarm {
		t.Fatalf("expected task type %q, got %q", TaskNarrationPrewarm, task.Type())
	}

	payload, err := ParseNarrationPrewarmPayload(task)
	if err != nil {
		t.Fatalf("ParseNarrationPrewarmPayload: %v", err)
	}
	if payload.Species != "Vulpes vulpes" {
		t.Fatalf("expected species preserved, got %q", payload.Species)
	}
}

func TestNewClient_RequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected an error without a redis url")
	}
}

func TestNilClient_EnqueueIsNoOp(t *testing.T) {
	var c *Client
	if err := c.EnqueueNarrationPrewarm(context.Background(), NarrationPrewarmPayload{Species: "x"}); err != nil {
		t.Fatalf("expected nil client to no-op, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil client close to no-op, got %v", err)
	}
}

func TestClient_EnqueuesToRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if err := client.EnqueueNarrationPrewarm(context.Background(), NarrationPrewarmPayload{Species: "Vulpes vulpes"}); err != nil {
		t.Fatalf("EnqueueNarrationPrewarm: %v", err)
	}

	if len(mr.Keys()) == 0 {
		t.Fatal("expected the task to land in redis")
	}
}

func TestSubscribe_EnqueuesPerDiscoveredSpecies(t *testing.T) {
	mr := miniredis.RunT(t)
	log := logger.New("test")

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	bus := events.NewInMemoryBus(log)
	client.Subscribe(bus, log)

	err = bus.PublishSync(context.Background(), events.SpeciesDiscovered{
		BaseEvent: events.NewBaseEvent(),
		Location:  "Amsterdam",
		Species:   []string{"Vulpes vulpes", "Ardea cinerea"},
	})
	if err != nil {
		t.Fatalf("PublishSync: %v", err)
	}

	if len(mr.Keys()) == 0 {
		t.Fatal("expected prewarm tasks in redis")
	}
}

func TestRedisClientOpt_ParsesURL(t *testing.T) {
	opt, err := redisClientOpt("redis://:secret@localhost:6380/2", true)
	if err != nil {
		t.Fatalf("redisClientOpt: %v", err)
	}
	if opt.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr %q", opt.Addr)
	}
	if opt.Password != "secret" {
		t.Fatalf("unexpected password %q", opt.Password)
	}
	if opt.DB != 2 {
		t.Fatalf("unexpected db %d", opt.DB)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected insecure TLS config")
	}
}
