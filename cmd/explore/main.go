// Command explore runs the full explore pipeline once for a location
// given on the command line and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"sanctuary_backend/internal/audio"
	"sanctuary_backend/internal/events"
	"sanctuary_backend/internal/explore"
	"sanctuary_backend/internal/geo"
	"sanctuary_backend/internal/narration"
	"sanctuary_backend/internal/sources"
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: explore <location>")
		os.Exit(2)
	}
	location := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	ctx := context.Background()

	geoSvc, err := geo.NewService(cfg, log)
	if err != nil {
		panic("failed to initialize geocoder: " + err.Error())
	}

	sourceClients, err := sources.New(cfg, log)
	if err != nil {
		panic("failed to initialize source clients: " + err.Error())
	}

	narrationModule, err := narration.NewModule(ctx, cfg, log)
	if err != nil {
		panic("failed to initialize narration module: " + err.Error())
	}

	audioModule, err := audio.NewModule(cfg, log)
	if err != nil {
		panic("failed to initialize audio module: " + err.Error())
	}

	svc := explore.NewService(
		cfg,
		geoSvc,
		sourceClients,
		narrationModule.Service(),
		audioModule.Service(),
		events.NewInMemoryBus(log),
		log,
	)

	resp, err := svc.Explore(ctx, location, 0)
	if err != nil {
		log.Error("explore failed", "location", location, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		panic("failed to encode response: " + err.Error())
	}
}
