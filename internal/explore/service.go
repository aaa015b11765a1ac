// Package explore aggregates the upstream biodiversity sources into a
// single per-location answer: resolve the address, search occurrences,
// then enrich each distinct species concurrently.
package explore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"sanctuary_backend/internal/audio"
	"sanctuary_backend/internal/events"
	"sanctuary_backend/internal/geo"
	"sanctuary_backend/internal/narration"
	"sanctuary_backend/internal/sources"
	"sanctuary_backend/platform/apperr"
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
)

const msgAddressNotDocumented = "address not documented"

// Service runs the explore pipeline. The narration and audio
// collaborators are optional; when nil those record fields stay empty.
type Service struct {
	geo       *geo.Service
	sources   *sources.Clients
	narration *narration.Service
	audio     *audio.Service
	bus       events.Bus
	log       *logger.Logger

	limit    int
	sem      *semaphore.Weighted
	deadline time.Duration
}

// NewService wires the aggregator. narrationSvc and audioSvc may be nil
// when their modules are disabled.
func NewService(
	cfg config.ExploreConfig,
	geoSvc *geo.Service,
	src *sources.Clients,
	narrationSvc *narration.Service,
	audioSvc *audio.Service,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		geo:       geoSvc,
		sources:   src,
		narration: narrationSvc,
		audio:     audioSvc,
		bus:       bus,
		log:       log,
		limit:     cfg.GetSpeciesLimit(),
		sem:       semaphore.NewWeighted(int64(cfg.GetFanOutConcurrency())),
		deadline:  cfg.GetExploreDeadline(),
	}
}

// effectiveLimit folds an optional per-request limit into the configured
// default. Requests can only narrow the species count, never widen it.
func (s *Service) effectiveLimit(requested int) int {
	if requested > 0 && requested < s.limit {
		return requested
	}
	return s.limit
}

// Explore resolves the location and returns the fully enriched species
// set. The whole pipeline runs under the configured deadline.
func (s *Service) Explore(ctx context.Context, location string, limit int) (*ExploreResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.deadline)
	defer cancel()

	res, sightings, err := s.discover(ctx, location, s.effectiveLimit(limit))
	if err != nil {
		return nil, err
	}

	records := make([]SpeciesRecord, len(sightings))
	done := make(chan int, len(sightings))
	for i, sg := range sightings {
		go func(i int, sg sources.Sighting) {
			records[i] = s.enrich(ctx, sg)
			done <- i
		}(i, sg)
	}
	for range sightings {
		<-done
	}

	s.publishCompleted(ctx, location, len(records), false)

	return &ExploreResponse{
		Coordinates: res.Center,
		Species:     records,
	}, nil
}

// discover resolves the address and runs the occurrence search, publishing
// SpeciesDiscovered on success.
func (s *Service) discover(ctx context.Context, location string, limit int) (*geo.Resolution, []sources.Sighting, error) {
	res, err := s.geo.Resolve(ctx, location)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindUnavailable, "geocoding service unavailable", err)
	}
	if res == nil {
		return nil, nil, apperr.NotFound(msgAddressNotDocumented)
	}

	sightings, err := s.sources.OccurrenceSearch(ctx, res.Box, limit)
	if err != nil {
		s.publishCompleted(ctx, location, 0, true)
		return nil, nil, apperr.Wrap(apperr.KindUnavailable, "occurrence search unavailable", err)
	}

	names := make([]string, len(sightings))
	for i, sg := range sightings {
		names[i] = sg.Species
	}
	// Detached from the request context so async handlers (prewarm
	// enqueues) outlive the response.
	s.bus.Publish(context.WithoutCancel(ctx), events.SpeciesDiscovered{
		BaseEvent: events.NewBaseEvent(),
		Location:  location,
		Species:   names,
	})

	return res, sightings, nil
}

// enrich fans out the per-species lookups. Each lookup acquires a slot on
// the shared semaphore so the total upstream concurrency stays bounded no
// matter how many species are in flight. A panic in any lookup is
// captured into the record instead of taking the request down.
func (s *Service) enrich(ctx context.Context, sg sources.Sighting) (rec SpeciesRecord) {
	defer func() {
		if r := recover(); r != nil {
			rec.Species = sg.Species
			rec.Images = sg.Images
			rec.Err = fmt.Sprintf("enrichment panic: %v", r)
			s.log.Error("species enrichment panicked", "species", sg.Species, "panic", r)
		}
	}()

	rec = SpeciesRecord{Species: sg.Species, Images: sg.Images}

	// Every step either runs to completion or records a failed Result via
	// its fail setter, so no field is ever left without a status.
	type step struct {
		name string
		run  func()
		fail func(reason string)
	}
	steps := []step{
		{"wikipedia",
			func() { rec.Wikipedia = s.sources.Summary(ctx, sg.Species) },
			func(reason string) { rec.Wikipedia = sources.Failed[string](reason) }},
		{"inaturalist",
			func() { rec.INaturalist = s.sources.TaxonLookup(ctx, sg.Species) },
			func(reason string) { rec.INaturalist = sources.Failed[sources.Taxon](reason) }},
		{"xenocanto",
			func() { rec.Audio = s.sources.Recordings(ctx, sg.Species) },
			func(reason string) { rec.Audio = sources.Failed[[]sources.Recording](reason) }},
		{"news",
			func() { rec.News = s.sources.News(ctx, sg.Species) },
			func(reason string) { rec.News = sources.Failed[[]sources.NewsItem](reason) }},
	}

	done := make(chan string, len(steps))
	for _, st := range steps {
		go func(st step) {
			var note string
			defer func() {
				if r := recover(); r != nil {
					note = fmt.Sprintf("%s panicked: %v", st.name, r)
					st.fail(fmt.Sprintf("panic: %v", r))
					s.log.Error("source lookup panicked",
						"source", st.name, "species", sg.Species, "panic", r)
				}
				done <- note
			}()
			if err := s.sem.Acquire(ctx, 1); err != nil {
				st.fail(err.Error())
				return
			}
			defer s.sem.Release(1)
			st.run()
		}(st)
	}
	var notes []string
	for range steps {
		if n := <-done; n != "" {
			notes = append(notes, n)
		}
	}
	if len(notes) > 0 {
		sort.Strings(notes)
		rec.Err = strings.Join(notes, "; ")
	}

	s.narrate(ctx, &rec)
	return rec
}

// narrate fills in the narrative text and the mixed audio track when those
// modules are enabled. Audio depends on the narration text, so the two run
// in sequence.
func (s *Service) narrate(ctx context.Context, rec *SpeciesRecord) {
	if s.narration == nil {
		return
	}
	text, err := s.narration.Narrate(ctx, rec.Species)
	if err != nil {
		s.log.Error("narration failed", "species", rec.Species, "error", err)
		return
	}
	rec.Narrative = text

	if s.audio == nil {
		return
	}
	path, err := s.audio.Produce(ctx, rec.Species, text)
	if err != nil {
		s.log.Error("audio production failed", "species", rec.Species, "error", err)
		return
	}
	rec.AudioPath = path
}

func (s *Service) publishCompleted(ctx context.Context, location string, count int, failed bool) {
	s.bus.Publish(context.WithoutCancel(ctx), events.ExploreCompleted{
		BaseEvent:    events.NewBaseEvent(),
		Location:     location,
		SpeciesCount: count,
		Failed:       failed,
	})
}
