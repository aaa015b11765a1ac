package explore

import (
	"context"

	"sanctuary_backend/internal/geo"
	"sanctuary_backend/internal/sources"
)

// Stream runs the explore pipeline but hands each record over as soon as
// it is ready. The discovery phase runs synchronously so resolution and
// occurrence failures still surface as plain errors before any event is
// sent; the returned channel is closed when every record has been
// delivered or the context ends.
func (s *Service) Stream(ctx context.Context, location string, limit int) (*geo.Resolution, <-chan SpeciesRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.deadline)

	res, sightings, err := s.discover(ctx, location, s.effectiveLimit(limit))
	if err != nil {
		cancel()
		return nil, nil, err
	}

	out := make(chan SpeciesRecord)
	go func() {
		defer cancel()
		defer close(out)

		done := make(chan SpeciesRecord, len(sightings))
		for _, sg := range sightings {
			go func(sg sources.Sighting) {
				done <- s.enrich(ctx, sg)
			}(sg)
		}

		delivered := 0
		for delivered < len(sightings) {
			select {
			case rec := <-done:
				select {
				case out <- rec:
					delivered++
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
		s.publishCompleted(ctx, location, delivered, false)
	}()

	return res, out, nil
}
