package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"sanctuary_backend/internal/geo"
)

// gbifPageSize is how many occurrence records one search requests. Distinct
// species with images are sparse in the raw records, so the page is much
// larger than the species limit.
const gbifPageSize = 300

type gbifMedia struct {
	Identifier string `json:"identifier"`
}

type gbifRecord struct {
	Species string      `json:"species"`
	Class   string      `json:"class"`
	Media   []gbifMedia `json:"media"`
}

type gbifResponse struct {
	Results []gbifRecord `json:"results"`
}

// OccurrenceSearch queries GBIF for occurrence records inside the box and
// reduces them to the first `limit` distinct species that carry at least one
// still image and are not in the class denylist. Provider order is kept; no
// secondary ranking is applied. A transport or HTTP failure is returned as
// an error because the whole explore request depends on this call.
func (c *Clients) OccurrenceSearch(ctx context.Context, box geo.BoundingBox, limit int) ([]Sighting, error) {
	ctx, cancel := c.withTimeout(ctx, c.cfg.GetGBIFTimeout())
	defer cancel()

	params := url.Values{}
	params.Set("decimalLatitude", fmt.Sprintf("%f,%f", box.MinLat, box.MaxLat))
	params.Set("decimalLongitude", fmt.Sprintf("%f,%f", box.MinLon, box.MaxLon))
	params.Set("hasCoordinate", "true")
	params.Set("hasGeospatialIssue", "false")
	params.Set("limit", fmt.Sprintf("%d", gbifPageSize))
	params.Set("mediaType", "StillImage")

	reqURL := fmt.Sprintf("%s/v1/occurrence/search?%s", c.cfg.GetGBIFBaseURL(), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("gbif", "occurrence_search", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamStatus("gbif", "occurrence_search", resp.StatusCode)
		return nil, fmt.Errorf("gbif status %d", resp.StatusCode)
	}

	var payload gbifResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.UpstreamError("gbif", "decode", err)
		return nil, err
	}

	return c.reduceSightings(payload.Results, limit), nil
}

// reduceSightings keeps the first `limit` unique species with images,
// skipping denylisted classes. The first qualifying record wins for each
// species.
func (c *Clients) reduceSightings(records []gbifRecord, limit int) []Sighting {
	seen := make(map[string]struct{}, limit)
	sightings := make([]Sighting, 0, limit)

	for _, record := range records {
		if record.Species == "" {
			continue
		}
		if _, excluded := c.denylist[record.Class]; excluded {
			continue
		}
		if _, dup := seen[record.Species]; dup {
			continue
		}

		images := make([]string, 0, len(record.Media))
		for _, m := range record.Media {
			if m.Identifier != "" {
				images = append(images, m.Identifier)
			}
		}
		if len(images) == 0 {
			continue
		}

		seen[record.Species] = struct{}{}
		sightings = append(sightings, Sighting{Species: record.Species, Images: images})

		if len(sightings) == limit {
			break
		}
	}

	return sightings
}
