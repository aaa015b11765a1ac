package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// recordingLimit caps how many field recordings are kept per species.
const recordingLimit = 2

const xenoCantoSource = "Xeno-canto"

type xcRecording struct {
	ID        string `json:"id"`
	File      string `json:"file"`
	Recordist string `json:"rec"`
	Country   string `json:"cnt"`
	Quality   string `json:"q"`
}

type xcResponse struct {
	Recordings []xcRecording `json:"recordings"`
}

// Recordings fetches up to two field recordings for a species from
// xeno-canto. Zero recordings is NotFound; transport failures are Failed.
// Recordings are not memoized: the upstream result set churns often enough
// that stale entries would outlive their URLs.
func (c *Clients) Recordings(ctx context.Context, species string) Result[[]Recording] {
	ctx, cancel := c.withTimeout(ctx, c.cfg.GetXenoCantoTimeout())
	defer cancel()

	params := url.Values{}
	params.Set("query", species)

	reqURL := fmt.Sprintf("%s/api/2/recordings?%s", c.cfg.GetXenoCantoBaseURL(), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Failed[[]Recording](err.Error())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("xeno-canto", "recordings", err)
		return Failed[[]Recording](err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamStatus("xeno-canto", "recordings", resp.StatusCode)
		return Failed[[]Recording](fmt.Sprintf("xeno-canto status %d", resp.StatusCode))
	}

	var payload xcResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.UpstreamError("xeno-canto", "decode", err)
		return Failed[[]Recording](err.Error())
	}

	if len(payload.Recordings) == 0 {
		return NotFound[[]Recording]()
	}

	entries := payload.Recordings
	if len(entries) > recordingLimit {
		entries = entries[:recordingLimit]
	}

	recordings := make([]Recording, 0, len(entries))
	for _, entry := range entries {
		recordings = append(recordings, Recording{
			Source:    xenoCantoSource,
			ID:        entry.ID,
			URL:       entry.File,
			Recordist: entry.Recordist,
			Country:   entry.Country,
			Quality:   entry.Quality,
		})
	}

	return Found(recordings)
}
