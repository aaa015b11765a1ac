package explore

import (
	"sanctuary_backend/internal/geo"
	"sanctuary_backend/internal/sources"
)

// ExploreRequest is the lookup request body. Limit optionally narrows the
// species count below the configured default.
type ExploreRequest struct {
	Location string `json:"location" binding:"required,min=2"`
	Limit    int    `json:"limit" binding:"omitempty,min=1,max=50"`
}

// SpeciesRecord is the fully enriched profile for one nearby species.
// The optional enrichments each carry their own found/not_found/failed
// status so one provider outage never hides the rest of the record.
type SpeciesRecord struct {
	Species     string                              `json:"species"`
	Images      []string                            `json:"images"`
	Wikipedia   sources.Result[string]              `json:"wikipedia"`
	INaturalist sources.Result[sources.Taxon]       `json:"inaturalist"`
	Audio       sources.Result[[]sources.Recording] `json:"audio"`
	News        sources.Result[[]sources.NewsItem]  `json:"news"`
	Narrative   string                              `json:"narrative,omitempty"`
	AudioPath   string                              `json:"audio_path,omitempty"`
	Err         string                              `json:"error,omitempty"`
}

// ExploreResponse is the aggregate answer for a location.
type ExploreResponse struct {
	Coordinates geo.Point       `json:"coordinates"`
	Species     []SpeciesRecord `json:"species"`
}
