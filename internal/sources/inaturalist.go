package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ReasonNoTaxon is the stable reason recorded when an iNaturalist lookup
// fails in transit.
const ReasonNoTaxon = "No iNaturalist data found"

type inatConservationStatus struct {
	Status string `json:"status"`
}

type inatTaxon struct {
	Name                string                  `json:"name"`
	PreferredCommonName string                  `json:"preferred_common_name"`
	ObservationsCount   int                     `json:"observations_count"`
	ConservationStatus  *inatConservationStatus `json:"conservation_status"`
	WikipediaURL        string                  `json:"wikipedia_url"`
}

type inatResponse struct {
	Results []inatTaxon `json:"results"`
}

// TaxonLookup fetches species metadata from the iNaturalist taxa search.
// The first matching taxon wins. Empty result sets are NotFound; transport
// failures are Failed and not cached.
func (c *Clients) TaxonLookup(ctx context.Context, species string) Result[Taxon] {
	result, err := c.taxoMemo.GetOrCompute(species, func() (Result[Taxon], error) {
		return c.fetchTaxon(ctx, species)
	})
	if err != nil {
		return Failed[Taxon](ReasonNoTaxon)
	}
	return result
}

func (c *Clients) fetchTaxon(ctx context.Context, species string) (Result[Taxon], error) {
	ctx, cancel := c.withTimeout(ctx, c.cfg.GetINaturalistTimeout())
	defer cancel()

	params := url.Values{}
	params.Set("q", species)

	reqURL := fmt.Sprintf("%s/v1/taxa?%s", c.cfg.GetINaturalistBaseURL(), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result[Taxon]{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("inaturalist", "taxa", err)
		return Result[Taxon]{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamStatus("inaturalist", "taxa", resp.StatusCode)
		return Result[Taxon]{}, fmt.Errorf("inaturalist status %d", resp.StatusCode)
	}

	var payload inatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.UpstreamError("inaturalist", "decode", err)
		return Result[Taxon]{}, err
	}

	if len(payload.Results) == 0 {
		return NotFound[Taxon](), nil
	}

	first := payload.Results[0]
	taxon := Taxon{
		CommonName:        first.PreferredCommonName,
		ScientificName:    first.Name,
		ObservationsCount: first.ObservationsCount,
		WikipediaURL:      first.WikipediaURL,
	}
	if taxon.CommonName == "" {
		taxon.CommonName = species
	}
	if first.ConservationStatus != nil {
		taxon.ConservationStatus = first.ConservationStatus.Status
	}

	return Found(taxon), nil
}
