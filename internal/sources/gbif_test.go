package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sanctuary_backend/internal/geo"
)

const gbifFixture = `{
	"results": [
		{"species": "Vulpes vulpes", "class": "Mammalia", "media": [{"identifier": "https://img/fox1.jpg"}, {"identifier": "https://img/fox2.jpg"}]},
		{"species": "Vulpes vulpes", "class": "Mammalia", "media": [{"identifier": "https://img/fox3.jpg"}]},
		{"species": "Apis mellifera", "class": "Insecta", "media": [{"identifier": "https://img/bee.jpg"}]},
		{"species": "Ardea cinerea", "class": "Aves", "media": []},
		{"species": "", "class": "Aves", "media": [{"identifier": "https://img/ghost.jpg"}]},
		{"species": "Sciurus vulgaris", "class": "Mammalia", "media": [{"identifier": "https://img/squirrel.jpg"}]},
		{"species": "Bufo bufo", "class": "Amphibia", "media": [{"identifier": "https://img/toad.jpg"}]}
	]
}`

func TestOccurrenceSearch_ReducesToUniqueSpeciesWithImages(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(gbifFixture))
	}))
	defer srv.Close()

	clients := newTestClients(t, srv.URL)
	box := geo.BoundingBox{MinLat: 51, MaxLat: 53, MinLon: 4, MaxLon: 6}

	sightings, err := clients.OccurrenceSearch(context.Background(), box, 8)
	if err != nil {
		t.Fatalf("OccurrenceSearch: %v", err)
	}

	// Duplicate fox collapsed, bee denylisted, heron has no image,
	// nameless record skipped.
	want := []string{"Vulpes vulpes", "Sciurus vulgaris", "Bufo bufo"}
	if len(sightings) != len(want) {
		t.Fatalf("expected %d sightings, got %d: %+v", len(want), len(sightings), sightings)
	}
	for i, name := range want {
		if sightings[i].Species != name {
			t.Fatalf("expected sighting %d to be %q, got %q", i, name, sightings[i].Species)
		}
	}
	if len(sightings[0].Images) != 2 {
		t.Fatalf("expected first record's images to win, got %v", sightings[0].Images)
	}

	for _, param := range []string{"hasCoordinate=true", "hasGeospatialIssue=false", "mediaType=StillImage", "limit=300"} {
		if !strings.Contains(query, param) {
			t.Fatalf("expected query to contain %q, got %q", param, query)
		}
	}
}

func TestOccurrenceSearch_HonorsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(gbifFixture))
	}))
	defer srv.Close()

	clients := newTestClients(t, srv.URL)

	sightings, err := clients.OccurrenceSearch(context.Background(), geo.BoundingBox{}, 2)
	if err != nil {
		t.Fatalf("OccurrenceSearch: %v", err)
	}
	if len(sightings) != 2 {
		t.Fatalf("expected limit of 2 sightings, got %d", len(sightings))
	}
}

func TestOccurrenceSearch_UpstreamFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	clients := newTestClients(t, srv.URL)

	if _, err := clients.OccurrenceSearch(context.Background(), geo.BoundingBox{}, 8); err == nil {
		t.Fatal("expected an error when gbif is down")
	}
}
