package sources

// Sighting is one distinct species discovered by the occurrence search,
// with the image URLs attached to its first qualifying record.
type Sighting struct {
	Species string   `json:"species"`
	Images  []string `json:"images"`
}

// Taxon is the species metadata returned by the iNaturalist taxa search.
type Taxon struct {
	CommonName         string `json:"name"`
	ScientificName     string `json:"scientific_name"`
	ObservationsCount  int    `json:"observations_count"`
	ConservationStatus string `json:"conservation_status,omitempty"`
	WikipediaURL       string `json:"wikipedia_url,omitempty"`
}

// Recording is one field recording from xeno-canto.
type Recording struct {
	Source    string `json:"source"`
	ID        string `json:"id"`
	URL       string `json:"url"`
	Recordist string `json:"recordist"`
	Country   string `json:"country"`
	Quality   string `json:"quality"`
}

// NewsItem is one entry from the conservation news feed.
type NewsItem struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
}
