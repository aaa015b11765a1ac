package sources

import (
	"testing"
	"time"

	"sanctuary_backend/platform/logger"
)

// testSourcesConfig points every provider at the same test server.
type testSourcesConfig struct {
	baseURL      string
	denylistFile string
}

func (c testSourcesConfig) GetGBIFBaseURL() string        { return c.baseURL }
func (c testSourcesConfig) GetWikipediaBaseURL() string   { return c.baseURL }
func (c testSourcesConfig) GetINaturalistBaseURL() string { return c.baseURL }
func (c testSourcesConfig) GetXenoCantoBaseURL() string   { return c.baseURL }
func (c testSourcesConfig) GetNewsFeedBaseURL() string    { return c.baseURL }

func (c testSourcesConfig) GetGBIFTimeout() time.Duration        { return 2 * time.Second }
func (c testSourcesConfig) GetWikipediaTimeout() time.Duration   { return 2 * time.Second }
func (c testSourcesConfig) GetINaturalistTimeout() time.Duration { return 2 * time.Second }
func (c testSourcesConfig) GetXenoCantoTimeout() time.Duration   { return 2 * time.Second }
func (c testSourcesConfig) GetNewsFeedTimeout() time.Duration    { return 2 * time.Second }

func (c testSourcesConfig) GetTaxonDenylistFile() string { return c.denylistFile }
func (c testSourcesConfig) GetSpeciesCacheSize() int     { return 32 }

func newTestClients(t *testing.T, baseURL string) *Clients {
	t.Helper()
	clients, err := New(testSourcesConfig{baseURL: baseURL}, logger.New("test"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return clients
}
