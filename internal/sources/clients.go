package sources

import (
	"context"
	"net/http"
	"time"

	"sanctuary_backend/platform/cache"
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
)

// Clients bundles the upstream provider clients. One shared http.Client
// carries the connection pool; each call wraps the request context with its
// provider's timeout so a slow provider never stalls the others.
type Clients struct {
	http     *http.Client
	cfg      config.SourcesConfig
	log      *logger.Logger
	denylist map[string]struct{}

	wikiMemo *cache.Memo[Result[string]]
	taxoMemo *cache.Memo[Result[Taxon]]
}

// New creates the provider clients. The taxonomic-class denylist is loaded
// from the configured YAML file when present, otherwise the built-in
// defaults apply.
func New(cfg config.SourcesConfig, log *logger.Logger) (*Clients, error) {
	denylist, err := loadDenylist(cfg.GetTaxonDenylistFile())
	if err != nil {
		return nil, err
	}

	wikiMemo, err := cache.NewMemo[Result[string]](cfg.GetSpeciesCacheSize())
	if err != nil {
		return nil, err
	}
	taxoMemo, err := cache.NewMemo[Result[Taxon]](cfg.GetSpeciesCacheSize())
	if err != nil {
		return nil, err
	}

	return &Clients{
		http:     &http.Client{},
		cfg:      cfg,
		log:      log,
		denylist: denylist,
		wikiMemo: wikiMemo,
		taxoMemo: taxoMemo,
	}, nil
}

func (c *Clients) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(ctx, d)
}
