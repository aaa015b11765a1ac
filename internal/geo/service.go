// Package geo resolves free-text locations to bounding boxes for
// occurrence searches.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sanctuary_backend/platform/cache"
	"sanctuary_backend/platform/logger"
)

const (
	userAgent = "The-Virtual-Sanctuary/1.0"

	// kmPerDegreeLat converts a linear distance to a latitude delta.
	kmPerDegreeLat = 111.0

	// maxCosineLat caps the latitude used for longitude correction so the
	// cosine never approaches zero near the poles.
	maxCosineLat = 85.0
)

// Service geocodes addresses via Nominatim and derives a search box of a
// fixed radius around the hit. Results are memoized per address for the
// process lifetime.
type Service struct {
	client   *http.Client
	baseURL  string
	radiusKm float64
	memo     *cache.Memo[*Resolution]
	log      *logger.Logger
}

// Config carries the resolver settings.
type Config interface {
	GetNominatimBaseURL() string
	GetGeoRadiusKm() float64
	GetGeoCacheSize() int
}

// NewService creates a geo resolver.
func NewService(cfg Config, log *logger.Logger) (*Service, error) {
	memo, err := cache.NewMemo[*Resolution](cfg.GetGeoCacheSize())
	if err != nil {
		return nil, err
	}
	return &Service{
		client:   &http.Client{Timeout: 5 * time.Second},
		baseURL:  cfg.GetNominatimBaseURL(),
		radiusKm: cfg.GetGeoRadiusKm(),
		memo:     memo,
		log:      log,
	}, nil
}

// Resolve geocodes the address and computes its bounding box. It returns
// (nil, nil) when the address is unknown to the geocoder; errors are
// reserved for transport failures.
func (s *Service) Resolve(ctx context.Context, address string) (*Resolution, error) {
	return s.memo.GetOrCompute(address, func() (*Resolution, error) {
		return s.resolve(ctx, address)
	})
}

func (s *Service) resolve(ctx context.Context, address string) (*Resolution, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", s.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.UpstreamError("nominatim", "search", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.UpstreamStatus("nominatim", "search", resp.StatusCode)
		return nil, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var hits []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		s.log.UpstreamError("nominatim", "decode", err)
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q", hits[0].Lat)
	}
	lon, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q", hits[0].Lon)
	}

	box := BoxAround(lat, lon, s.radiusKm)
	return &Resolution{
		Box:    box,
		Center: Point{Lon: lon, Lat: lat},
	}, nil
}

// BoxAround computes the bounding box of the given radius centered on a
// coordinate. The longitude delta widens with |latitude| to keep the box
// roughly radiusKm wide on the ground; the correction latitude is clamped
// so the box stays finite near the poles.
func BoxAround(lat, lon, radiusKm float64) BoundingBox {
	radiusDeg := radiusKm / kmPerDegreeLat

	cosLat := lat
	if cosLat > maxCosineLat {
		cosLat = maxCosineLat
	}
	if cosLat < -maxCosineLat {
		cosLat = -maxCosineLat
	}
	lonDelta := radiusDeg / math.Cos(cosLat*math.Pi/180)

	return BoundingBox{
		MinLat: clampLat(lat - radiusDeg),
		MaxLat: clampLat(lat + radiusDeg),
		MinLon: clampLon(lon - lonDelta),
		MaxLon: clampLon(lon + lonDelta),
	}
}

func clampLat(v float64) float64 {
	if v < -90 {
		return -90
	}
	if v > 90 {
		return 90
	}
	return v
}

func clampLon(v float64) float64 {
	if v < -180 {
		return -180
	}
	if v > 180 {
		return 180
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
