package geo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"sanctuary_backend/platform/logger"
)

type testConfig struct {
	baseURL  string
	radiusKm float64
}

func (c testConfig) GetNominatimBaseURL() string { return c.baseURL }
func (c testConfig) GetGeoRadiusKm() float64     { return c.radiusKm }
func (c testConfig) GetGeoCacheSize() int        { return 16 }

func TestBoxAround_Equator(t *testing.T) {
	box := BoxAround(0, 0, 111)

	if math.Abs(box.MaxLat-1) > 1e-9 || math.Abs(box.MinLat+1) > 1e-9 {
		t.Fatalf("expected lat delta 1 degree, got [%f, %f]", box.MinLat, box.MaxLat)
	}
	// cos(0) == 1, so the longitude delta matches the latitude delta
	if math.Abs(box.MaxLon-1) > 1e-9 || math.Abs(box.MinLon+1) > 1e-9 {
		t.Fatalf("expected lon delta 1 degree, got [%f, %f]", box.MinLon, box.MaxLon)
	}
}

func TestBoxAround_LongitudeWidensWithLatitude(t *testing.T) {
	box := BoxAround(60, 10, 111)

	latDelta := box.MaxLat - 60
	lonDelta := box.MaxLon - 10
	// cos(60 deg) == 0.5, so the box is twice as wide in longitude
	if math.Abs(lonDelta-2*latDelta) > 1e-9 {
		t.Fatalf("expected lon delta %f, got %f", 2*latDelta, lonDelta)
	}
}

func TestBoxAround_PoleStaysFinite(t *testing.T) {
	box := BoxAround(89.9, 0, 100)

	if math.IsInf(box.MinLon, 0) || math.IsInf(box.MaxLon, 0) {
		t.Fatalf("expected finite longitude bounds, got [%f, %f]", box.MinLon, box.MaxLon)
	}
	if box.MaxLat != 90 {
		t.Fatalf("expected max lat clamped to 90, got %f", box.MaxLat)
	}
	if box.MinLon < -180 || box.MaxLon > 180 {
		t.Fatalf("expected longitude within [-180, 180], got [%f, %f]", box.MinLon, box.MaxLon)
	}
}

func TestResolve_MemoizesPerAddress(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"52.37","lon":"4.89","display_name":"Amsterdam"}]`))
	}))
	defer srv.Close()

	svc, err := NewService(testConfig{baseURL: srv.URL, radiusKm: 100}, logger.New("test"))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		res, err := svc.Resolve(ctx, "Amsterdam")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if res == nil {
			t.Fatal("expected a resolution, got nil")
		}
		if res.Center.Lat != 52.37 || res.Center.Lon != 4.89 {
			t.Fatalf("unexpected center: %+v", res.Center)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestResolve_UnknownAddressIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	svc, err := NewService(testConfig{baseURL: srv.URL, radiusKm: 100}, logger.New("test"))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	res, err := svc.Resolve(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("expected no error for unknown address, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil resolution, got %+v", res)
	}
}

func TestResolve_UpstreamFailureIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc, err := NewService(testConfig{baseURL: srv.URL, radiusKm: 100}, logger.New("test"))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.Resolve(context.Background(), "Amsterdam"); err == nil {
		t.Fatal("expected an error for upstream failure")
	}
}
