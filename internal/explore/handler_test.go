package explore

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, h *providerHarness) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewHandler(newTestService(t, h))
	engine := gin.New()
	engine.POST("/api/v1/explore", handler.Explore)
	engine.GET("/api/v1/explore/stream", handler.Stream)
	return engine
}

func TestExploreEndpoint_MissingLocation(t *testing.T) {
	engine := newTestRouter(t, newProviderHarness(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/explore", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExploreEndpoint_UnknownAddressIs404(t *testing.T) {
	engine := newTestRouter(t, newProviderHarness(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/explore", strings.NewReader(`{"location":"Atlantis"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExploreEndpoint_OccurrenceOutageIs502(t *testing.T) {
	h := newProviderHarness(t)
	h.down["gbif"] = true
	engine := newTestRouter(t, h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/explore", strings.NewReader(`{"location":"Amsterdam"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestExploreEndpoint_Success(t *testing.T) {
	engine := newTestRouter(t, newProviderHarness(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/explore", strings.NewReader(`{"location":"Amsterdam"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Vulpes vulpes") || !strings.Contains(body, "coordinates") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestStreamEndpoint_EmitsSpeciesAndDoneEvents(t *testing.T) {
	engine := newTestRouter(t, newProviderHarness(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/explore/stream?location=Amsterdam", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/event-stream") {
		t.Fatalf("expected SSE content type, got %q", got)
	}

	body := rec.Body.String()
	for _, event := range []string{"event:coordinates", "event:species", "event:done"} {
		if !strings.Contains(body, event) {
			t.Fatalf("expected %q in stream, got: %s", event, body)
		}
	}
	if strings.Count(body, "event:species") != 2 {
		t.Fatalf("expected 2 species events, got: %s", body)
	}
}

func TestStreamEndpoint_MissingLocation(t *testing.T) {
	engine := newTestRouter(t, newProviderHarness(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/explore/stream", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
