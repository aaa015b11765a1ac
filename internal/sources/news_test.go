package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newsFixture(items int) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel>`)
	for i := 0; i < items; i++ {
		fmt.Fprintf(&sb,
			`<item><title>Story %d</title><link>https://news/story-%d</link><pubDate>Mon, 04 Aug 2025 10:0%d:00 GMT</pubDate></item>`,
			i, i, i)
	}
	sb.WriteString(`</channel></rss>`)
	return sb.String()
}

func TestNews_KeepsAtMostFiveItems(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(newsFixture(7)))
	}))
	defer srv.Close()

	clients := newTestClients(t, srv.URL)

	result := clients.News(context.Background(), "Vulpes vulpes")
	if result.Status != StatusFound {
		t.Fatalf("expected found, got %q (%s)", result.Status, result.Reason)
	}
	if len(result.Value) != 5 {
		t.Fatalf("expected 5 items, got %d", len(result.Value))
	}
	if result.Value[0].Title != "Story 0" || result.Value[0].Link != "https://news/story-0" {
		t.Fatalf("unexpected first item: %+v", result.Value[0])
	}

	// The species name is dashed and suffixed with the conservation topic.
	if !strings.Contains(rawQuery, "Vulpes-vulpes+conservation") {
		t.Fatalf("unexpected feed query: %q", rawQuery)
	}
}

func TestNews_EmptyFeedIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(newsFixture(0)))
	}))
	defer srv.Close()

	clients := newTestClients(t, srv.URL)

	if result := clients.News(context.Background(), "Vulpes vulpes"); result.Status != StatusNotFound {
		t.Fatalf("expected not_found, got %q", result.Status)
	}
}

func TestNews_FetchFailureIsFailedNotEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	clients := newTestClients(t, srv.URL)

	result := clients.News(context.Background(), "Vulpes vulpes")
	if result.Status != StatusFailed {
		t.Fatalf("expected failed, got %q", result.Status)
	}
	if result.Reason == "" {
		t.Fatal("expected a failure reason")
	}
}

func TestNews_MalformedFeedIsFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<rss><channel><item><title>broken`))
	}))
	defer srv.Close()

	clients := newTestClients(t, srv.URL)

	if result := clients.News(context.Background(), "Vulpes vulpes"); result.Status != StatusFailed {
		t.Fatalf("expected failed, got %q", result.Status)
	}
}
