package audio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sanctuary_backend/platform/logger"
)

func TestSynthesize_SendsTextAndVoice(t *testing.T) {
	var got ttsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/synthesize" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	client := NewTTSClient(srv.URL, "en-CA-LiamNeural", logger.New("test"))

	audio, err := client.Synthesize(context.Background(), "hello forest")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Fatalf("unexpected audio payload: %q", audio)
	}
	if got.Text != "hello forest" || got.Voice != "en-CA-LiamNeural" {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestSynthesize_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewTTSClient(srv.URL, "en-CA-LiamNeural", logger.New("test"))

	if _, err := client.Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error on upstream failure")
	}
}

func TestPickBackground_SelectsOnlyMP3Files(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"forest.mp3", "notes.txt", "RAIN.MP3"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	mixer := NewMixer(dir)
	for i := 0; i < 10; i++ {
		track, err := mixer.pickBackground()
		if err != nil {
			t.Fatalf("pickBackground: %v", err)
		}
		if !strings.EqualFold(filepath.Ext(track), ".mp3") {
			t.Fatalf("picked a non-mp3 track: %q", track)
		}
	}
}

func TestPickBackground_EmptyDirIsAnError(t *testing.T) {
	mixer := NewMixer(t.TempDir())
	if _, err := mixer.pickBackground(); err == nil {
		t.Fatal("expected an error for an empty music dir")
	}
}

func TestSlug(t *testing.T) {
	if got := slug("Vulpes vulpes"); got != "vulpes_vulpes" {
		t.Fatalf("unexpected slug %q", got)
	}
}
