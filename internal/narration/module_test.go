package narration

import (
	"context"
	"testing"

	"sanctuary_backend/platform/logger"
)

type testGeminiConfig struct {
	apiKey string
}

func (c testGeminiConfig) GetGeminiAPIKey() string  { return c.apiKey }
func (c testGeminiConfig) GetGeminiModel() string   { return "gemini-1.5-flash" }
func (c testGeminiConfig) IsNarrationEnabled() bool { return c.apiKey != "" }

func TestNewModule_DisabledWithoutAPIKey(t *testing.T) {
	mod, err := NewModule(context.Background(), testGeminiConfig{}, logger.New("test"))
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}

	if mod.IsEnabled() {
		t.Fatal("expected module disabled without an API key")
	}
	if mod.Service() != nil {
		t.Fatal("expected nil service when disabled")
	}
}

func TestNilModule_IsDisabled(t *testing.T) {
	var mod *Module
	if mod.IsEnabled() {
		t.Fatal("nil module must report disabled")
	}
	if mod.Service() != nil {
		t.Fatal("nil module must return nil service")
	}
}
