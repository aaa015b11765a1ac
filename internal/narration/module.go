package narration

import (
	"context"

	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
)

// Module is the narration bounded context.
type Module struct {
	service *Service
	enabled bool
}

// NewModule creates and initializes the narration module.
// Returns a disabled module if no Gemini API key is configured
// (graceful degradation).
func NewModule(ctx context.Context, cfg config.GeminiConfig, log *logger.Logger) (*Module, error) {
	if !cfg.IsNarrationEnabled() {
		log.Info("narration module disabled: GEMINI_API_KEY not configured")
		return &Module{enabled: false}, nil
	}

	svc, err := NewService(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	log.Info("narration module initialized", "model", cfg.GetGeminiModel())

	return &Module{
		service: svc,
		enabled: true,
	}, nil
}

// Service returns the narration service for external use.
// Returns nil if the module is disabled.
func (m *Module) Service() *Service {
	if m == nil || !m.enabled {
		return nil
	}
	return m.service
}

// IsEnabled returns true if the narration module is configured and enabled.
func (m *Module) IsEnabled() bool {
	return m != nil && m.enabled
}
