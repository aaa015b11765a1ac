package audio

import (
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
)

// Module wires the audio production pipeline. When no TTS endpoint is
// configured the module stays disabled and callers simply skip audio.
type Module struct {
	service *Service
	enabled bool
}

func NewModule(cfg config.AudioConfig, log *logger.Logger) (*Module, error) {
	if !cfg.IsAudioEnabled() {
		log.Warn("audio module disabled: TTS_BASE_URL not configured")
		return &Module{enabled: false}, nil
	}

	svc, err := NewService(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Module{service: svc, enabled: true}, nil
}

func (m *Module) Name() string { return "audio" }

func (m *Module) IsEnabled() bool { return m.enabled }

// Service returns the audio service, or nil when the module is disabled.
func (m *Module) Service() *Service {
	if !m.enabled {
		return nil
	}
	return m.service
}
