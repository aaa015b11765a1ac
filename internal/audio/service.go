// Package audio is the boundary to the text-to-speech and audio-mixing
// collaborators. Synthesis and mixing are blocking work, so they run on a
// small dedicated worker pool instead of the request goroutines.
package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"
)

// Service produces a mixed narration track for a species: TTS synthesis
// followed by a background-music overlay.
type Service struct {
	tts    *TTSClient
	mixer  *Mixer
	outDir string
	slots  chan struct{}
	log    *logger.Logger
}

// NewService creates the audio service with a pool of cfg.GetAudioWorkers()
// concurrent jobs.
func NewService(cfg config.AudioConfig, log *logger.Logger) (*Service, error) {
	if err := os.MkdirAll(cfg.GetAudioOutputDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create audio output dir: %w", err)
	}

	workers := cfg.GetAudioWorkers()
	if workers < 1 {
		workers = 1
	}

	return &Service{
		tts:    NewTTSClient(cfg.GetTTSBaseURL(), cfg.GetTTSVoice(), log),
		mixer:  NewMixer(cfg.GetBackgroundMusicDir()),
		outDir: cfg.GetAudioOutputDir(),
		slots:  make(chan struct{}, workers),
		log:    log,
	}, nil
}

// Produce synthesizes the narration text and mixes it with background
// music, returning the path of the mixed file. Blocks until a worker slot
// is free or the context is cancelled.
func (s *Service) Produce(ctx context.Context, species, text string) (string, error) {
	select {
	case s.slots <- struct{}{}:
		defer func() { <-s.slots }()
	case <-ctx.Done():
		return "", ctx.Err()
	}

	speech, err := s.tts.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}

	base := slug(species)
	rawPath := filepath.Join(s.outDir, base+"_narration.mp3")
	if err := os.WriteFile(rawPath, speech, 0o644); err != nil {
		return "", err
	}

	mixedPath := filepath.Join(s.outDir, base+"_mixed.mp3")
	if err := s.mixer.Mix(ctx, rawPath, mixedPath); err != nil {
		return "", err
	}

	return mixedPath, nil
}

func slug(species string) string {
	return strings.ToLower(strings.ReplaceAll(species, " ", "_"))
}
