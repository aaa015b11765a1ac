// Package narration generates documentary-style narration for a species
// via the Gemini API.
package narration

import (
	"context"
	"fmt"

	"sanctuary_backend/platform/cache"
	"sanctuary_backend/platform/config"
	"sanctuary_backend/platform/logger"

	"google.golang.org/genai"
)

const promptTemplate = "Acting as David Attenborough, narrate the life of %s without any markdown formatting. Do not mention where the specie stays or is found."

// Service produces narration text, memoized per species for the process
// lifetime. Generation is by far the slowest step of the streaming
// pipeline, so cache hits matter.
type Service struct {
	client *genai.Client
	model  string
	memo   *cache.Memo[string]
	log    *logger.Logger
}

// NewService creates the narration service.
func NewService(ctx context.Context, cfg config.GeminiConfig, log *logger.Logger) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	memo, err := cache.NewMemo[string](256)
	if err != nil {
		return nil, err
	}

	return &Service{
		client: client,
		model:  cfg.GetGeminiModel(),
		memo:   memo,
		log:    log,
	}, nil
}

// Narrate returns narration prose for the species, generating it on first
// request.
func (s *Service) Narrate(ctx context.Context, species string) (string, error) {
	return s.memo.GetOrCompute(species, func() (string, error) {
		return s.generate(ctx, species)
	})
}

func (s *Service) generate(ctx context.Context, species string) (string, error) {
	prompt := fmt.Sprintf(promptTemplate, species)

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		s.log.UpstreamError("gemini", "generate_content", err)
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty narration for %q", species)
	}
	return text, nil
}
