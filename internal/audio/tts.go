package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sanctuary_backend/platform/logger"
)

// ttsRequest is the synthesis request sent to the TTS sidecar.
type ttsRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// TTSClient talks to the text-to-speech sidecar service: narration text in,
// encoded audio bytes out.
type TTSClient struct {
	http    *http.Client
	baseURL string
	voice   string
	log     *logger.Logger
}

// NewTTSClient creates a TTS client.
func NewTTSClient(baseURL, voice string, log *logger.Logger) *TTSClient {
	return &TTSClient{
		http:    &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
		voice:   voice,
		log:     log,
	}
}

// Synthesize converts text to speech and returns the audio bytes.
func (c *TTSClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(ttsRequest{Text: text, Voice: c.voice})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/synthesize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.UpstreamError("tts", "synthesize", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamStatus("tts", "synthesize", resp.StatusCode)
		return nil, fmt.Errorf("tts status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
