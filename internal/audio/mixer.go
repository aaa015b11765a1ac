package audio

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Mixer overlays a narration track with looping background music via
// ffmpeg. Background volume is reduced and faded so the narration stays
// intelligible.
type Mixer struct {
	musicDir string
}

const (
	backgroundVolumeDB = -10
	fadeSeconds        = 3
)

// NewMixer creates a mixer drawing background tracks from musicDir.
func NewMixer(musicDir string) *Mixer {
	return &Mixer{musicDir: musicDir}
}

// pickBackground returns a random .mp3 from the music directory.
func (m *Mixer) pickBackground() (string, error) {
	entries, err := os.ReadDir(m.musicDir)
	if err != nil {
		return "", fmt.Errorf("read music dir: %w", err)
	}

	tracks := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".mp3") {
			tracks = append(tracks, filepath.Join(m.musicDir, entry.Name()))
		}
	}
	if len(tracks) == 0 {
		return "", fmt.Errorf("no audio files found in %s", m.musicDir)
	}

	return tracks[rand.Intn(len(tracks))], nil
}

// Mix overlays narrationPath with a random background track and writes the
// result to outputPath.
func (m *Mixer) Mix(ctx context.Context, narrationPath, outputPath string) error {
	background, err := m.pickBackground()
	if err != nil {
		return err
	}

	filter := fmt.Sprintf(
		"[1:a]volume=%ddB,afade=t=in:d=%d,afade=t=out:st=0:d=%d[bg];[0:a][bg]amix=inputs=2:duration=first:dropout_transition=0[out]",
		backgroundVolumeDB, fadeSeconds, fadeSeconds,
	)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", narrationPath,
		"-stream_loop", "-1",
		"-i", background,
		"-filter_complex", filter,
		"-map", "[out]",
		"-shortest",
		outputPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg mix: %w: %s", err, truncate(string(out), 300))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
