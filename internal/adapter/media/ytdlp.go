// Package media downloads the audio track of a video URL through the yt-dlp
// executable.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"vidquiz/internal/config"
	"vidquiz/internal/domain"
	"vidquiz/internal/logger"
	"vidquiz/internal/util"

	"go.uber.org/zap"
)

// YTDLPFetcher implements domain.MediaFetcher by invoking yt-dlp with audio
// extraction enabled. Output files are keyed by a request-unique ULID, not by
// the source video id, so concurrent fetches of the same URL cannot collide.
type YTDLPFetcher struct {
	binary     string
	scratchDir string
	timeout    time.Duration
}

func NewYTDLPFetcher(cfg config.PipelineConfig) *YTDLPFetcher {
	return &YTDLPFetcher{
		binary:     cfg.YTDLPPath,
		scratchDir: cfg.ScratchDir,
		timeout:    cfg.FetchTimeout,
	}
}

// Fetch downloads the best audio-only stream for url, transcoded to mp3, and
// returns the path of the written file. The caller owns the file afterwards.
func (f *YTDLPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(f.scratchDir, 0o755); err != nil {
		return "", domain.NewFetchError(fmt.Errorf("failed to create scratch dir: %w", err))
	}

	key := util.NewULID()
	audioPath := filepath.Join(f.scratchDir, key+".mp3")

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	args := buildArgs(filepath.Join(f.scratchDir, key+".%(ext)s"), url)
	cmd := exec.CommandContext(ctx, f.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		logger.Get().Error("yt-dlp invocation failed",
			zap.String("url", url),
			zap.String("stderr", stderr.String()),
			zap.Error(err))
		return "", domain.NewFetchError(fmt.Errorf("yt-dlp: %w: %s", err, stderr.String()))
	}

	if _, err := os.Stat(audioPath); err != nil {
		return "", domain.NewFetchError(fmt.Errorf("yt-dlp reported success but %s is missing: %w", audioPath, err))
	}

	logger.Get().Info("Audio downloaded",
		zap.String("url", url),
		zap.String("path", audioPath),
		zap.Duration("duration", time.Since(start)))
	return audioPath, nil
}

// buildArgs assembles the yt-dlp invocation: best audio-only stream,
// transcoded to mp3 at 192K, single video, quiet output.
func buildArgs(outputTemplate, url string) []string {
	return []string{
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"--format", "bestaudio/best",
		"--no-playlist",
		"--quiet",
		"--no-warnings",
		"--output", outputTemplate,
		url,
	}
}
