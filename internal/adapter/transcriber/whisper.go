// Package transcriber converts audio files to text through the whisper CLI.
package transcriber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"vidquiz/internal/config"
	"vidquiz/internal/domain"
	"vidquiz/internal/logger"

	"go.uber.org/zap"
)

// WhisperTranscriber implements domain.Transcriber by invoking the whisper
// executable. Tool resolution happens once per process, lazily and
// thread-safely, instead of per call.
type WhisperTranscriber struct {
	binary  string
	model   string
	timeout time.Duration

	resolveOnce sync.Once
	resolvedBin string
	resolveErr  error
}

func NewWhisperTranscriber(cfg config.PipelineConfig) *WhisperTranscriber {
	return &WhisperTranscriber{
		binary:  cfg.WhisperPath,
		model:   cfg.WhisperModel,
		timeout: cfg.TranscribeTimeout,
	}
}

// Transcribe runs speech recognition on audioPath and returns the transcript
// text. The input audio file is deleted before returning, on success and on
// failure alike, to bound scratch-storage growth.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	defer func() {
		if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
			logger.Get().Warn("Failed to remove scratch audio file",
				zap.String("path", audioPath),
				zap.Error(err))
		}
	}()

	bin, err := t.resolve()
	if err != nil {
		return "", domain.NewTranscriptionError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	outputDir := filepath.Dir(audioPath)
	cmd := exec.CommandContext(ctx, bin,
		audioPath,
		"--model", t.model,
		"--output_format", "txt",
		"--output_dir", outputDir,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		logger.Get().Error("whisper invocation failed",
			zap.String("audio_path", audioPath),
			zap.String("stderr", stderr.String()),
			zap.Error(err))
		return "", domain.NewTranscriptionError(fmt.Errorf("whisper: %w: %s", err, stderr.String()))
	}

	base := filepath.Base(audioPath)
	txtPath := filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+".txt")
	defer os.Remove(txtPath)

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", domain.NewTranscriptionError(fmt.Errorf("failed to read transcript %s: %w", txtPath, err))
	}

	transcript := strings.TrimSpace(string(data))
	logger.Get().Info("Audio transcribed",
		zap.String("audio_path", audioPath),
		zap.Int("transcript_chars", len(transcript)),
		zap.Duration("duration", time.Since(start)))
	return transcript, nil
}

// resolve locates the whisper binary exactly once for the process lifetime.
func (t *WhisperTranscriber) resolve() (string, error) {
	t.resolveOnce.Do(func() {
		bin, err := exec.LookPath(t.binary)
		if err != nil {
			t.resolveErr = fmt.Errorf("whisper binary %q not found: %w", t.binary, err)
			return
		}
		t.resolvedBin = bin
		logger.Get().Info("Whisper tool resolved",
			zap.String("binary", bin),
			zap.String("model", t.model))
	})
	return t.resolvedBin, t.resolveErr
}
