// Package synthesizer generates quiz drafts from transcripts through an LLM.
package synthesizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidquiz/internal/config"
	"vidquiz/internal/domain"
	"vidquiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const quizPromptTemplate = `Based on the following transcript, create a quiz with exactly 10 questions.
Each question should have 4 answer options (A, B, C, D) and one correct answer.

Return the result as a JSON object with the following structure:
{
    "title": "Quiz title based on the content",
    "description": "Brief description of what the quiz covers",
    "questions": [
        {
            "question": "Question text",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "answer": "The correct option text"
        }
    ]
}

Transcript:
%s

Return ONLY the JSON object, no additional text.`

// TextModel is the narrow slice of the langchaingo client the synthesizer
// needs; tests substitute a fake.
type TextModel interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// OpenAISynthesizer implements domain.QuizSynthesizer with an OpenAI chat
// model via langchaingo.
type OpenAISynthesizer struct {
	llm     TextModel
	timeout time.Duration
}

// NewOpenAISynthesizer builds the LLM client. It fails when no API key is
// configured, so a misconfigured deployment surfaces at startup rather than
// on the first request.
func NewOpenAISynthesizer(cfg config.OpenAIConfig, timeout time.Duration) (*OpenAISynthesizer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is not configured")
	}
	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI LLM client: %w", err)
	}
	return &OpenAISynthesizer{llm: llm, timeout: timeout}, nil
}

// NewWithModel wires an already-built model; used by tests.
func NewWithModel(llm TextModel, timeout time.Duration) *OpenAISynthesizer {
	return &OpenAISynthesizer{llm: llm, timeout: timeout}
}

// Synthesize prompts the model with the transcript and parses the response
// into a QuizDraft. Markdown code fences around the JSON are stripped before
// parsing.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, transcript string) (*domain.QuizDraft, error) {
	l := logger.Get()

	prompt := fmt.Sprintf(quizPromptTemplate, transcript)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.llm.Call(ctx, prompt, llms.WithTemperature(0.2))
	if err != nil {
		l.Error("LLM call failed during quiz synthesis", zap.Error(err))
		return nil, domain.NewSynthesisError(fmt.Errorf("llm call failed: %w", err))
	}

	cleaned := stripCodeFence(raw)

	var draft domain.QuizDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		l.Error("Failed to unmarshal LLM response",
			zap.Error(err),
			zap.String("response_snippet", cleaned[:min(len(cleaned), 200)]))
		return nil, domain.NewSynthesisError(fmt.Errorf("failed to parse LLM response: %w", err))
	}

	if err := draft.Validate(); err != nil {
		return nil, domain.NewSynthesisError(fmt.Errorf("draft violates generation contract: %w", err))
	}

	// The answer-matches-an-option contract is trusted, not enforced; a
	// mismatch is logged so drift in model behavior stays visible.
	for i := range draft.Questions {
		if !draft.Questions[i].AnswerInOptions() {
			l.Warn("Synthesized answer is not one of the options",
				zap.Int("question_index", i),
				zap.String("answer", draft.Questions[i].Answer))
		}
	}

	l.Info("Quiz synthesized",
		zap.String("title", draft.Title),
		zap.Int("questions", len(draft.Questions)),
		zap.Duration("duration", time.Since(start)))
	return &draft, nil
}

// stripCodeFence removes a leading ```json or ``` marker and a trailing ```
// from a model response.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
