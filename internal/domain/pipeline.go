package domain

import "context"

// MediaFetcher retrieves a local audio file for a source video URL.
// Implementations own the scratch file until they hand the path over.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Transcriber converts an audio file into plain text. Implementations must
// delete the input file after use regardless of outcome.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// QuizSynthesizer turns a transcript into a structured quiz draft.
type QuizSynthesizer interface {
	Synthesize(ctx context.Context, transcript string) (*QuizDraft, error)
}
