package service

import (
	"context"
	"errors"

	"vidquiz/internal/domain"
	"vidquiz/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz generation and management.
type QuizService interface {
	CreateQuizFromURL(ctx context.Context, userID, videoURL string) (*domain.Quiz, error)
	ListQuizzes(ctx context.Context, userID string) ([]*domain.Quiz, error)
	GetQuiz(ctx context.Context, userID, quizID string) (*domain.Quiz, error)
	UpdateQuiz(ctx context.Context, userID, quizID string, title, description *string) (*domain.Quiz, error)
	DeleteQuiz(ctx context.Context, userID, quizID string) error
}

type quizServiceImpl struct {
	fetcher     domain.MediaFetcher
	transcriber domain.Transcriber
	synthesizer domain.QuizSynthesizer
	quizRepo    domain.QuizRepository
	txManager   domain.TransactionManager
}

// NewQuizService creates a new instance of QuizService.
func NewQuizService(
	fetcher domain.MediaFetcher,
	transcriber domain.Transcriber,
	synthesizer domain.QuizSynthesizer,
	quizRepo domain.QuizRepository,
	txManager domain.TransactionManager,
) QuizService {
	return &quizServiceImpl{
		fetcher:     fetcher,
		transcriber: transcriber,
		synthesizer: synthesizer,
		quizRepo:    quizRepo,
		txManager:   txManager,
	}
}

// CreateQuizFromURL runs the full pipeline for one video: download the
// audio, transcribe it, synthesize a quiz from the transcript, then persist
// quiz and questions in a single transaction. Each stage must succeed before
// the next starts; a stage failure surfaces as a stage-coded error and
// nothing is written.
func (s *quizServiceImpl) CreateQuizFromURL(ctx context.Context, userID, videoURL string) (*domain.Quiz, error) {
	appLogger := logger.Get()
	appLogger.Info("Starting quiz pipeline", zap.String("userID", userID), zap.String("videoURL", videoURL))

	// Adapters already return stage-coded errors; only wrap when the stage
	// surfaces a bare error, so a failure carries its message once.
	audioPath, err := s.fetcher.Fetch(ctx, videoURL)
	if err != nil {
		appLogger.Error("Audio fetch stage failed", zap.String("videoURL", videoURL), zap.Error(err))
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewFetchError(err)
	}

	transcript, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		appLogger.Error("Transcription stage failed", zap.String("audioPath", audioPath), zap.Error(err))
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewTranscriptionError(err)
	}

	draft, err := s.synthesizer.Synthesize(ctx, transcript)
	if err != nil {
		appLogger.Error("Synthesis stage failed", zap.Error(err))
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewSynthesisError(err)
	}

	quiz := domain.NewQuizFromDraft(userID, videoURL, draft)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.quizRepo.SaveQuiz(txCtx, quiz); err != nil {
			return err
		}
		return s.quizRepo.SaveQuestions(txCtx, quiz.ID, quiz.Questions)
	})
	if err != nil {
		appLogger.Error("Failed to persist quiz", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewInternalError("failed to save quiz", err)
	}

	appLogger.Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("userID", userID),
		zap.Int("questionCount", len(quiz.Questions)))
	return quiz, nil
}

// ListQuizzes returns the caller's quizzes, newest first.
func (s *quizServiceImpl) ListQuizzes(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	quizzes, err := s.quizRepo.ListQuizzesByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}
	return quizzes, nil
}

// GetQuiz returns one quiz owned by the caller. A quiz that exists but
// belongs to someone else is indistinguishable from a missing one.
func (s *quizServiceImpl) GetQuiz(ctx context.Context, userID, quizID string) (*domain.Quiz, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, userID, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	return quiz, nil
}

// UpdateQuiz applies a partial update to title and description. Fields left
// nil are untouched.
func (s *quizServiceImpl) UpdateQuiz(ctx context.Context, userID, quizID string, title, description *string) (*domain.Quiz, error) {
	quiz, err := s.GetQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		quiz.Title = *title
	}
	if description != nil {
		quiz.Description = *description
	}

	found, err := s.quizRepo.UpdateQuiz(ctx, quiz)
	if err != nil {
		return nil, domain.NewInternalError("failed to update quiz", err)
	}
	if !found {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	return quiz, nil
}

// DeleteQuiz removes a quiz and its questions. Both deletes run in one
// transaction so a failure after the questions delete leaves no quiz
// stripped of its questions.
func (s *quizServiceImpl) DeleteQuiz(ctx context.Context, userID, quizID string) error {
	var found bool
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		found, err = s.quizRepo.DeleteQuiz(txCtx, userID, quizID)
		return err
	})
	if err != nil {
		return domain.NewInternalError("failed to delete quiz", err)
	}
	if !found {
		return domain.NewQuizNotFoundError(quizID)
	}
	logger.Get().Info("Quiz deleted", zap.String("quizID", quizID), zap.String("userID", userID))
	return nil
}
