package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vidquiz/internal/domain"
	"vidquiz/internal/repository/models"
	"vidquiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.
// All reads and writes are ownership-scoped: queries filter on user_id so a
// quiz belonging to someone else is indistinguishable from a missing one.
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter.
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

const quizColumns = `id, user_id, title, description, video_url, created_at, updated_at`

const questionColumns = `id, quiz_id, question_text, options, answer, created_at, updated_at`

// SaveQuiz inserts the quiz row, assigning ID and timestamps.
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	now := time.Now()
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	query := `INSERT INTO quizzes (id, user_id, title, description, video_url, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7)`

	executor := GetExecutor(ctx, a.db)
	_, err := executor.ExecContext(ctx, query,
		quiz.ID,
		quiz.UserID,
		quiz.Title,
		util.StringToNullString(quiz.Description),
		quiz.VideoURL,
		quiz.CreatedAt,
		quiz.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// SaveQuestions inserts the question rows for a quiz. Called inside the same
// transaction as SaveQuiz so a mid-loop failure rolls everything back.
func (a *QuizDatabaseAdapter) SaveQuestions(ctx context.Context, quizID string, questions []*domain.Question) error {
	query := `INSERT INTO questions (id, quiz_id, question_text, options, answer, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7)`

	executor := GetExecutor(ctx, a.db)
	now := time.Now()
	for _, q := range questions {
		if q.ID == "" {
			q.ID = util.NewULID()
		}
		q.QuizID = quizID
		q.CreatedAt = now
		q.UpdatedAt = now

		_, err := executor.ExecContext(ctx, query,
			q.ID,
			q.QuizID,
			q.QuestionText,
			models.StringSlice(q.Options),
			q.Answer,
			q.CreatedAt,
			q.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save question for quiz %s: %w", quizID, err)
		}
	}
	return nil
}

// GetQuizByID returns the quiz with its questions, or (nil, nil) when the
// quiz does not exist or is not owned by userID.
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, userID, quizID string) (*domain.Quiz, error) {
	var model models.Quiz
	query := fmt.Sprintf(`SELECT %s FROM quizzes WHERE id = :1 AND user_id = :2`, quizColumns)

	executor := GetExecutor(ctx, a.db)
	err := executor.GetContext(ctx, &model, query, quizID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", quizID, err)
	}

	quiz := toDomainQuiz(&model)
	questions, err := a.getQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions
	return quiz, nil
}

// ListQuizzesByUser returns all quizzes owned by userID, newest first, with
// nested questions.
func (a *QuizDatabaseAdapter) ListQuizzesByUser(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	var quizModels []models.Quiz
	query := fmt.Sprintf(`SELECT %s FROM quizzes WHERE user_id = :1 ORDER BY created_at DESC`, quizColumns)

	executor := GetExecutor(ctx, a.db)
	if err := executor.SelectContext(ctx, &quizModels, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes for user %s: %w", userID, err)
	}

	quizzes := make([]*domain.Quiz, 0, len(quizModels))
	for i := range quizModels {
		quiz := toDomainQuiz(&quizModels[i])
		questions, err := a.getQuestions(ctx, quiz.ID)
		if err != nil {
			return nil, err
		}
		quiz.Questions = questions
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

// UpdateQuiz writes the patchable quiz fields. Returns false when no row
// matched (missing or not owned).
func (a *QuizDatabaseAdapter) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) (bool, error) {
	quiz.UpdatedAt = time.Now()

	query := `UPDATE quizzes SET title = :1, description = :2, updated_at = :3
	          WHERE id = :4 AND user_id = :5`

	executor := GetExecutor(ctx, a.db)
	result, err := executor.ExecContext(ctx, query,
		quiz.Title,
		util.StringToNullString(quiz.Description),
		quiz.UpdatedAt,
		quiz.ID,
		quiz.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update quiz %s: %w", quiz.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// DeleteQuiz removes the quiz and its questions. The questions delete is
// explicit even though the schema also declares ON DELETE CASCADE, so the
// behavior does not depend on the foreign key being present. Returns false
// when the quiz was missing or not owned.
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, userID, quizID string) (bool, error) {
	executor := GetExecutor(ctx, a.db)

	if _, err := executor.ExecContext(ctx,
		`DELETE FROM questions WHERE quiz_id IN (SELECT id FROM quizzes WHERE id = :1 AND user_id = :2)`,
		quizID, userID,
	); err != nil {
		return false, fmt.Errorf("failed to delete questions for quiz %s: %w", quizID, err)
	}

	result, err := executor.ExecContext(ctx,
		`DELETE FROM quizzes WHERE id = :1 AND user_id = :2`,
		quizID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete quiz %s: %w", quizID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (a *QuizDatabaseAdapter) getQuestions(ctx context.Context, quizID string) ([]*domain.Question, error) {
	var questionModels []models.Question
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE quiz_id = :1 ORDER BY id`, questionColumns)

	executor := GetExecutor(ctx, a.db)
	if err := executor.SelectContext(ctx, &questionModels, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	questions := make([]*domain.Question, 0, len(questionModels))
	for i := range questionModels {
		questions = append(questions, toDomainQuestion(&questionModels[i]))
	}
	return questions, nil
}

func toDomainQuiz(model *models.Quiz) *domain.Quiz {
	return &domain.Quiz{
		ID:          model.ID,
		UserID:      model.UserID,
		Title:       model.Title,
		Description: model.Description.String,
		VideoURL:    model.VideoURL,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toDomainQuestion(model *models.Question) *domain.Question {
	return &domain.Question{
		ID:           model.ID,
		QuizID:       model.QuizID,
		QuestionText: model.QuestionText,
		Options:      []string(model.Options),
		Answer:       model.Answer,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
