package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"vidquiz/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestSaveQuiz_AssignsIDAndTimestamps(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(`INSERT INTO quizzes`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	quiz := &domain.Quiz{UserID: "u1", Title: "T", VideoURL: "https://example.com/v"}
	err := repo.SaveQuiz(context.Background(), quiz)

	assert.NoError(t, err)
	assert.NotEmpty(t, quiz.ID)
	assert.False(t, quiz.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveQuestions_SetsQuizIDOnEveryRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(`INSERT INTO questions`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO questions`).WillReturnResult(sqlmock.NewResult(0, 1))

	questions := []*domain.Question{
		{QuestionText: "q1", Options: []string{"a", "b", "c", "d"}, Answer: "a"},
		{QuestionText: "q2", Options: []string{"a", "b", "c", "d"}, Answer: "b"},
	}
	err := repo.SaveQuestions(context.Background(), "quiz1", questions)

	assert.NoError(t, err)
	for _, q := range questions {
		assert.Equal(t, "quiz1", q.QuizID)
		assert.NotEmpty(t, q.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollsBackWhenQuestionInsertFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)
	txm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO quizzes`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO questions`).WillReturnError(errors.New("ORA-12899: value too large"))
	mock.ExpectRollback()

	quiz := &domain.Quiz{UserID: "u1", Title: "T", VideoURL: "https://example.com/v"}
	questions := []*domain.Question{
		{QuestionText: "q1", Options: []string{"a", "b", "c", "d"}, Answer: "a"},
	}

	err := txm.WithTransaction(context.Background(), func(txCtx context.Context) error {
		if err := repo.SaveQuiz(txCtx, quiz); err != nil {
			return err
		}
		return repo.SaveQuestions(txCtx, quiz.ID, questions)
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_CommitsWhenAllInsertsSucceed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)
	txm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO quizzes`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO questions`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	quiz := &domain.Quiz{UserID: "u1", Title: "T", VideoURL: "https://example.com/v"}
	questions := []*domain.Question{
		{QuestionText: "q1", Options: []string{"a", "b", "c", "d"}, Answer: "a"},
	}

	err := txm.WithTransaction(context.Background(), func(txCtx context.Context) error {
		if err := repo.SaveQuiz(txCtx, quiz); err != nil {
			return err
		}
		return repo.SaveQuestions(txCtx, quiz.ID, questions)
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByID_FiltersOnOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)
	now := time.Now()

	quizRows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "video_url", "created_at", "updated_at"}).
		AddRow("quiz1", "u1", "T", "D", "https://example.com/v", now, now)
	mock.ExpectQuery(`SELECT .+ FROM quizzes WHERE id = :1 AND user_id = :2`).
		WithArgs("quiz1", "u1").
		WillReturnRows(quizRows)

	questionRows := sqlmock.NewRows([]string{"id", "quiz_id", "question_text", "options", "answer", "created_at", "updated_at"}).
		AddRow("q1", "quiz1", "What?", `["a","b","c","d"]`, "a", now, now)
	mock.ExpectQuery(`SELECT .+ FROM questions WHERE quiz_id = :1`).
		WithArgs("quiz1").
		WillReturnRows(questionRows)

	quiz, err := repo.GetQuizByID(context.Background(), "u1", "quiz1")

	assert.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Equal(t, "quiz1", quiz.ID)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, []string{"a", "b", "c", "d"}, quiz.Questions[0].Options)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByID_NullDescriptionReadsAsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)
	now := time.Now()

	// Oracle stores an empty VARCHAR2 as NULL, so a quiz saved with an empty
	// description comes back with a NULL column.
	quizRows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "video_url", "created_at", "updated_at"}).
		AddRow("quiz1", "u1", "T", nil, "https://example.com/v", now, now)
	mock.ExpectQuery(`SELECT .+ FROM quizzes WHERE id = :1 AND user_id = :2`).
		WithArgs("quiz1", "u1").
		WillReturnRows(quizRows)
	mock.ExpectQuery(`SELECT .+ FROM questions WHERE quiz_id = :1`).
		WithArgs("quiz1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "quiz_id", "question_text", "options", "answer", "created_at", "updated_at"}))

	quiz, err := repo.GetQuizByID(context.Background(), "u1", "quiz1")

	assert.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Empty(t, quiz.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByID_NoRowMeansNilNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT .+ FROM quizzes WHERE id = :1 AND user_id = :2`).
		WithArgs("quizOfUserA", "userB").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "description", "video_url", "created_at", "updated_at"}))

	quiz, err := repo.GetQuizByID(context.Background(), "userB", "quizOfUserA")

	assert.NoError(t, err)
	assert.Nil(t, quiz)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListQuizzesByUser_OrdersNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)
	now := time.Now()

	quizRows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "video_url", "created_at", "updated_at"}).
		AddRow("quiz2", "u1", "Newer", "", "https://example.com/2", now, now).
		AddRow("quiz1", "u1", "Older", "", "https://example.com/1", now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT .+ FROM quizzes WHERE user_id = :1 ORDER BY created_at DESC`).
		WithArgs("u1").
		WillReturnRows(quizRows)

	emptyQuestions := []string{"id", "quiz_id", "question_text", "options", "answer", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT .+ FROM questions`).WithArgs("quiz2").WillReturnRows(sqlmock.NewRows(emptyQuestions))
	mock.ExpectQuery(`SELECT .+ FROM questions`).WithArgs("quiz1").WillReturnRows(sqlmock.NewRows(emptyQuestions))

	quizzes, err := repo.ListQuizzesByUser(context.Background(), "u1")

	assert.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, "quiz2", quizzes[0].ID)
	assert.Equal(t, "quiz1", quizzes[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuiz_ReportsWhetherARowMatched(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(`UPDATE quizzes SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	found, err := repo.UpdateQuiz(context.Background(), &domain.Quiz{ID: "quiz1", UserID: "u1", Title: "New"})
	assert.NoError(t, err)
	assert.True(t, found)

	mock.ExpectExec(`UPDATE quizzes SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	found, err = repo.UpdateQuiz(context.Background(), &domain.Quiz{ID: "missing", UserID: "u1", Title: "New"})
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteQuiz_RemovesQuestionsThenQuiz(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(`DELETE FROM questions WHERE quiz_id IN`).
		WithArgs("quiz1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM quizzes WHERE id = :1 AND user_id = :2`).
		WithArgs("quiz1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := repo.DeleteQuiz(context.Background(), "u1", "quiz1")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollsBackWhenQuizDeleteFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)
	txm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM questions WHERE quiz_id IN`).
		WithArgs("quiz1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM quizzes WHERE id = :1 AND user_id = :2`).
		WithArgs("quiz1", "u1").
		WillReturnError(errors.New("ORA-00060: deadlock detected"))
	mock.ExpectRollback()

	err := txm.WithTransaction(context.Background(), func(txCtx context.Context) error {
		_, err := repo.DeleteQuiz(txCtx, "u1", "quiz1")
		return err
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteQuiz_NotOwnedDeletesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectExec(`DELETE FROM questions WHERE quiz_id IN`).
		WithArgs("quizOfUserA", "userB").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM quizzes WHERE id = :1 AND user_id = :2`).
		WithArgs("quizOfUserA", "userB").
		WillReturnResult(sqlmock.NewResult(0, 0))

	found, err := repo.DeleteQuiz(context.Background(), "userB", "quizOfUserA")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}
