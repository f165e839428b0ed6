package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDraft() *QuizDraft {
	return &QuizDraft{
		Title:       "Go Basics",
		Description: "Fundamentals",
		Questions: []DraftQuestion{
			{Question: "q1", Options: []string{"a", "b", "c", "d"}, Answer: "a"},
		},
	}
}

func TestQuizDraft_Validate(t *testing.T) {
	assert.NoError(t, validDraft().Validate())

	t.Run("EmptyTitle", func(t *testing.T) {
		d := validDraft()
		d.Title = ""
		assert.Error(t, d.Validate())
	})

	t.Run("NoQuestions", func(t *testing.T) {
		d := validDraft()
		d.Questions = nil
		assert.Error(t, d.Validate())
	})

	t.Run("WrongOptionCount", func(t *testing.T) {
		d := validDraft()
		d.Questions[0].Options = []string{"a", "b", "c"}
		assert.Error(t, d.Validate())

		d.Questions[0].Options = []string{"a", "b", "c", "d", "e"}
		assert.Error(t, d.Validate())
	})

	t.Run("EmptyAnswer", func(t *testing.T) {
		d := validDraft()
		d.Questions[0].Answer = ""
		assert.Error(t, d.Validate())
	})

	t.Run("AnswerOutsideOptionsIsStillValid", func(t *testing.T) {
		d := validDraft()
		d.Questions[0].Answer = "e"
		assert.NoError(t, d.Validate())
	})
}

func TestDraftQuestion_AnswerInOptions(t *testing.T) {
	q := DraftQuestion{Options: []string{"a", "b", "c", "d"}, Answer: "c"}
	assert.True(t, q.AnswerInOptions())

	q.Answer = "e"
	assert.False(t, q.AnswerInOptions())
}

func TestNewQuizFromDraft(t *testing.T) {
	draft := validDraft()
	quiz := NewQuizFromDraft("u1", "https://example.com/v", draft)

	assert.Equal(t, "u1", quiz.UserID)
	assert.Equal(t, "Go Basics", quiz.Title)
	assert.Equal(t, "https://example.com/v", quiz.VideoURL)
	assert.Len(t, quiz.Questions, 1)
	assert.Equal(t, "q1", quiz.Questions[0].QuestionText)

	// The quiz gets its own copy of the options.
	quiz.Questions[0].Options[0] = "mutated"
	assert.Equal(t, "a", draft.Questions[0].Options[0])
}
