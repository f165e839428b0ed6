package domain

import (
	"fmt"
	"time"
)

// Quiz represents a generated quiz owned by a single user. The owner is set
// at creation and never reassigned.
type Quiz struct {
	ID          string
	UserID      string
	Title       string
	Description string
	VideoURL    string
	Questions   []*Question
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Question represents a multiple-choice question belonging to a quiz.
// Its lifetime is bounded by the quiz: deleting a quiz removes its questions.
type Question struct {
	ID           string
	QuizID       string
	QuestionText string
	Options      []string
	Answer       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// QuizDraft is the synthesized-but-not-yet-persisted quiz structure produced
// by the synthesizer. Field names follow the JSON schema demanded from the
// model verbatim.
type QuizDraft struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []DraftQuestion `json:"questions"`
}

// DraftQuestion is a single question inside a QuizDraft.
type DraftQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// optionsPerQuestion is fixed by the generation contract, not by storage.
const optionsPerQuestion = 4

// Validate checks the structural contract of a synthesized draft: non-empty
// title, at least one question, and exactly four options per question.
// Whether Answer matches one of Options is deliberately NOT enforced here;
// use AnswerInOptions to detect and log the mismatch instead.
func (d *QuizDraft) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("draft has no title")
	}
	if len(d.Questions) == 0 {
		return fmt.Errorf("draft has no questions")
	}
	for i, q := range d.Questions {
		if q.Question == "" {
			return fmt.Errorf("question %d has no text", i+1)
		}
		if len(q.Options) != optionsPerQuestion {
			return fmt.Errorf("question %d has %d options, want %d", i+1, len(q.Options), optionsPerQuestion)
		}
		if q.Answer == "" {
			return fmt.Errorf("question %d has no answer", i+1)
		}
	}
	return nil
}

// AnswerInOptions reports whether the answer string equals one of the
// question's options.
func (q *DraftQuestion) AnswerInOptions() bool {
	for _, opt := range q.Options {
		if opt == q.Answer {
			return true
		}
	}
	return false
}

// NewQuizFromDraft builds a Quiz owned by userID from a synthesized draft.
// IDs and timestamps are assigned by the repository on save.
func NewQuizFromDraft(userID, videoURL string, draft *QuizDraft) *Quiz {
	quiz := &Quiz{
		UserID:      userID,
		Title:       draft.Title,
		Description: draft.Description,
		VideoURL:    videoURL,
	}
	for _, dq := range draft.Questions {
		quiz.Questions = append(quiz.Questions, &Question{
			QuestionText: dq.Question,
			Options:      append([]string(nil), dq.Options...),
			Answer:       dq.Answer,
		})
	}
	return quiz
}
