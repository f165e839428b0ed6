package dto

import (
	"time"

	"vidquiz/internal/domain"
)

// CreateQuizRequest is the request body for generating a quiz from a video URL.
type CreateQuizRequest struct {
	URL string `json:"url"`
}

// UpdateQuizRequest is the request body for a partial quiz update. Only
// quiz-level fields can be patched; questions have no edit surface.
type UpdateQuizRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// QuestionResponse represents a question in the API response.
type QuestionResponse struct {
	ID              string    `json:"id"`
	QuestionTitle   string    `json:"question_title"`
	QuestionOptions []string  `json:"question_options"`
	Answer          string    `json:"answer"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// QuizResponse represents a quiz with its nested questions.
type QuizResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	VideoURL    string             `json:"video_url"`
	Questions   []QuestionResponse `json:"questions"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// NewQuizResponse maps a domain quiz onto its API representation.
func NewQuizResponse(quiz *domain.Quiz) QuizResponse {
	resp := QuizResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		VideoURL:    quiz.VideoURL,
		Questions:   make([]QuestionResponse, 0, len(quiz.Questions)),
		CreatedAt:   quiz.CreatedAt,
		UpdatedAt:   quiz.UpdatedAt,
	}
	for _, q := range quiz.Questions {
		resp.Questions = append(resp.Questions, QuestionResponse{
			ID:              q.ID,
			QuestionTitle:   q.QuestionText,
			QuestionOptions: q.Options,
			Answer:          q.Answer,
			CreatedAt:       q.CreatedAt,
			UpdatedAt:       q.UpdatedAt,
		})
	}
	return resp
}

// NewQuizListResponse maps a slice of domain quizzes.
func NewQuizListResponse(quizzes []*domain.Quiz) []QuizResponse {
	out := make([]QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		out = append(out, NewQuizResponse(quiz))
	}
	return out
}
