package handler

import (
	"vidquiz/internal/domain"
	"vidquiz/internal/dto"
	"vidquiz/internal/middleware"
	"vidquiz/internal/service"
	"vidquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler exposes quiz generation and the owner-scoped CRUD surface.
type QuizHandler struct {
	quizService service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func userIDFrom(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", domain.NewUnauthorizedError("Authentication required")
	}
	return userID, nil
}

// CreateQuiz accepts a video URL and runs the full generation pipeline
// synchronously. The response is the persisted quiz with its questions.
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if err := validation.ValidateCreateQuizRequest(&req); err != nil {
		return err
	}

	quiz, err := h.quizService.CreateQuizFromURL(c.Context(), userID, req.URL)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewQuizResponse(quiz))
}

// ListQuizzes returns all quizzes owned by the caller, newest first.
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	quizzes, err := h.quizService.ListQuizzes(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewQuizListResponse(quizzes))
}

// GetQuiz returns a single quiz owned by the caller.
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	quiz, err := h.quizService.GetQuiz(c.Context(), userID, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(dto.NewQuizResponse(quiz))
}

// UpdateQuiz applies a partial update to a quiz's title and description.
func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if err := validation.ValidateUpdateQuizRequest(&req); err != nil {
		return err
	}

	quiz, err := h.quizService.UpdateQuiz(c.Context(), userID, c.Params("id"), req.Title, req.Description)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewQuizResponse(quiz))
}

// DeleteQuiz removes a quiz and its questions.
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	userID, err := userIDFrom(c)
	if err != nil {
		return err
	}

	if err := h.quizService.DeleteQuiz(c.Context(), userID, c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
