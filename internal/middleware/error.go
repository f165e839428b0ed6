package middleware

import (
	"errors"

	"vidquiz/internal/domain"
	"vidquiz/internal/logger"
	"vidquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler maps errors returned by handlers to HTTP responses. Domain
// errors carry stable codes; anything unrecognized becomes a generic 500 so
// internal details never reach the client.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appLogger := logger.Get()

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"code":    string(domain.CodeValidation),
				"message": "Validation failed",
				"errors":  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			status := statusForCode(domainErr.Code)
			if status >= fiber.StatusInternalServerError {
				appLogger.Error("Request failed",
					zap.String("path", c.Path()),
					zap.String("code", string(domainErr.Code)),
					zap.Error(err))
			}
			return c.Status(status).JSON(domainErr)
		}

		// Auth failures from the service layer use sentinel errors.
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    string(domain.CodeUnauthorized),
				"message": "Invalid username or password",
			})
		case errors.Is(err, service.ErrTokenRevoked),
			errors.Is(err, service.ErrInvalidJWTToken),
			errors.Is(err, service.ErrNotARefreshToken):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    string(domain.CodeUnauthorized),
				"message": "Invalid or expired token",
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"code":    string(domain.CodeInternal),
				"message": fiberErr.Message,
			})
		}

		appLogger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":    string(domain.CodeInternal),
			"message": "An internal error occurred",
		})
	}
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeInvalidInput, domain.CodeValidation, domain.CodeMissingField,
		domain.CodeInvalidFormat, domain.CodeOutOfRange, domain.CodeUserExists:
		return fiber.StatusBadRequest
	case domain.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case domain.CodeNotFound, domain.CodeQuizNotFound:
		return fiber.StatusNotFound
	case domain.CodeFetchFailed, domain.CodeTranscriptionFailed, domain.CodeSynthesisFailed:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
