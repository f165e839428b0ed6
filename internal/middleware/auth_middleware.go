package middleware

import (
	"strings"

	"vidquiz/internal/domain"
	"vidquiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the locals key under which the authenticated user's ID is
// stored for downstream handlers.
const UserIDKey = "userID"

// AccessTokenCookie and RefreshTokenCookie are the cookie names the session
// layer reads and writes.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// Protected requires a valid access token. The token is read from the
// access_token cookie, with an Authorization bearer header as fallback for
// non-browser clients.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(AccessTokenCookie)
		if tokenString == "" {
			authHeader := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if tokenString == "" {
			return domain.NewUnauthorizedError("Authentication required")
		}

		claims, err := authService.ValidateAccessToken(c.Context(), tokenString)
		if err != nil {
			return domain.NewUnauthorizedError("Invalid or expired access token")
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}
