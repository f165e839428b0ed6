package handler

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"vidquiz/internal/config"
	"vidquiz/internal/domain"
	"vidquiz/internal/dto"
	"vidquiz/internal/middleware"
	"vidquiz/internal/service"
	"vidquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const oauthStateCookie = "oauthstate"

// AuthHandler exposes registration, login, session refresh and logout.
type AuthHandler struct {
	authService service.AuthService
	authConfig  config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, authConfig config.AuthConfig) *AuthHandler {
	return &AuthHandler{authService: authService, authConfig: authConfig}
}

// Register creates a new account from username, email and password.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if err := validation.ValidateRegisterRequest(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// Login verifies credentials and sets the access and refresh token cookies.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if err := validation.ValidateLoginRequest(&req); err != nil {
		return err
	}

	accessToken, refreshToken, user, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, middleware.AccessTokenCookie, accessToken, h.authConfig.JWT.AccessTokenTTL)
	h.setTokenCookie(c, middleware.RefreshTokenCookie, refreshToken, h.authConfig.JWT.RefreshTokenTTL)

	return c.JSON(dto.LoginResponse{
		Detail: "Login successful",
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

// RefreshToken reads the refresh cookie and issues a new access cookie. The
// refresh cookie itself is left untouched.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies(middleware.RefreshTokenCookie)
	if refreshToken == "" {
		return domain.NewUnauthorizedError("Refresh token is missing")
	}

	accessToken, err := h.authService.RefreshAccessToken(c.Context(), refreshToken)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, middleware.AccessTokenCookie, accessToken, h.authConfig.JWT.AccessTokenTTL)
	return c.JSON(dto.MessageResponse{Detail: "Access token refreshed"})
}

// Logout revokes the refresh token and clears both cookies.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Cookies(middleware.RefreshTokenCookie)
	if refreshToken != "" {
		if err := h.authService.Logout(c.Context(), refreshToken); err != nil {
			return domain.NewInvalidInputError("Invalid refresh token")
		}
	}

	h.clearTokenCookie(c, middleware.AccessTokenCookie)
	h.clearTokenCookie(c, middleware.RefreshTokenCookie)
	return c.JSON(dto.MessageResponse{Detail: "Logout successful"})
}

// GoogleLogin redirects the browser to the Google consent page. The random
// state is stored in a short-lived cookie and checked on callback.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state, err := generateState()
	if err != nil {
		return domain.NewInternalError("failed to generate oauth state", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   h.authConfig.Cookie.Secure,
		SameSite: h.authConfig.Cookie.SameSite,
		Path:     "/",
	})

	return c.Redirect(h.authService.GetGoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback completes the OAuth flow and sets the same cookie pair as
// password login.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	expectedState := c.Cookies(oauthStateCookie)
	if expectedState == "" || c.Query("state") != expectedState {
		return domain.NewUnauthorizedError("Invalid OAuth state")
	}
	h.clearTokenCookie(c, oauthStateCookie)

	code := c.Query("code")
	if code == "" {
		return domain.NewInvalidInputError("Missing authorization code")
	}

	accessToken, refreshToken, user, err := h.authService.HandleGoogleCallback(c.Context(), code)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, middleware.AccessTokenCookie, accessToken, h.authConfig.JWT.AccessTokenTTL)
	h.setTokenCookie(c, middleware.RefreshTokenCookie, refreshToken, h.authConfig.JWT.RefreshTokenTTL)

	return c.JSON(dto.LoginResponse{
		Detail: "Login successful",
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   h.authConfig.Cookie.Secure,
		SameSite: h.authConfig.Cookie.SameSite,
		Path:     "/",
	})
}

func (h *AuthHandler) clearTokenCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.authConfig.Cookie.Secure,
		SameSite: h.authConfig.Cookie.SameSite,
		Path:     "/",
	})
}

func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
