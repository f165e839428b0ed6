package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vidquiz/internal/config"
	"vidquiz/internal/domain"
	"vidquiz/internal/dto"
	"vidquiz/internal/logger"
	"vidquiz/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTypeAccess   = "access"
	tokenTypeRefresh  = "refresh"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
	ErrTokenRevoked          = errors.New("token has been revoked")
	ErrNotARefreshToken      = errors.New("not a refresh token")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (accessToken string, refreshToken string, user *domain.User, err error)
	RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, error)
	Logout(ctx context.Context, refreshTokenString string) error
	ValidateAccessToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code string) (accessToken string, refreshToken string, user *domain.User, err error)
}

type authServiceImpl struct {
	userRepo     domain.UserRepository
	blacklist    domain.TokenBlacklist
	oauth2Config *oauth2.Config
	authConfig   config.AuthConfig
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, blacklist domain.TokenBlacklist, authConfig config.AuthConfig) (AuthService, error) {
	if len(authConfig.JWT.SecretKey) < 32 {
		return nil, errors.New("jwt secret key must be at least 32 bytes long")
	}

	return &authServiceImpl{
		userRepo:  userRepo,
		blacklist: blacklist,
		oauth2Config: &oauth2.Config{
			ClientID:     authConfig.GoogleOAuth.ClientID,
			ClientSecret: authConfig.GoogleOAuth.ClientSecret,
			RedirectURL:  authConfig.GoogleOAuth.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		authConfig: authConfig,
	}, nil
}

// Register creates a password-based account. Username and email must be
// unused; password strength is validated by the caller.
func (s *authServiceImpl) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	appLogger := logger.Get()

	if existing, err := s.userRepo.GetUserByUsername(ctx, username); err != nil {
		return nil, domain.NewInternalError("failed to check username", err)
	} else if existing != nil {
		return nil, domain.NewUserExistsError("username")
	}
	if existing, err := s.userRepo.GetUserByEmail(ctx, email); err != nil {
		return nil, domain.NewInternalError("failed to check email", err)
	} else if existing != nil {
		return nil, domain.NewUserExistsError("email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("failed to create user", err)
	}

	appLogger.Info("User registered", zap.String("userID", user.ID), zap.String("username", username))
	return user, nil
}

// Login verifies the password and issues an access/refresh token pair.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (string, string, *domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", nil, domain.NewInternalError("failed to look up user", err)
	}
	if user == nil || user.PasswordHash == "" {
		return "", "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.CreateJWT(user, s.authConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", nil, domain.NewInternalError("failed to create access token", err)
	}
	refreshToken, err := s.CreateJWT(user, s.authConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", nil, domain.NewInternalError("failed to create refresh token", err)
	}

	logger.Get().Info("User logged in", zap.String("userID", user.ID))
	return accessToken, refreshToken, user, nil
}

// CreateJWT issues a signed token of the given type. The registered ID claim
// is a fresh ULID; for refresh tokens it is the blacklist key.
func (s *authServiceImpl) CreateJWT(user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    user.ID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        util.NewULID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authConfig.JWT.SecretKey))
}

func (s *authServiceImpl) validateJWT(tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authConfig.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

// ValidateAccessToken parses and verifies an access token.
func (s *authServiceImpl) ValidateAccessToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	claims, err := s.validateJWT(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("%w: expected access token, got %s", ErrInvalidJWTToken, claims.TokenType)
	}
	return claims, nil
}

// RefreshAccessToken validates a refresh token, rejects revoked ones, and
// issues a new access token. The refresh token itself is not rotated; it
// stays valid until logout or expiry.
func (s *authServiceImpl) RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, error) {
	appLogger := logger.Get()

	claims, err := s.validateJWT(refreshTokenString)
	if err != nil {
		appLogger.Warn("Refresh token validation failed", zap.Error(err))
		return "", fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", ErrNotARefreshToken
	}

	revoked, err := s.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return "", domain.NewInternalError("failed to check token blacklist", err)
	}
	if revoked {
		appLogger.Warn("Revoked refresh token presented", zap.String("jti", claims.ID), zap.String("userID", claims.UserID))
		return "", ErrTokenRevoked
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", domain.NewInternalError("failed to look up user for refresh", err)
	}
	// A refresh token for a deleted account is unusable, not a lookup miss.
	if user == nil {
		return "", domain.NewUnauthorizedError("refresh token does not belong to an active user")
	}

	newAccessToken, err := s.CreateJWT(user, s.authConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", domain.NewInternalError("failed to create new access token", err)
	}

	appLogger.Info("Access token refreshed", zap.String("userID", user.ID))
	return newAccessToken, nil
}

// Logout revokes the refresh token server-side. The blacklist entry lives
// exactly as long as the token would have remained valid.
func (s *authServiceImpl) Logout(ctx context.Context, refreshTokenString string) error {
	claims, err := s.validateJWT(refreshTokenString)
	if err != nil {
		return fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return ErrNotARefreshToken
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.blacklist.Add(ctx, claims.ID, ttl); err != nil {
		return domain.NewInternalError("failed to blacklist refresh token", err)
	}

	logger.Get().Info("User logged out, refresh token revoked",
		zap.String("userID", claims.UserID),
		zap.String("jti", claims.ID))
	return nil
}

// GetGoogleLoginURL builds the consent-page URL for the OAuth flow.
func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// googleUserInfo is the subset of the userinfo payload this service reads.
type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleGoogleCallback exchanges the authorization code, provisions or links
// the account, and issues the same token pair as password login.
func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code string) (string, string, *domain.User, error) {
	appLogger := logger.Get()

	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	client := s.oauth2Config.Client(ctx, googleToken)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	var userInfo googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return "", "", nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if userInfo.ID == "" || userInfo.Email == "" {
		return "", "", nil, errors.New("google user info is incomplete")
	}

	user, err := s.userRepo.GetUserByGoogleID(ctx, userInfo.ID)
	if err != nil {
		return "", "", nil, domain.NewInternalError("failed to look up user by google id", err)
	}

	if user == nil {
		// Link by email when an account already exists, otherwise provision.
		user, err = s.userRepo.GetUserByEmail(ctx, userInfo.Email)
		if err != nil {
			return "", "", nil, domain.NewInternalError("failed to look up user by email", err)
		}
		if user != nil {
			user.GoogleID = userInfo.ID
			if err := s.userRepo.UpdateUser(ctx, user); err != nil {
				return "", "", nil, domain.NewInternalError("failed to link google account", err)
			}
			appLogger.Info("Google account linked", zap.String("userID", user.ID))
		} else {
			user = &domain.User{
				Username: userInfo.Email,
				Email:    userInfo.Email,
				GoogleID: userInfo.ID,
			}
			if err := s.userRepo.CreateUser(ctx, user); err != nil {
				return "", "", nil, domain.NewInternalError("failed to create user", err)
			}
			appLogger.Info("New user created via Google OAuth", zap.String("userID", user.ID), zap.String("email", user.Email))
		}
	}

	accessToken, err := s.CreateJWT(user, s.authConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", nil, domain.NewInternalError("failed to create access token", err)
	}
	refreshToken, err := s.CreateJWT(user, s.authConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", nil, domain.NewInternalError("failed to create refresh token", err)
	}

	return accessToken, refreshToken, user, nil
}
