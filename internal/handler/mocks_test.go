package handler_test

import (
	"context"

	"vidquiz/internal/domain"
	"vidquiz/internal/dto"
)

// --- Manual Mocks ---

// MockAuthService
type MockAuthService struct {
	RegisterFunc             func(ctx context.Context, username, email, password string) (*domain.User, error)
	LoginFunc                func(ctx context.Context, username, password string) (string, string, *domain.User, error)
	RefreshAccessTokenFunc   func(ctx context.Context, refreshToken string) (string, error)
	LogoutFunc               func(ctx context.Context, refreshToken string) error
	ValidateAccessTokenFunc  func(ctx context.Context, token string) (*dto.AuthClaims, error)
	GetGoogleLoginURLFunc    func(state string) string
	HandleGoogleCallbackFunc func(ctx context.Context, code string) (string, string, *domain.User, error)
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, username, email, password)
	}
	panic("MockAuthService.RegisterFunc not implemented")
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, string, *domain.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	panic("MockAuthService.LoginFunc not implemented")
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshAccessTokenFunc != nil {
		return m.RefreshAccessTokenFunc(ctx, refreshToken)
	}
	panic("MockAuthService.RefreshAccessTokenFunc not implemented")
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	panic("MockAuthService.LogoutFunc not implemented")
}

func (m *MockAuthService) ValidateAccessToken(ctx context.Context, token string) (*dto.AuthClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(ctx, token)
	}
	panic("MockAuthService.ValidateAccessTokenFunc not implemented")
}

func (m *MockAuthService) GetGoogleLoginURL(state string) string {
	if m.GetGoogleLoginURLFunc != nil {
		return m.GetGoogleLoginURLFunc(state)
	}
	panic("MockAuthService.GetGoogleLoginURLFunc not implemented")
}

func (m *MockAuthService) HandleGoogleCallback(ctx context.Context, code string) (string, string, *domain.User, error) {
	if m.HandleGoogleCallbackFunc != nil {
		return m.HandleGoogleCallbackFunc(ctx, code)
	}
	panic("MockAuthService.HandleGoogleCallbackFunc not implemented")
}

// MockQuizService
type MockQuizService struct {
	CreateQuizFromURLFunc func(ctx context.Context, userID, videoURL string) (*domain.Quiz, error)
	ListQuizzesFunc       func(ctx context.Context, userID string) ([]*domain.Quiz, error)
	GetQuizFunc           func(ctx context.Context, userID, quizID string) (*domain.Quiz, error)
	UpdateQuizFunc        func(ctx context.Context, userID, quizID string, title, description *string) (*domain.Quiz, error)
	DeleteQuizFunc        func(ctx context.Context, userID, quizID string) error
}

func (m *MockQuizService) CreateQuizFromURL(ctx context.Context, userID, videoURL string) (*domain.Quiz, error) {
	if m.CreateQuizFromURLFunc != nil {
		return m.CreateQuizFromURLFunc(ctx, userID, videoURL)
	}
	panic("MockQuizService.CreateQuizFromURLFunc not implemented")
}

func (m *MockQuizService) ListQuizzes(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	if m.ListQuizzesFunc != nil {
		return m.ListQuizzesFunc(ctx, userID)
	}
	panic("MockQuizService.ListQuizzesFunc not implemented")
}

func (m *MockQuizService) GetQuiz(ctx context.Context, userID, quizID string) (*domain.Quiz, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, userID, quizID)
	}
	panic("MockQuizService.GetQuizFunc not implemented")
}

func (m *MockQuizService) UpdateQuiz(ctx context.Context, userID, quizID string, title, description *string) (*domain.Quiz, error) {
	if m.UpdateQuizFunc != nil {
		return m.UpdateQuizFunc(ctx, userID, quizID, title, description)
	}
	panic("MockQuizService.UpdateQuizFunc not implemented")
}

func (m *MockQuizService) DeleteQuiz(ctx context.Context, userID, quizID string) error {
	if m.DeleteQuizFunc != nil {
		return m.DeleteQuizFunc(ctx, userID, quizID)
	}
	panic("MockQuizService.DeleteQuizFunc not implemented")
}
