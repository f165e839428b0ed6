package domain

import (
	"context"
	"time"
)

// UserRepository defines the interface for user data operations.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}

// QuizRepository defines the interface for quiz and question persistence.
// Every read and write is scoped to the owning user; operations on a quiz
// the user does not own behave exactly like operations on a missing quiz.
type QuizRepository interface {
	SaveQuiz(ctx context.Context, quiz *Quiz) error
	SaveQuestions(ctx context.Context, quizID string, questions []*Question) error
	GetQuizByID(ctx context.Context, userID, quizID string) (*Quiz, error)
	ListQuizzesByUser(ctx context.Context, userID string) ([]*Quiz, error)
	UpdateQuiz(ctx context.Context, quiz *Quiz) (bool, error)
	DeleteQuiz(ctx context.Context, userID, quizID string) (bool, error)
}

// TransactionManager runs a function inside a single database transaction.
// The transaction travels in the context; repositories pick it up through
// their executor.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenBlacklist records revoked refresh tokens (by JWT ID) until they would
// have expired anyway.
type TokenBlacklist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}
