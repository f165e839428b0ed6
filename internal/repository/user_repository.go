package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vidquiz/internal/domain"
	"vidquiz/internal/repository/models"
	"vidquiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, google_id, created_at, updated_at, deleted_at`

// CreateUser inserts a new user. The ID is assigned here when the caller
// left it empty.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	model := toModelUser(user)
	if model.ID == "" {
		model.ID = util.NewULID()
	}
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now

	query := `INSERT INTO users (id, username, email, password_hash, google_id, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		model.ID,
		model.Username,
		model.Email,
		model.PasswordHash,
		model.GoogleID,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getUserWhere(ctx, "id = :1", userID)
}

func (r *sqlxUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUserWhere(ctx, "username = :1", username)
}

func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUserWhere(ctx, "email = :1", email)
}

func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.getUserWhere(ctx, "google_id = :1", googleID)
}

func (r *sqlxUserRepository) getUserWhere(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	var model models.User
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s AND deleted_at IS NULL`, userColumns, where)

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &model, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&model), nil
}

// UpdateUser updates the mutable account fields.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	model := toModelUser(user)
	model.UpdatedAt = time.Now()

	query := `UPDATE users SET
	            email = :1,
	            password_hash = :2,
	            google_id = :3,
	            updated_at = :4
	          WHERE id = :5 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		model.Email,
		model.PasswordHash,
		model.GoogleID,
		model.UpdatedAt,
		model.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	user.UpdatedAt = model.UpdatedAt
	return nil
}

func toModelUser(user *domain.User) *models.User {
	return &models.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: util.StringToNullString(user.PasswordHash),
		GoogleID:     util.StringToNullString(user.GoogleID),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toDomainUser(model *models.User) *domain.User {
	return &domain.User{
		ID:           model.ID,
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash.String,
		GoogleID:     model.GoogleID.String,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
