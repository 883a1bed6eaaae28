package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/pkg/database"
)

const userColumns = `id, username, email, password_hash, password_salt, refresh_token_hash, refresh_token_expires_at, created_at, updated_at`

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, password_salt, refresh_token_hash, refresh_token_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.PasswordSalt,
		user.RefreshTokenHash,
		user.RefreshTokenExpiresAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if dupErr := duplicateUserError(err); dupErr != nil {
			return dupErr
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	userID, ok := parseID(id)
	if !ok {
		return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
	}

	return r.getOne(ctx, "id", userID)
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username", username)
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email", email)
}

// GetByRefreshTokenHash retrieves the user holding the given refresh token
func (r *userRepository) GetByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	return r.getOne(ctx, "refresh_token_hash", tokenHash)
}

// getOne looks up a single user by an equality filter on column.
// column is always one of the package constants above, never user input.
func (r *userRepository) getOne(ctx context.Context, column, value string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)

	user := &domain.User{}
	var refreshTokenHash sql.NullString
	var refreshTokenExpiresAt sql.NullTime

	err := r.db.DB.QueryRowContext(ctx, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.PasswordSalt,
		&refreshTokenHash,
		&refreshTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with %s not found: %w", column, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	if refreshTokenHash.Valid {
		user.RefreshTokenHash = &refreshTokenHash.String
	}
	if refreshTokenExpiresAt.Valid {
		user.RefreshTokenExpiresAt = &refreshTokenExpiresAt.Time
	}

	return user, nil
}

// Update replaces the stored user record
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, password_salt = $5,
		    refresh_token_hash = $6, refresh_token_expires_at = $7, updated_at = $8
		WHERE id = $1
	`

	userID, ok := parseID(user.ID)
	if !ok {
		return fmt.Errorf("user with id %s not found: %w", user.ID, ErrNotFound)
	}

	user.UpdatedAt = time.Now().UTC()

	result, err := r.db.DB.ExecContext(ctx, query,
		userID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.PasswordSalt,
		user.RefreshTokenHash,
		user.RefreshTokenExpiresAt,
		user.UpdatedAt,
	)
	if err != nil {
		if dupErr := duplicateUserError(err); dupErr != nil {
			return dupErr
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", user.ID, ErrNotFound)
	}

	return nil
}

// duplicateUserError translates a unique violation on users into a repository error
func duplicateUserError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}

	switch pqErr.Constraint {
	case usernameConstraint:
		return fmt.Errorf("username already exists: %w", ErrDuplicateUsername)
	case emailConstraint:
		return fmt.Errorf("email already exists: %w", ErrDuplicateEmail)
	default:
		return fmt.Errorf("unique constraint %s violated: %w", pqErr.Constraint, err)
	}
}
