package service

import (
	"context"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.PublicUser, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// TaskService defines task operations scoped to the owning user.
// Every method takes the caller's id; tasks of other users are never visible.
type TaskService interface {
	List(ctx context.Context, ownerID string, filter domain.TaskFilter) ([]*domain.Task, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Task, error)
	Create(ctx context.Context, ownerID string, req *dto.CreateTaskRequest) (*domain.Task, error)
	Update(ctx context.Context, ownerID, id string, req *dto.UpdateTaskRequest) (*domain.Task, domain.UpdateOutcome, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// PasswordHasher derives and checks salted password hashes.
type PasswordHasher interface {
	HashPassword(password string) (hash string, salt string, err error)
	VerifyPassword(password, storedHash, storedSalt string) bool
}
