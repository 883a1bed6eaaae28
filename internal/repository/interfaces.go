package repository

import (
	"context"

	"github.com/prperemyshlev/task-manager/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// TaskRepository defines ownership-scoped task operations.
// A task owned by someone else is reported exactly like a missing one.
type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerID string, filter domain.TaskFilter) ([]*domain.Task, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	ReplaceIfOwned(ctx context.Context, id, ownerID string, content domain.TaskContent) (domain.UpdateOutcome, error)
	DeleteIfOwned(ctx context.Context, id, ownerID string) (bool, error)
}
