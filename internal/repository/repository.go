package repository

import (
	"github.com/google/uuid"
	"github.com/prperemyshlev/task-manager/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User UserRepository
	Task TaskRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User: NewUserRepository(db),
		Task: NewTaskRepository(db),
	}
}

// parseID normalizes a row id. Ids that are not UUIDs cannot exist.
func parseID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
