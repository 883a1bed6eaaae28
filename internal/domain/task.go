package domain

import "time"

// Task is a to-do item owned by exactly one user
type Task struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"-" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TaskContent holds the replaceable fields of a task
type TaskContent struct {
	Title       string
	Description *string
	Completed   bool
}

// TaskFilter restricts a listing by completion state when Completed is set
type TaskFilter struct {
	Completed *bool
}

// UpdateOutcome reports whether an owned task matched and whether its content changed.
// Found is always true when Updated is.
type UpdateOutcome struct {
	Found   bool `json:"found"`
	Updated bool `json:"updated"`
}
