package dto

// RegisterRequest represents a registration request.
// Username and email formats are checked by the service after trimming.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token to exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateTaskRequest represents a new task
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Completed   bool    `json:"completed"`
}

// UpdateTaskRequest replaces the content of a task
type UpdateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Completed   bool    `json:"completed"`
}

// ListTasksQuery holds the optional completion filter of a task listing
type ListTasksQuery struct {
	Completed *bool `form:"completed"`
}
