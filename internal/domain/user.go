package domain

import "time"

// User represents a registered account with its credentials and refresh token state
type User struct {
	ID                    string     `json:"id" db:"id"`
	Username              string     `json:"username" db:"username"`
	Email                 string     `json:"email" db:"email"`
	PasswordHash          string     `json:"-" db:"password_hash"`
	PasswordSalt          string     `json:"-" db:"password_salt"`
	RefreshTokenHash      *string    `json:"-" db:"refresh_token_hash"`
	RefreshTokenExpiresAt *time.Time `json:"-" db:"refresh_token_expires_at"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

// SetRefreshToken replaces the single active refresh token of the user
func (u *User) SetRefreshToken(tokenHash string, expiresAt time.Time) {
	u.RefreshTokenHash = &tokenHash
	u.RefreshTokenExpiresAt = &expiresAt
}

// PublicUser is the subset of user fields that is safe to return to clients
type PublicUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public strips credentials and token state from the user
func (u *User) Public() PublicUser {
	return PublicUser{
		Username: u.Username,
		Email:    u.Email,
	}
}
