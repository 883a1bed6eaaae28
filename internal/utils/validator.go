package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-]{3,50}$`)
)

const (
	minPasswordLength = 8
	maxPasswordLength = 100

	passwordSpecials = "@$!%*#?&"
)

// ValidateEmail validates an email address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateUsername validates a username
func ValidateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// ValidatePassword validates a password.
// 8 to 100 characters drawn only from ASCII letters, digits and @$!%*#?&,
// with at least one of each class.
func ValidatePassword(password string) bool {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength || n > maxPasswordLength {
		return false
	}

	hasLetter := false
	hasNumber := false
	hasSpecial := false

	for _, char := range password {
		switch {
		case 'A' <= char && char <= 'Z', 'a' <= char && char <= 'z':
			hasLetter = true
		case '0' <= char && char <= '9':
			hasNumber = true
		case strings.ContainsRune(passwordSpecials, char):
			hasSpecial = true
		default:
			return false
		}
	}

	return hasLetter && hasNumber && hasSpecial
}

// SanitizeEmail sanitizes an email address
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SanitizeUsername trims surrounding whitespace from a username
func SanitizeUsername(username string) string {
	return strings.TrimSpace(username)
}
