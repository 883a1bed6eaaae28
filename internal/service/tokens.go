package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/prperemyshlev/task-manager/internal/domain"
)

// issueTokens generates a pair for the user and persists the refresh token digest,
// overwriting whatever token was active before.
func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	pair, err := s.tokenIssuer.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	user.SetRefreshToken(hashToken(pair.RefreshToken), pair.RefreshTokenExpiresAt)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return pair, nil
}

// hashToken hashes a token using SHA256
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
