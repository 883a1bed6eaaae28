package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prperemyshlev/task-manager/internal/domain"
)

const refreshTokenBytes = 32

// accessClaims is the payload of an access token. The user id travels in "sub".
type accessClaims struct {
	Username string `json:"unique_name"`
	jwt.RegisteredClaims
}

// TokenIssuer issues signed access tokens and opaque refresh tokens
type TokenIssuer struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	now                func() time.Time
}

// NewTokenIssuer creates a token issuer. All settings are required.
func NewTokenIssuer(secret string, accessTokenExpiry, refreshTokenExpiry time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: token signing secret is not set", domain.ErrConfiguration)
	}
	if accessTokenExpiry <= 0 {
		return nil, fmt.Errorf("%w: access token lifetime must be positive", domain.ErrConfiguration)
	}
	if refreshTokenExpiry <= 0 {
		return nil, fmt.Errorf("%w: refresh token lifetime must be positive", domain.ErrConfiguration)
	}

	return &TokenIssuer{
		secret:             []byte(secret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
		now:                time.Now,
	}, nil
}

// GenerateAccessToken generates a new access token for the user
func (j *TokenIssuer) GenerateAccessToken(userID, username string) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.accessTokenExpiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// GenerateRefreshToken generates a random refresh token and its expiration time
func (j *TokenIssuer) GenerateRefreshToken() (string, time.Time, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), j.now().Add(j.refreshTokenExpiry), nil
}

// GenerateTokenPair generates an access token and a refresh token for the user
func (j *TokenIssuer) GenerateTokenPair(userID, username string) (*domain.TokenPair, error) {
	accessToken, accessExpiresAt, err := j.GenerateAccessToken(userID, username)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiresAt, err := j.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}

// ValidateAccessToken verifies the token and returns its claims.
// It fails with domain.ErrExpiredToken past expiration and domain.ErrInvalidToken otherwise.
func (j *TokenIssuer) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	claims := &accessClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("%w: missing username", domain.ErrInvalidToken)
	}

	tokenClaims := &domain.TokenClaims{
		UserID:    claims.Subject,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		tokenClaims.IssuedAt = claims.IssuedAt.Time
	}

	return tokenClaims, nil
}
