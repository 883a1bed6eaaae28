package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/repository"
	"github.com/prperemyshlev/task-manager/internal/utils"
	"github.com/prperemyshlev/task-manager/pkg/observability"
)

const dummyPassword = "no-such-user"

// authService implements AuthService interface
type authService struct {
	userRepo       repository.UserRepository
	passwordHasher PasswordHasher
	tokenIssuer    *utils.TokenIssuer
	metrics        *observability.Metrics
	logger         *zap.Logger
	now            func() time.Time

	// verified against on unknown usernames so both rejections cost one derivation
	dummyHash string
	dummySalt string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	passwordHasher PasswordHasher,
	tokenIssuer *utils.TokenIssuer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (AuthService, error) {
	dummyHash, dummySalt, err := passwordHasher.HashPassword(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to derive dummy credential: %w", err)
	}

	return &authService{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		tokenIssuer:    tokenIssuer,
		metrics:        metrics,
		logger:         logger,
		now:            time.Now,
		dummyHash:      dummyHash,
		dummySalt:      dummySalt,
	}, nil
}

// Register registers a new user. Username uniqueness is checked before email uniqueness.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.PublicUser, error) {
	username := utils.SanitizeUsername(req.Username)
	email := utils.SanitizeEmail(req.Email)

	if !utils.ValidateUsername(username) {
		return nil, fmt.Errorf("%w: username must be 3-50 characters of letters, digits, '.', '_' or '-'", domain.ErrValidation)
	}
	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be 8-100 characters of letters, digits and @$!%%*#?&, with at least one of each", domain.ErrValidation)
	}

	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		s.metrics.RecordRegistration(ctx, observability.ResultFailure)
		return nil, domain.ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.metrics.RecordRegistration(ctx, observability.ResultError)
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	_, err = s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		s.metrics.RecordRegistration(ctx, observability.ResultFailure)
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.metrics.RecordRegistration(ctx, observability.ResultError)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	passwordHash, passwordSalt, err := s.passwordHasher.HashPassword(req.Password)
	if err != nil {
		s.metrics.RecordRegistration(ctx, observability.ResultError)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		PasswordSalt: passwordSalt,
	}

	// The unique constraints still catch a concurrent registration that passed both checks.
	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			s.metrics.RecordRegistration(ctx, observability.ResultFailure)
			return nil, domain.ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			s.metrics.RecordRegistration(ctx, observability.ResultFailure)
			return nil, domain.ErrEmailTaken
		}
		s.metrics.RecordRegistration(ctx, observability.ResultError)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.RecordRegistration(ctx, observability.ResultSuccess)
	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))

	public := user.Public()
	return &public, nil
}

// Login authenticates a user and replaces their refresh token with a fresh one
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error) {
	username := utils.SanitizeUsername(req.Username)

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.passwordHasher.VerifyPassword(req.Password, s.dummyHash, s.dummySalt)
			s.metrics.RecordLogin(ctx, observability.ResultFailure)
			s.logger.Info("login rejected", zap.String("username", username))
			return nil, domain.ErrInvalidCredentials
		}
		s.metrics.RecordLogin(ctx, observability.ResultError)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordHasher.VerifyPassword(req.Password, user.PasswordHash, user.PasswordSalt) {
		s.metrics.RecordLogin(ctx, observability.ResultFailure)
		s.logger.Info("login rejected", zap.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		s.metrics.RecordLogin(ctx, observability.ResultError)
		return nil, err
	}

	s.metrics.RecordLogin(ctx, observability.ResultSuccess)
	return pair, nil
}

// RefreshToken exchanges the active refresh token for a new pair. The presented token stops working.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		s.metrics.RecordRefresh(ctx, observability.ResultFailure)
		return nil, domain.ErrInvalidRefreshToken
	}

	tokenHash := hashToken(refreshToken)

	user, err := s.userRepo.GetByRefreshTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.RecordRefresh(ctx, observability.ResultFailure)
			s.logger.Warn("refresh rejected: unknown token")
			return nil, domain.ErrInvalidRefreshToken
		}
		s.metrics.RecordRefresh(ctx, observability.ResultError)
		return nil, fmt.Errorf("failed to get user by refresh token: %w", err)
	}

	if user.RefreshTokenHash == nil ||
		subtle.ConstantTimeCompare([]byte(*user.RefreshTokenHash), []byte(tokenHash)) != 1 {
		s.metrics.RecordRefresh(ctx, observability.ResultFailure)
		s.logger.Warn("refresh rejected: token mismatch", zap.String("user_id", user.ID))
		return nil, domain.ErrInvalidRefreshToken
	}

	// expiration <= now is rejected
	if user.RefreshTokenExpiresAt == nil || !user.RefreshTokenExpiresAt.After(s.now()) {
		s.metrics.RecordRefresh(ctx, observability.ResultFailure)
		s.logger.Info("refresh rejected: token expired", zap.String("user_id", user.ID))
		return nil, domain.ErrInvalidRefreshToken
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		s.metrics.RecordRefresh(ctx, observability.ResultError)
		return nil, err
	}

	s.metrics.RecordRefresh(ctx, observability.ResultSuccess)
	return pair, nil
}

// GetUser gets user information
func (s *authService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// the token outlived its user
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// ValidateToken validates an access token
func (s *authService) ValidateToken(_ context.Context, token string) (*domain.TokenClaims, error) {
	return s.tokenIssuer.ValidateAccessToken(token)
}
