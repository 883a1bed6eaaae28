//go:build acceptance

package acceptance

import (
	"net/http"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
)

func (s *Suite) TestRegister_Success() {
	var user domain.PublicUser
	status := s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: testPassword,
	}, &user)

	s.Equal(http.StatusCreated, status)
	s.Equal("alice", user.Username)
	s.Equal("alice@example.com", user.Email)

	var stored string
	err := s.Postgres.DB.QueryRow("SELECT password_hash FROM users WHERE username = $1", "alice").Scan(&stored)
	s.Require().NoError(err)
	s.NotContains(stored, testPassword)
}

func (s *Suite) TestRegister_Conflicts() {
	s.register("alice", "a@x.io")

	var errResp dto.ErrorResponse
	status := s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Username: "alice", Email: "b@x.io", Password: testPassword,
	}, &errResp)
	s.Equal(http.StatusConflict, status)
	s.Equal("username_taken", errResp.Error)

	status = s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Username: "alice2", Email: "a@x.io", Password: testPassword,
	}, &errResp)
	s.Equal(http.StatusConflict, status)
	s.Equal("email_taken", errResp.Error)

	var count int
	s.Require().NoError(s.Postgres.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	s.Equal(1, count)
}

func (s *Suite) TestRegister_WeakPassword() {
	status := s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password1",
	}, nil)
	s.Equal(http.StatusBadRequest, status)
}

func (s *Suite) TestLogin_InvalidCredentials() {
	s.register("alice", "alice@example.com")

	var wrongPassword, unknownUser dto.ErrorResponse
	status := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Username: "alice", Password: "Wr0ngpass!",
	}, &wrongPassword)
	s.Equal(http.StatusUnauthorized, status)

	status = s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Username: "nobody", Password: testPassword,
	}, &unknownUser)
	s.Equal(http.StatusUnauthorized, status)

	s.Equal(wrongPassword, unknownUser)
}

func (s *Suite) TestRefreshToken_Rotation() {
	s.register("alice", "a@x.io")
	first := s.login("alice")
	s.Equal("Bearer", first.TokenType)
	s.NotZero(first.ExpiresIn)

	var second dto.TokenResponse
	status := s.do(http.MethodPost, "/api/v1/auth/refresh-token", "",
		dto.RefreshTokenRequest{RefreshToken: first.RefreshToken}, &second)
	s.Require().Equal(http.StatusOK, status)
	s.NotEqual(first.RefreshToken, second.RefreshToken)

	var errResp dto.ErrorResponse
	status = s.do(http.MethodPost, "/api/v1/auth/refresh-token", "",
		dto.RefreshTokenRequest{RefreshToken: first.RefreshToken}, &errResp)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("invalid_refresh_token", errResp.Error)

	var stored string
	err := s.Postgres.DB.QueryRow("SELECT refresh_token_hash FROM users WHERE username = $1", "alice").Scan(&stored)
	s.Require().NoError(err)
	s.NotEqual(second.RefreshToken, stored)
}

func (s *Suite) TestRefreshToken_Expired() {
	s.register("alice", "a@x.io")
	tokens := s.login("alice")

	_, err := s.Postgres.DB.Exec("UPDATE users SET refresh_token_expires_at = now() - interval '1 second' WHERE username = $1", "alice")
	s.Require().NoError(err)

	status := s.do(http.MethodPost, "/api/v1/auth/refresh-token", "",
		dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken}, nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *Suite) TestGetMe() {
	token := s.signUp("alice")

	var user dto.UserResponse
	status := s.do(http.MethodGet, "/api/v1/auth/me", token, nil, &user)
	s.Equal(http.StatusOK, status)
	s.Equal("alice", user.Username)
	s.NotEmpty(user.ID)

	var errResp dto.ErrorResponse
	status = s.do(http.MethodGet, "/api/v1/auth/me", token+"x", nil, &errResp)
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("invalid_token", errResp.Error)
}
