//go:build acceptance

package acceptance

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/prperemyshlev/task-manager/internal/dto"
)

const testPassword = "Passw0rd!"

// do sends a JSON request and decodes the response into out when out is non-nil
func (s *Suite) do(method, path, token string, body, out any) int {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.BaseURL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func (s *Suite) register(username, email string) {
	status := s.do(http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: testPassword,
	}, nil)
	s.Require().Equal(http.StatusCreated, status)
}

func (s *Suite) login(username string) dto.TokenResponse {
	var tokens dto.TokenResponse
	status := s.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Username: username,
		Password: testPassword,
	}, &tokens)
	s.Require().Equal(http.StatusOK, status)
	return tokens
}

func (s *Suite) signUp(username string) string {
	s.register(username, username+"@example.com")
	return s.login(username).AccessToken
}
