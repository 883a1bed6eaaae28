package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.PublicUser, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*domain.PublicUser)
	return user, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error) {
	args := m.Called(ctx, req)
	pair, _ := args.Get(0).(*domain.TokenPair)
	return pair, args.Error(1)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	pair, _ := args.Get(0).(*domain.TokenPair)
	return pair, args.Error(1)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*dto.UserResponse)
	return user, args.Error(1)
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*domain.TokenClaims)
	return claims, args.Error(1)
}

type mockTaskService struct {
	mock.Mock
}

func (m *mockTaskService) List(ctx context.Context, ownerID string, filter domain.TaskFilter) ([]*domain.Task, error) {
	args := m.Called(ctx, ownerID, filter)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskService) Get(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	args := m.Called(ctx, ownerID, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) Create(ctx context.Context, ownerID string, req *dto.CreateTaskRequest) (*domain.Task, error) {
	args := m.Called(ctx, ownerID, req)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) Update(ctx context.Context, ownerID, id string, req *dto.UpdateTaskRequest) (*domain.Task, domain.UpdateOutcome, error) {
	args := m.Called(ctx, ownerID, id, req)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Get(1).(domain.UpdateOutcome), args.Error(2)
}

func (m *mockTaskService) Delete(ctx context.Context, ownerID, id string) error {
	return m.Called(ctx, ownerID, id).Error(0)
}
