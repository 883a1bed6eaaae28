package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/repository"
	"github.com/prperemyshlev/task-manager/pkg/observability"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
)

type taskService struct {
	taskRepo repository.TaskRepository
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo repository.TaskRepository, metrics *observability.Metrics, logger *zap.Logger) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *taskService) List(ctx context.Context, ownerID string, filter domain.TaskFilter) ([]*domain.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Get(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, ownerID string, req *dto.CreateTaskRequest) (*domain.Task, error) {
	content, err := taskContent(req.Title, req.Description, req.Completed)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       content.Title,
		Description: content.Description,
		Completed:   content.Completed,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		s.metrics.RecordTaskMutation(ctx, "create", observability.ResultError)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.metrics.RecordTaskMutation(ctx, "create", observability.ResultSuccess)
	s.logger.Debug("task created", zap.String("task_id", task.ID), zap.String("owner_id", ownerID))
	return task, nil
}

// Update replaces the task content and returns the stored task.
// Writing identical content is a match without a modification.
func (s *taskService) Update(ctx context.Context, ownerID, id string, req *dto.UpdateTaskRequest) (*domain.Task, domain.UpdateOutcome, error) {
	content, err := taskContent(req.Title, req.Description, req.Completed)
	if err != nil {
		return nil, domain.UpdateOutcome{}, err
	}

	outcome, err := s.taskRepo.ReplaceIfOwned(ctx, id, ownerID, content)
	if err != nil {
		s.metrics.RecordTaskMutation(ctx, "update", observability.ResultError)
		return nil, domain.UpdateOutcome{}, fmt.Errorf("failed to update task: %w", err)
	}
	if !outcome.Found {
		s.metrics.RecordTaskMutation(ctx, "update", observability.ResultFailure)
		return nil, outcome, domain.ErrTaskNotFound
	}

	s.metrics.RecordTaskMutation(ctx, "update", observability.ResultSuccess)

	task, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, outcome, err
	}
	return task, outcome, nil
}

func (s *taskService) Delete(ctx context.Context, ownerID, id string) error {
	deleted, err := s.taskRepo.DeleteIfOwned(ctx, id, ownerID)
	if err != nil {
		s.metrics.RecordTaskMutation(ctx, "delete", observability.ResultError)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		s.metrics.RecordTaskMutation(ctx, "delete", observability.ResultFailure)
		return domain.ErrTaskNotFound
	}

	s.metrics.RecordTaskMutation(ctx, "delete", observability.ResultSuccess)
	return nil
}

func taskContent(title string, description *string, completed bool) (domain.TaskContent, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.TaskContent{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len([]rune(title)) > maxTitleLength {
		return domain.TaskContent{}, fmt.Errorf("%w: title must be at most %d characters", domain.ErrValidation, maxTitleLength)
	}
	if description != nil && len([]rune(*description)) > maxDescriptionLength {
		return domain.TaskContent{}, fmt.Errorf("%w: description must be at most %d characters", domain.ErrValidation, maxDescriptionLength)
	}

	return domain.TaskContent{
		Title:       title,
		Description: description,
		Completed:   completed,
	}, nil
}
