package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/users-api/internal/core/domain"
	"github.com/taskhub/users-api/internal/core/ports"
	"github.com/taskhub/users-api/internal/metrics"
)

type TaskService struct {
	repo   ports.TaskRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, users: users, logger: logger}
}

// Create adds a task for userID. The owner must still exist: a deleted user
// can hold a token that has not expired yet.
func (s *TaskService) Create(ctx context.Context, userID string, input ports.TaskInput) (*domain.Task, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: task name is required", domain.ErrInvalidInput)
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task, err := s.repo.Create(ctx, &domain.Task{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	metrics.TasksCreatedTotal.Inc()
	s.logger.Debug().Str("task_id", task.ID).Str("user_id", userID).Msg("task created")
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, taskID, userID)
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, input ports.TaskInput) (*domain.Task, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: task name is required", domain.ErrInvalidInput)
	}
	return s.repo.Update(ctx, &domain.Task{
		ID:          taskID,
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		UpdatedAt:   time.Now().UTC(),
	})
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	return s.repo.Delete(ctx, taskID, userID)
}

// List returns a page of userID's tasks. Limit defaults to 100 and is capped at 100.
func (s *TaskService) List(ctx context.Context, userID string, skip, limit int) ([]*domain.Task, error) {
	if skip < 0 {
		return nil, fmt.Errorf("%w: skip must not be negative", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListByUser(ctx, userID, skip, limit)
}
