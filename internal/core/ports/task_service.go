package ports

import (
	"context"

	"github.com/taskhub/users-api/internal/core/domain"
)

// TaskInput holds the writable fields of a task.
type TaskInput struct {
	Name        string
	Description string
}

// TaskService defines task operations. userID is always the authenticated
// subject; callers never pick the owner.
type TaskService interface {
	Create(ctx context.Context, userID string, input TaskInput) (*domain.Task, error)
	Get(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Update(ctx context.Context, userID, taskID string, input TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	List(ctx context.Context, userID string, skip, limit int) ([]*domain.Task, error)
}
