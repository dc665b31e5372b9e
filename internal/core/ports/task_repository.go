package ports

import (
	"context"

	"github.com/taskhub/users-api/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks. Every lookup is
// scoped by owner; a task owned by someone else is reported as
// domain.ErrTaskNotFound.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteByUser(ctx context.Context, userID string) error
	ListByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.Task, error)
}
