package ports

import (
	"context"

	"github.com/taskhub/users-api/internal/core/domain"
)

// UserFilter carries the list query. Field is empty for an unfiltered list.
type UserFilter struct {
	Field string
	Value string
	Skip  int
	Limit int
}

// UserRepository defines persistence operations for user accounts.
// Lookups signal absence with domain.ErrUserNotFound; unique-key violations
// with domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
}
