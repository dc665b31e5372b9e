package ports

import (
	"context"

	"github.com/taskhub/users-api/internal/core/domain"
)

// CreateUserInput carries a registration request. Password is plaintext and
// is hashed before it reaches the repository.
type CreateUserInput struct {
	Name     string
	Age      int
	Username string
	Password string
	CPF      string
}

// UpdateUserInput replaces the profile of an existing user. An empty Password
// keeps the current credential.
type UpdateUserInput struct {
	Name     string
	Age      int
	Username string
	Password string
	CPF      string
}

// ListUsersInput carries the list endpoint parameters.
type ListUsersInput struct {
	Skip        int
	Limit       int
	Filter      string
	FilterValue string
}

// UserService defines use-case operations for user accounts.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, input ListUsersInput) ([]*domain.User, error)
}
