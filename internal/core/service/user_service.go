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

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

type UserService struct {
	repo   ports.UserRepository
	tasks  ports.TaskRepository
	hasher ports.PasswordHasher
	cache  ports.UserCache
	logger zerolog.Logger
}

// NewUserService wires the user use cases. cache may be nil.
func NewUserService(repo ports.UserRepository, tasks ports.TaskRepository, hasher ports.PasswordHasher, cache ports.UserCache, logger zerolog.Logger) *UserService {
	if cache == nil {
		cache = noopCache{}
	}
	return &UserService{repo: repo, tasks: tasks, hasher: hasher, cache: cache, logger: logger}
}

// Create registers a user, storing only the bcrypt hash of the password.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:       input.Name,
		Age:        input.Age,
		CPF:        input.CPF,
		Credential: domain.Credential{Username: input.Username, PasswordHash: hash},
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

// Get returns the profile of id, served from the cache when possible.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	cached, found, err := s.cache.Get(ctx, id)
	switch {
	case err != nil:
		metrics.UserCacheLookupsTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Str("user_id", id).Msg("user cache lookup failed, reading from store")
	case found:
		metrics.UserCacheLookupsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.UserCacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, user); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to cache user")
	}
	return user, nil
}

// Update replaces the profile of id. A non-empty password overwrites the
// credential with a fresh hash.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Age = input.Age
	user.CPF = input.CPF
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Password != "" {
		hash, err := s.hasher.Hash(ctx, input.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

// Delete removes the user and every task it owns. Session tokens already
// issued for the user stay cryptographically valid until they expire.
func (s *UserService) Delete(ctx context.Context, id string) error {
	// Tasks first: a failed cascade must leave the user in place.
	if err := s.tasks.DeleteByUser(ctx, id); err != nil {
		return fmt.Errorf("delete user tasks: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// List returns a page of users. Limit defaults to 100 and is capped at 100.
func (s *UserService) List(ctx context.Context, input ports.ListUsersInput) ([]*domain.User, error) {
	if input.Skip < 0 {
		return nil, fmt.Errorf("%w: skip must not be negative", domain.ErrInvalidInput)
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return s.repo.List(ctx, ports.UserFilter{
		Field: input.Filter,
		Value: input.FilterValue,
		Skip:  input.Skip,
		Limit: limit,
	})
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to invalidate cached user")
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*domain.User, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, *domain.User) error                 { return nil }
func (noopCache) Invalidate(context.Context, string) error                { return nil }
