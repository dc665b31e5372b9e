package ports

import (
	"context"
	"time"

	"github.com/taskhub/users-api/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords. Implementations may run the
// work on a bounded pool, hence the context.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify returns (false, nil) on a wrong password and a non-nil error only
	// when storedHash is unusable.
	Verify(ctx context.Context, plaintext, storedHash string) (bool, error)
}

// TokenIssuer mints and validates signed session tokens.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, domain.TokenClaims, error)
	Validate(token string) (domain.TokenClaims, error)
	SubjectFrom(claims domain.TokenClaims) (string, error)
}

// UserCache is a read-through cache of user profiles.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, bool, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}
