package ports

import (
	"context"
	"time"

	"github.com/taskhub/users-api/internal/core/domain"
)

// LoginResult is returned on a successful login. TTL is the lifetime the token
// was issued with and must be reused for the session cookie.
type LoginResult struct {
	Token  string
	Claims domain.TokenClaims
	TTL    time.Duration
	User   *domain.User
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	CurrentSubject(token string) (string, error)
}
