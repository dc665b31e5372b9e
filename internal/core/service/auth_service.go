package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/users-api/internal/core/domain"
	"github.com/taskhub/users-api/internal/core/ports"
	"github.com/taskhub/users-api/internal/metrics"
)

const defaultTokenTTL = 24 * time.Hour

// AuthService implements login and session token resolution.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	ttl    time.Duration
	log    zerolog.Logger

	dummyMu   sync.Mutex
	dummyHash string
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, ttl time.Duration, log zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, ttl: ttl, log: log}
}

// Login checks the password of username and mints a session token for the
// user's ID. Unknown usernames and wrong passwords both yield
// domain.ErrUnauthenticated; the reason is only logged.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, s.reject(username, "empty credentials")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("login: %w", err)
		}
		s.burnVerify(ctx, password)
		return nil, s.reject(username, "unknown username")
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, domain.ErrMalformedHash) {
			s.log.Error().Err(err).Str("user_id", user.ID).Msg("stored password hash is corrupt")
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		return nil, s.reject(username, "wrong password")
	}

	token, claims, err := s.tokens.Issue(user.ID, s.ttl)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Time("expires_at", claims.ExpiresAt).Msg("login succeeded")

	return &ports.LoginResult{Token: token, Claims: claims, TTL: s.ttl, User: user}, nil
}

// CurrentSubject resolves a session token to the user ID it was issued for.
func (s *AuthService) CurrentSubject(token string) (string, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return "", err
	}
	return s.tokens.SubjectFrom(claims)
}

func (s *AuthService) reject(username, reason string) error {
	metrics.LoginAttemptsTotal.WithLabelValues("unauthenticated").Inc()
	s.log.Warn().Str("username", username).Str("reason", reason).Msg("login rejected")
	return domain.ErrUnauthenticated
}

// burnVerify spends one bcrypt comparison on unknown usernames so they take
// as long to reject as wrong passwords. The placeholder hash is computed with
// the caller's context and cached only once it succeeds.
func (s *AuthService) burnVerify(ctx context.Context, password string) {
	s.dummyMu.Lock()
	h := s.dummyHash
	s.dummyMu.Unlock()

	if h == "" {
		var err error
		h, err = s.hasher.Hash(ctx, "unknown-user-placeholder")
		if err != nil {
			s.log.Debug().Err(err).Msg("skipping placeholder hash comparison")
			return
		}
		s.dummyMu.Lock()
		if s.dummyHash == "" {
			s.dummyHash = h
		}
		s.dummyMu.Unlock()
	}
	_, _ = s.hasher.Verify(ctx, password, h)
}
