package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskhub/users-api/internal/core/domain"
)

// TokenConfig is the signing configuration, fixed for the process lifetime.
// Changing Secret invalidates every token issued before the change.
type TokenConfig struct {
	Secret    []byte
	Algorithm string
	Issuer    string
}

// TokenService issues and validates HMAC-signed JWTs carrying a subject and
// an expiry. No server-side state is kept.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
	clock  Clock
	parser *jwt.Parser
}

// NewTokenService builds a TokenService. Only the HMAC family (HS256, HS384,
// HS512) is accepted. A nil clock means the wall clock.
func NewTokenService(cfg TokenConfig, clock Clock) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token service: empty secret")
	}
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("token service: unsupported algorithm %q", cfg.Algorithm)
	}
	if clock == nil {
		clock = SystemClock{}
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(clock.Now),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &TokenService{
		secret: cfg.Secret,
		method: method,
		issuer: cfg.Issuer,
		clock:  clock,
		parser: jwt.NewParser(opts...),
	}, nil
}

// Issue signs a token for subject that expires ttl from now. The expiry is
// rounded up to the whole second the JWT encoding can represent.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, domain.TokenClaims, error) {
	if subject == "" {
		return "", domain.TokenClaims{}, fmt.Errorf("issue token: %w: empty subject", domain.ErrInvalidInput)
	}
	if ttl <= 0 {
		return "", domain.TokenClaims{}, fmt.Errorf("issue token: %w: ttl must be positive", domain.ErrInvalidInput)
	}

	now := s.clock.Now()
	rc := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(ceilSecond(now.Add(ttl))),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(s.method, rc).SignedString(s.secret)
	if err != nil {
		return "", domain.TokenClaims{}, fmt.Errorf("issue token: %w", err)
	}
	return signed, toClaims(rc), nil
}

// Validate checks signature, algorithm and expiry. The token is valid only
// while now < exp. Every failure wraps domain.ErrUnauthenticated.
func (s *TokenService) Validate(token string) (domain.TokenClaims, error) {
	var rc jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(token, &rc, s.key); err != nil {
		return domain.TokenClaims{}, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	return toClaims(rc), nil
}

// SubjectFrom returns the subject, treating an empty one as malformed claims.
func (s *TokenService) SubjectFrom(claims domain.TokenClaims) (string, error) {
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", domain.ErrUnauthenticated)
	}
	return claims.Subject, nil
}

func (s *TokenService) key(*jwt.Token) (any, error) {
	return s.secret, nil
}

func toClaims(rc jwt.RegisteredClaims) domain.TokenClaims {
	c := domain.TokenClaims{Subject: rc.Subject, ID: rc.ID}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time.UTC()
	}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time.UTC()
	}
	return c
}

func ceilSecond(t time.Time) time.Time {
	tr := t.Truncate(time.Second)
	if tr.Before(t) {
		return tr.Add(time.Second)
	}
	return tr
}
