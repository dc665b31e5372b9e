package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
)

// Config is loaded once at startup and treated as read-only afterwards.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	// AllowedHosts is enforced on the Host header outside development. Empty
	// accepts any host.
	AllowedHosts []string `env:"ALLOWED_HOSTS"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AuthConfig drives password hashing and session tokens. Rotating JWTSecret
// invalidates every token already handed out.
type AuthConfig struct {
	JWTSecret    string `env:"JWT_SECRET, required"`
	JWTAlgorithm string `env:"JWT_ALGORITHM, default=HS256"`
	JWTKeyName   string `env:"JWT_KEY_NAME,  default=token"`
	JWTExpires   int    `env:"JWT_EXPIRES,   default=86400"`
	JWTIssuer    string `env:"JWT_ISSUER"`

	CookieSecure bool `env:"COOKIE_SECURE, default=false"`

	BcryptCost  int `env:"BCRYPT_COST,  default=10"`
	HashWorkers int `env:"HASH_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=users_api"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,     default=localhost:6379"`
	DB           int           `env:"REDIS_DB,       default=0"`
	UserCacheTTL time.Duration `env:"USER_CACHE_TTL, default=5m"`
}

// TokenTTL is the lifetime shared by the session token and its cookie.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.JWTExpires) * time.Second
}

// IsDevelopment reports whether the process runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Validate rejects settings the auth subsystem cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if _, ok := jwt.GetSigningMethod(c.Auth.JWTAlgorithm).(*jwt.SigningMethodHMAC); !ok {
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM %q is not an HMAC algorithm", c.Auth.JWTAlgorithm))
	}
	if c.Auth.JWTExpires <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRES must be positive, got %d", c.Auth.JWTExpires))
	}
	if c.Auth.JWTKeyName == "" {
		errs = append(errs, errors.New("JWT_KEY_NAME must not be empty"))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be within [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context, logger zerolog.Logger) *Config {
	cfg, err := load(ctx, envconfig.OsLookuper())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
