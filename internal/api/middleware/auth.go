package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhub/users-api/internal/core/domain"
	"github.com/taskhub/users-api/internal/metrics"
)

// SubjectKey is the echo context key holding the authenticated user ID.
const SubjectKey = "user_id"

// SubjectResolver turns a session token into the ID of its user.
type SubjectResolver interface {
	CurrentSubject(token string) (string, error)
}

// TokenReader extracts the session token from a request.
type TokenReader interface {
	Read(r *http.Request) (string, error)
}

// Auth validates the session cookie and injects the subject into context.
// Every failure produces the same 401.
func Auth(cookies TokenReader, resolver SubjectResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := cookies.Read(c.Request())
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}

			subject, err := resolver.CurrentSubject(token)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("rejected").Inc()
				if !errors.Is(err, domain.ErrUnauthenticated) {
					log.Error().Err(err).Str("path", c.Path()).Msg("session check failed")
				} else {
					log.Debug().Err(err).Str("path", c.Path()).Msg("session token rejected")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}

			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
			c.Set(SubjectKey, subject)
			return next(c)
		}
	}
}
