package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/users-api/internal/api/middleware"
	"github.com/taskhub/users-api/internal/core/domain"
)

// ctxSubject returns the user ID injected by the Auth middleware. An empty
// value means the route was mounted without the middleware.
func ctxSubject(c echo.Context) (string, error) {
	subject, _ := c.Get(middleware.SubjectKey).(string)
	if subject == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
	}
	return subject, nil
}

// bindAndValidate binds the request into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
