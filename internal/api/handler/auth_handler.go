package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/users-api/internal/api/session"
	"github.com/taskhub/users-api/internal/core/ports"
)

const tokenType = "http-only cookie"

type AuthHandler struct {
	authService ports.AuthService
	cookies     *session.Cookies
}

func NewAuthHandler(authService ports.AuthService, cookies *session.Cookies) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// Login authenticates a user and stores the session token in an http-only cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Attach(c.Response(), result.Token, result.TTL)
	return c.JSON(http.StatusOK, loginResponse{Token: result.Token, TokenType: tokenType})
}

// Logout clears the session cookie. Copies of the token remain valid until
// they expire.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.Revoke(c.Response())
	return c.JSON(http.StatusOK, messageResponse{Message: "Logout successful"})
}
