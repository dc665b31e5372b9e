// Package session binds signed session tokens to HTTP cookies.
package session

import (
	"net/http"
	"time"

	"github.com/taskhub/users-api/internal/core/domain"
)

// Cookies writes and reads the session cookie. The zero value is not usable;
// build one with NewCookies.
type Cookies struct {
	name   string
	secure bool
	now    func() time.Time
}

func NewCookies(name string, secure bool) *Cookies {
	return &Cookies{name: name, secure: secure, now: time.Now}
}

// Name returns the cookie name.
func (c *Cookies) Name() string { return c.name }

// Attach stores token in an http-only cookie living for ttl. ttl must be the
// lifetime the token was issued with so the browser drops the cookie when the
// token stops validating.
func (c *Cookies) Attach(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge(ttl),
		Expires:  c.now().Add(ttl).UTC(),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Revoke instructs the client to drop the session cookie immediately. The
// token itself stays valid until it expires.
func (c *Cookies) Revoke(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the session token carried by r.
func (c *Cookies) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return "", domain.ErrUnauthenticated
	}
	return cookie.Value, nil
}

// maxAge rounds ttl up to whole seconds; MaxAge=0 would mean a session cookie.
func maxAge(ttl time.Duration) int {
	secs := int(ttl / time.Second)
	if ttl%time.Second != 0 {
		secs++
	}
	return secs
}
