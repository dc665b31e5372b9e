package domain

import "time"

// TokenClaims is the identity carried inside a signed session token. It is
// never persisted server-side.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
	ID        string
}
