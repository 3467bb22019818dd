package pasetotoken

import (
	"time"
)

// Claims is the app-facing token payload. UserID is the identity service's
// opaque subject; Role drives authorization.
type Claims struct {
	UserID string
	Role   string

	Issuer   string
	Audience string

	IssuedAt  time.Time
	NotBefore time.Time
	ExpiresAt time.Time
	TokenID   string // jti
}

func (c *Claims) GetUserID() string {
	return c.UserID
}

func (c *Claims) GetRole() string {
	return c.Role
}

func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
