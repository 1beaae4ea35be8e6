package auth

import (
	"context"

	"github.com/labstack/echo/v4"
)

// User is the authenticated identity resolved from the session cookie. It is
// carried as an explicit context value, never ambient state.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	GivenName string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Picture   string `json:"picture,omitempty"`
}

type userKey struct{}

const echoUserKey = "auth.user"

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the authenticated user, or nil when the request is
// anonymous.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userKey{}).(*User)
	return u
}

// SetEchoUser stores the user on the echo context for handlers that read it
// directly.
func SetEchoUser(c echo.Context, u *User) {
	c.Set(echoUserKey, u)
}

// EchoUser returns the user from the echo context, or nil.
func EchoUser(c echo.Context) *User {
	u, _ := c.Get(echoUserKey).(*User)
	return u
}
