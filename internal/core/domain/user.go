package domain

import (
	"context"
	"errors"
	"time"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Token verification outcomes. ErrTokenMissing is raised before any
// verification happens, when the request carries no token at all.
var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// User models a registered account. The password is only ever kept as a hash.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"nombre"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type principalKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, principalKey{}, u)
}

// UserFromContext returns the authenticated user stored by WithUser, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(principalKey{}).(*User)
	return u, ok && u != nil
}
