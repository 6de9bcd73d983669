package auth

import (
	"context"

	"inanisgarage/internal/models"
)

type ctxKey string

const userKey ctxKey = "userClaims"

// Claims is the authenticated identity carried through a request context.
// Role holds exactly one role name; only "admin" is ever special-cased.
type Claims struct {
	Subject string
	Role    string
}

func (c Claims) IsAdmin() bool { return c.Role == models.RoleAdmin }

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, userKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(userKey).(Claims); ok {
		return v
	}
	return Claims{}
}

func Subject(ctx context.Context) string {
	return FromContext(ctx).Subject
}
