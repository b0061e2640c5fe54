package auth

import (
	"context"

	"github.com/yourname/studytracker/internal"
)

// Provider resolves a bearer token to a principal. The returned identity is
// the only ownership scope handlers may use.
type Provider interface {
	Resolve(ctx context.Context, token string) (*internal.User, error)
}
