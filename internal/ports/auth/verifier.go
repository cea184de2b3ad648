package auth

import "context"

// AuthVerifier verifies a bearer token and returns claims or an error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
