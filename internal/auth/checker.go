package auth

import "context"

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

// Checker resolves a session token to the owning user ID.
type Checker interface {
	UserIDFromToken(ctx context.Context, token string) (string, error)
}
