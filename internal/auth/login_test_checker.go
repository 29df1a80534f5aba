package auth

import "context"

// LoginTestChecker is a Checker for unit tests, mapping tokens to user IDs directly.
type LoginTestChecker struct {
	LoggedSessions map[string]string
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]string{},
	}
}

func (c *LoginTestChecker) UserIDFromToken(_ context.Context, token string) (string, error) {
	userID, ok := c.LoggedSessions[token]
	if !ok {
		return "", ErrNotLoggedIn
	}
	return userID, nil
}
