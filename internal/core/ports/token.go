package ports

// TokenManager issues and verifies signed, time-limited access tokens.
type TokenManager interface {
	Issue(userID string) (string, error)
	// Verify returns the user id embedded in token, or one of
	// domain.ErrTokenExpired / domain.ErrTokenInvalid.
	Verify(token string) (string, error)
}
