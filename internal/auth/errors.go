package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown identifiers and wrong
	// secrets so callers cannot probe for account existence.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken indicates a malformed, tampered or expired session
	// token. Downstream logic treats it exactly like "not logged in".
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrNotAuthenticated indicates a missing session where one is required.
	ErrNotAuthenticated = errors.New("auth: not authenticated")

	// ErrForbidden indicates a valid session whose role is not permitted
	// for the target resource. Always distinct from ErrNotAuthenticated.
	ErrForbidden = errors.New("auth: forbidden")
)
