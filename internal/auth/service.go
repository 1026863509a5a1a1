package auth

import (
	"context"
	"time"
)

// Service composes credential verification with session issuance.
type Service struct {
	verifier *Verifier
	tokens   *TokenService
}

// NewService wires the credential verifier and token service together.
func NewService(verifier *Verifier, tokens *TokenService) *Service {
	return &Service{verifier: verifier, tokens: tokens}
}

// Authenticate verifies the submitted credentials and, on success, issues
// a signed session token. Failures surface as ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, secret string) (Identity, string, time.Time, error) {
	identity, err := s.verifier.Verify(ctx, email, secret)
	if err != nil {
		return Identity{}, "", time.Time{}, err
	}
	token, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		return Identity{}, "", time.Time{}, err
	}
	return identity, token, expiresAt, nil
}

// VerifyToken validates a presented session token.
func (s *Service) VerifyToken(token string) (*Session, error) {
	return s.tokens.Verify(token)
}
