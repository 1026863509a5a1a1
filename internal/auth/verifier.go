package auth

import (
	"context"
	"strings"

	"github.com/nicuhealth/central-station/internal/models"
)

// Identity is the minimal claim returned after credential verification.
// It never carries the credential hash.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
	Role        models.Role
}

// IdentityStore looks up provisioned identities. The identifier match is
// case-insensitive.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Verifier checks submitted credentials against the identity store.
type Verifier struct {
	store IdentityStore
}

// NewVerifier creates a credential verifier backed by the given store.
func NewVerifier(store IdentityStore) *Verifier {
	return &Verifier{store: store}
}

// Verify authenticates an identifier/secret pair.
//
// Empty inputs fail before the store is consulted. Unknown identifiers
// and wrong secrets both return ErrInvalidCredentials so the two cases
// are externally indistinguishable. The secret comparison is byte-exact.
func (v *Verifier) Verify(ctx context.Context, email, secret string) (Identity, error) {
	if email == "" || secret == "" {
		return Identity{}, ErrInvalidCredentials
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Identity{}, ErrInvalidCredentials
	}

	user, err := v.store.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return Identity{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return Identity{}, ErrInvalidCredentials
	}
	if err := VerifyPassword(user.PasswordHash, secret); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}, nil
}
