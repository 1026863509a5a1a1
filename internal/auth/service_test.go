package auth

import (
	"context"
	"testing"
)

func TestAuthenticateIssuesVerifiableSession(t *testing.T) {
	store := newFakeStore(t, "Ward#Secure2024!")
	tokens, err := NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	svc := NewService(NewVerifier(store), tokens)

	identity, token, expiresAt, err := svc.Authenticate(context.Background(), "nurse@hospital.org", "Ward#Secure2024!")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if expiresAt.IsZero() {
		t.Fatal("expiry not set")
	}

	session, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if session.IdentityID != identity.ID {
		t.Errorf("IdentityID = %q, want %q", session.IdentityID, identity.ID)
	}
	if session.Role != identity.Role {
		t.Errorf("Role = %q, want %q", session.Role, identity.Role)
	}
	if session.DisplayName != identity.DisplayName {
		t.Errorf("DisplayName = %q, want %q", session.DisplayName, identity.DisplayName)
	}
}

func TestAuthenticateBadCredentialsIssuesNothing(t *testing.T) {
	store := newFakeStore(t, "Ward#Secure2024!")
	tokens, _ := NewTokenService(testSecret)
	svc := NewService(NewVerifier(store), tokens)

	_, token, _, err := svc.Authenticate(context.Background(), "nurse@hospital.org", "wrong")
	if err != ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if token != "" {
		t.Fatal("token issued for failed authentication")
	}
}
