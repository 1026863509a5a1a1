package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/nicuhealth/central-station/internal/models"
)

const testSecret = "test-signing-secret"

func testIdentity() Identity {
	return Identity{
		ID:          "9f4c2f1e-8f27-4a7e-9a65-0f6de2b9b001",
		Email:       "nurse@hospital.org",
		DisplayName: "Jane Smith, RN",
		Role:        models.RoleStaffNurse,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	identity := testIdentity()
	token, expiresAt, err := svc.Issue(identity)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}

	session, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if session.IdentityID != identity.ID {
		t.Errorf("IdentityID = %q, want %q", session.IdentityID, identity.ID)
	}
	if session.DisplayName != identity.DisplayName {
		t.Errorf("DisplayName = %q, want %q", session.DisplayName, identity.DisplayName)
	}
	if session.Role != identity.Role {
		t.Errorf("Role = %q, want %q", session.Role, identity.Role)
	}
}

func TestTokenExpiryIsExactlyEightHours(t *testing.T) {
	issuedAt := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	svc, err := NewTokenService(testSecret, WithClock(func() time.Time { return issuedAt }))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	_, expiresAt, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if got := expiresAt.Sub(issuedAt); got != 8*time.Hour {
		t.Fatalf("lifetime = %v, want 8h", got)
	}
}

func TestTokenExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	now := issuedAt

	svc, err := NewTokenService(testSecret, WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, _, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	now = issuedAt.Add(8*time.Hour - time.Second)
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token at 8h-1s should verify: %v", err)
	}

	now = issuedAt.Add(8*time.Hour + time.Second)
	if _, err := svc.Verify(token); err != ErrInvalidToken {
		t.Fatalf("token at 8h+1s: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenVerifyRejectsTampering(t *testing.T) {
	svc, err := NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	token, _, err := svc.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Verify(tampered); err != ErrInvalidToken {
		t.Fatalf("tampered token: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenService(testSecret)
	other, _ := NewTokenService("a-different-secret")

	token, _, err := issuer.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := other.Verify(token); err != ErrInvalidToken {
		t.Fatalf("wrong secret: err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenVerifyRejectsGarbage(t *testing.T) {
	svc, _ := NewTokenService(testSecret)

	for _, raw := range []string{"", "   ", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(raw); err != ErrInvalidToken {
			t.Errorf("Verify(%q): err = %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewTokenService("   "); err == nil {
		t.Fatal("expected error for blank secret")
	}
}
