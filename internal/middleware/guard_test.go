package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nicuhealth/central-station/internal/auth"
	"github.com/nicuhealth/central-station/internal/models"
)

func requestWithSession(role models.Role) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	now := time.Now().UTC()
	ctx := auth.ContextWithSession(req.Context(), &auth.Session{
		IdentityID:  "id-1",
		DisplayName: "Test User",
		Role:        role,
		IssuedAt:    now,
		ExpiresAt:   now.Add(auth.SessionTTL),
	})
	return req.WithContext(ctx)
}

func okHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSessionMiddleware(t *testing.T) {
	var reached bool
	handler := RequireSession(okHandler(&reached))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	if reached || rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: reached = %v, status = %d", reached, rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithSession(models.RoleStaffNurse))
	if !reached || rr.Code != http.StatusOK {
		t.Fatalf("with session: reached = %v, status = %d", reached, rr.Code)
	}
}

func TestRequireRoleMiddleware(t *testing.T) {
	var reached bool
	handler := RequireRole(models.RoleAdmin)(okHandler(&reached))

	// No session at all yields 401, not 403.
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/audit", nil))
	if reached || rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: reached = %v, status = %d", reached, rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithSession(models.RoleStaffNurse))
	if reached || rr.Code != http.StatusForbidden {
		t.Fatalf("wrong role: reached = %v, status = %d", reached, rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithSession(models.RoleAdmin))
	if !reached || rr.Code != http.StatusOK {
		t.Fatalf("allowed role: reached = %v, status = %d", reached, rr.Code)
	}
}

func TestRequireRoleAcceptsAnyListedRole(t *testing.T) {
	var reached bool
	handler := RequireRole(models.ClinicalRoles...)(okHandler(&reached))

	for _, role := range models.ClinicalRoles {
		reached = false
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, requestWithSession(role))
		if !reached || rr.Code != http.StatusOK {
			t.Errorf("role %s: reached = %v, status = %d", role, reached, rr.Code)
		}
	}

	reached = false
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, requestWithSession(models.RoleAdministrative))
	if reached || rr.Code != http.StatusForbidden {
		t.Errorf("administrative: reached = %v, status = %d", reached, rr.Code)
	}
}
