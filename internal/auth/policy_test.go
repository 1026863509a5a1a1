package auth

import (
	"net/url"
	"strings"
	"testing"

	"github.com/nicuhealth/central-station/internal/models"
)

func TestDecideDefaultAllowForUnlistedPaths(t *testing.T) {
	policy := DefaultPolicy()

	for _, role := range models.AllRoles {
		for _, path := range []string{"/", "/dashboard", "/patients", "/growth", "/feeding"} {
			d := policy.Decide(true, role, path)
			if d.Kind != DecisionNext {
				t.Errorf("Decide(true, %s, %s) = %v, want Next", role, path, d.Kind)
			}
		}
	}
}

func TestDecideTableMembership(t *testing.T) {
	policy := DefaultPolicy()

	allowed, ok := policy.AllowedRoles("/orders")
	if !ok {
		t.Fatal("expected /orders to have an explicit entry")
	}

	for _, role := range models.AllRoles {
		d := policy.Decide(true, role, "/orders")
		if role.In(allowed) {
			if d.Kind != DecisionNext {
				t.Errorf("Decide(true, %s, /orders) = %v, want Next", role, d.Kind)
			}
		} else {
			if d.Kind != DecisionRedirectUnauthorized {
				t.Errorf("Decide(true, %s, /orders) = %v, want RedirectUnauthorized", role, d.Kind)
			}
		}
	}
}

func TestDecideLoginPage(t *testing.T) {
	policy := DefaultPolicy()

	d := policy.Decide(false, "", "/login")
	if d.Kind != DecisionNext {
		t.Fatalf("unauthenticated /login = %v, want Next", d.Kind)
	}

	d = policy.Decide(true, models.RoleAdmin, "/login")
	if d.Kind != DecisionRedirectHome {
		t.Fatalf("authenticated /login = %v, want RedirectHome", d.Kind)
	}
	if d.Location != "/" {
		t.Fatalf("RedirectHome location = %q, want /", d.Location)
	}
}

func TestDecideUnauthenticatedRedirectCarriesCallback(t *testing.T) {
	policy := DefaultPolicy()

	d := policy.Decide(false, "", "/patients")
	if d.Kind != DecisionRedirectLogin {
		t.Fatalf("Decide = %v, want RedirectLogin", d.Kind)
	}

	u, err := url.Parse(d.Location)
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if u.Path != "/login" {
		t.Fatalf("redirect path = %q, want /login", u.Path)
	}
	if got := u.Query().Get("callbackUrl"); got != "/patients" {
		t.Fatalf("callbackUrl = %q, want /patients", got)
	}
}

func TestDecideAuthProtocolAlwaysOpen(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		authenticated bool
		role          models.Role
	}{
		{false, ""},
		{true, models.RoleAdmin},
		{true, models.RoleAdministrative},
		{true, ""},
	}
	for _, tc := range cases {
		d := policy.Decide(tc.authenticated, tc.role, "/api/auth/session")
		if d.Kind != DecisionNext {
			t.Errorf("Decide(%v, %q, /api/auth/session) = %v, want Next", tc.authenticated, tc.role, d.Kind)
		}
	}
	for _, path := range []string{"/health", "/ready", "/metrics"} {
		if d := policy.Decide(false, "", path); d.Kind != DecisionNext {
			t.Errorf("Decide(false, nil, %s) = %v, want Next", path, d.Kind)
		}
	}
}

func TestDecideAdministrativeTableDistinction(t *testing.T) {
	policy := DefaultPolicy()

	d := policy.Decide(true, models.RoleAdministrative, "/orders")
	if d.Kind != DecisionRedirectUnauthorized {
		t.Fatalf("Administrative /orders = %v, want RedirectUnauthorized", d.Kind)
	}
	if d.Location != "/unauthorized" {
		t.Fatalf("unauthorized location = %q, want /unauthorized", d.Location)
	}

	d = policy.Decide(true, models.RoleAdministrative, "/discharge")
	if d.Kind != DecisionNext {
		t.Fatalf("Administrative /discharge = %v, want Next", d.Kind)
	}
}

func TestDecidePatientDetailBypass(t *testing.T) {
	policy := DefaultPolicy()

	for _, role := range models.AllRoles {
		d := policy.Decide(true, role, "/patient/12345")
		if d.Kind != DecisionNext {
			t.Errorf("Decide(true, %s, /patient/12345) = %v, want Next", role, d.Kind)
		}
	}

	// The bypass wins even over an explicit table entry.
	policy = NewPolicy(PolicyConfig{
		Routes: map[string][]models.Role{
			"/patient/restricted": {models.RoleAdmin},
		},
		PatientPrefix: "/patient/",
		PublicPages:   []string{"/login", "/unauthorized"},
	})
	d := policy.Decide(true, models.RoleStaffNurse, "/patient/restricted")
	if d.Kind != DecisionNext {
		t.Fatalf("patient prefix with table entry = %v, want Next", d.Kind)
	}
}

// A valid session without a role claim skips RBAC entirely instead of
// being denied. Inherited behavior, kept deliberately; changing it to
// deny is a security-posture change that needs product sign-off.
func TestDecideMissingRoleSkipsRBAC(t *testing.T) {
	policy := DefaultPolicy()

	d := policy.Decide(true, "", "/audit")
	if d.Kind != DecisionNext {
		t.Fatalf("authenticated with no role on /audit = %v, want Next (fail-open)", d.Kind)
	}
}

func TestDecidePrecedenceOpenBeforeAuthRedirect(t *testing.T) {
	policy := DefaultPolicy()

	// If the unauthenticated redirect ran first, the login endpoint
	// itself would be unreachable.
	d := policy.Decide(false, "", "/api/auth/login")
	if d.Kind != DecisionNext {
		t.Fatalf("unauthenticated /api/auth/login = %v, want Next", d.Kind)
	}
}

func TestNewPolicyCopiesInputs(t *testing.T) {
	routes := map[string][]models.Role{
		"/settings": {models.RoleAdmin},
	}
	policy := NewPolicy(PolicyConfig{Routes: routes})

	routes["/settings"] = append(routes["/settings"], models.RoleStaffNurse)
	allowed, _ := policy.AllowedRoles("/settings")
	if len(allowed) != 1 {
		t.Fatalf("policy shares storage with caller, allowed = %v", allowed)
	}
}

func TestDefaultPolicyRouteTable(t *testing.T) {
	policy := DefaultPolicy()

	clinical := "/orders /medications /labs /handoff"
	for _, path := range strings.Fields(clinical) {
		if d := policy.Decide(true, models.RoleStaffNurse, path); d.Kind != DecisionNext {
			t.Errorf("StaffNurse %s = %v, want Next", path, d.Kind)
		}
		if d := policy.Decide(true, models.RoleAdministrative, path); d.Kind != DecisionRedirectUnauthorized {
			t.Errorf("Administrative %s = %v, want RedirectUnauthorized", path, d.Kind)
		}
	}

	if d := policy.Decide(true, models.RoleStaffNurse, "/settings"); d.Kind != DecisionRedirectUnauthorized {
		t.Errorf("StaffNurse /settings = %v, want RedirectUnauthorized", d.Kind)
	}
	if d := policy.Decide(true, models.RoleChargeNurse, "/settings"); d.Kind != DecisionNext {
		t.Errorf("ChargeNurse /settings = %v, want Next", d.Kind)
	}
	if d := policy.Decide(true, models.RolePhysician, "/audit"); d.Kind != DecisionRedirectUnauthorized {
		t.Errorf("Physician /audit = %v, want RedirectUnauthorized", d.Kind)
	}
	if d := policy.Decide(true, models.RoleAdmin, "/audit"); d.Kind != DecisionNext {
		t.Errorf("Admin /audit = %v, want Next", d.Kind)
	}
}
