package auth

import (
	"net/url"
	"strings"

	"github.com/nicuhealth/central-station/internal/models"
)

// DecisionKind enumerates the outcomes of an authorization decision.
type DecisionKind int

const (
	// DecisionNext lets the request through.
	DecisionNext DecisionKind = iota
	// DecisionRedirectLogin sends the client to the login page, carrying
	// the originally requested path as a callback.
	DecisionRedirectLogin
	// DecisionRedirectHome sends an authenticated client away from the
	// login page.
	DecisionRedirectHome
	// DecisionRedirectUnauthorized sends a client whose role is not
	// permitted to the unauthorized page.
	DecisionRedirectUnauthorized
)

// Decision is the result of evaluating a request against the policy.
// Location is set for the redirect kinds.
type Decision struct {
	Kind     DecisionKind
	Location string
}

// Policy is the static permission table plus the page layout it protects.
// It is built once at process start and injected wherever authorization
// decisions are made, so the edge middleware and the handler guards share
// a single source of truth.
type Policy struct {
	routes        map[string][]models.Role
	publicPages   map[string]struct{}
	openPaths     map[string]struct{}
	openPrefixes  []string
	patientPrefix string

	loginPath        string
	homePath         string
	unauthorizedPath string
}

// PolicyConfig describes a permission table.
type PolicyConfig struct {
	// Routes maps a protected path to its allowed roles. Paths absent
	// from the map are open to any authenticated identity.
	Routes map[string][]models.Role
	// PublicPages are reachable without authentication.
	PublicPages []string
	// OpenPaths bypass authorization entirely (health checks).
	OpenPaths []string
	// OpenPrefixes bypass authorization entirely (the auth protocol
	// endpoints; rule ordering makes login itself reachable).
	OpenPrefixes []string
	// PatientPrefix marks the dynamic per-patient routes, which are never
	// role-restricted at this layer.
	PatientPrefix string

	LoginPath        string
	HomePath         string
	UnauthorizedPath string
}

// NewPolicy builds an immutable Policy from the given configuration.
func NewPolicy(cfg PolicyConfig) *Policy {
	p := &Policy{
		routes:           make(map[string][]models.Role, len(cfg.Routes)),
		publicPages:      make(map[string]struct{}, len(cfg.PublicPages)),
		openPaths:        make(map[string]struct{}, len(cfg.OpenPaths)),
		openPrefixes:     append([]string(nil), cfg.OpenPrefixes...),
		patientPrefix:    cfg.PatientPrefix,
		loginPath:        cfg.LoginPath,
		homePath:         cfg.HomePath,
		unauthorizedPath: cfg.UnauthorizedPath,
	}
	for path, roles := range cfg.Routes {
		p.routes[path] = append([]models.Role(nil), roles...)
	}
	for _, page := range cfg.PublicPages {
		p.publicPages[page] = struct{}{}
	}
	for _, path := range cfg.OpenPaths {
		p.openPaths[path] = struct{}{}
	}
	if p.loginPath == "" {
		p.loginPath = "/login"
	}
	if p.homePath == "" {
		p.homePath = "/"
	}
	if p.unauthorizedPath == "" {
		p.unauthorizedPath = "/unauthorized"
	}
	return p
}

// DefaultPolicy returns the unit's standing permission table.
func DefaultPolicy() *Policy {
	return NewPolicy(PolicyConfig{
		Routes: map[string][]models.Role{
			"/orders":      {models.RoleAdmin, models.RolePhysician, models.RoleChargeNurse, models.RoleStaffNurse},
			"/medications": {models.RoleAdmin, models.RolePhysician, models.RoleChargeNurse, models.RoleStaffNurse},
			"/labs":        {models.RoleAdmin, models.RolePhysician, models.RoleChargeNurse, models.RoleStaffNurse},
			"/handoff":     {models.RoleAdmin, models.RolePhysician, models.RoleChargeNurse, models.RoleStaffNurse},
			"/discharge":   {models.RoleAdmin, models.RolePhysician, models.RoleChargeNurse, models.RoleStaffNurse, models.RoleAdministrative},
			"/reports":     {models.RoleAdmin, models.RoleChargeNurse, models.RoleAdministrative},
			"/settings":    {models.RoleAdmin, models.RoleChargeNurse},
			"/audit":       {models.RoleAdmin},
		},
		PublicPages:      []string{"/login", "/unauthorized"},
		OpenPaths:        []string{"/health", "/ready", "/metrics"},
		OpenPrefixes:     []string{"/api/auth/"},
		PatientPrefix:    "/patient/",
		LoginPath:        "/login",
		HomePath:         "/",
		UnauthorizedPath: "/unauthorized",
	})
}

// Decide evaluates a request. The precedence order is load-bearing: the
// open-path bypass must run before the unauthenticated redirect or the
// auth endpoints themselves would be unreachable.
//
// A session that is authenticated but carries no role skips the table
// entirely. That fail-open is inherited behavior kept on purpose; see
// TestDecideMissingRoleSkipsRBAC before changing it.
func (p *Policy) Decide(authenticated bool, role models.Role, path string) Decision {
	if p.isOpen(path) {
		return Decision{Kind: DecisionNext}
	}

	if authenticated && path == p.loginPath {
		return Decision{Kind: DecisionRedirectHome, Location: p.homePath}
	}

	if !authenticated {
		if _, public := p.publicPages[path]; !public {
			return Decision{
				Kind:     DecisionRedirectLogin,
				Location: p.loginPath + "?callbackUrl=" + url.QueryEscape(path),
			}
		}
		return Decision{Kind: DecisionNext}
	}

	if role != "" {
		if _, public := p.publicPages[path]; !public {
			if strings.HasPrefix(path, p.patientPrefix) {
				return Decision{Kind: DecisionNext}
			}
			if allowed, restricted := p.routes[path]; restricted {
				if role.In(allowed) {
					return Decision{Kind: DecisionNext}
				}
				return Decision{Kind: DecisionRedirectUnauthorized, Location: p.unauthorizedPath}
			}
		}
	}

	return Decision{Kind: DecisionNext}
}

// AllowedRoles returns the explicit role set for a path, if any.
func (p *Policy) AllowedRoles(path string) ([]models.Role, bool) {
	roles, ok := p.routes[path]
	if !ok {
		return nil, false
	}
	return append([]models.Role(nil), roles...), true
}

// LoginPath returns the configured login page path.
func (p *Policy) LoginPath() string { return p.loginPath }

// UnauthorizedPath returns the configured unauthorized page path.
func (p *Policy) UnauthorizedPath() string { return p.unauthorizedPath }

func (p *Policy) isOpen(path string) bool {
	if _, ok := p.openPaths[path]; ok {
		return true
	}
	for _, prefix := range p.openPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
