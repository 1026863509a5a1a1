package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nicuhealth/central-station/internal/auth"
	"github.com/nicuhealth/central-station/internal/metrics"
	"github.com/nicuhealth/central-station/internal/models"
	"github.com/nicuhealth/central-station/internal/services"
	"github.com/rs/zerolog/log"
)

// Authorize is the edge interceptor: it extracts and verifies the session
// token, evaluates the policy for the requested path, and either passes
// the request through (with the session attached to the context) or
// short-circuits it. Page routes get redirects; /api/ routes get JSON
// status responses since redirects are useless to fetch clients.
// Role denials land in the audit trail when an audit service is given.
func Authorize(policy *auth.Policy, tokens *auth.TokenService, audit *services.AuditService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				session       *auth.Session
				authenticated bool
				role          models.Role
			)
			if token := extractToken(r); token != "" {
				// Expired or malformed tokens are treated exactly like
				// "not logged in"; no distinct error reaches the policy.
				if s, err := tokens.Verify(token); err == nil {
					session = s
					authenticated = true
					role = s.Role
				}
			}
			if session != nil {
				r = r.WithContext(auth.ContextWithSession(r.Context(), session))
			}

			decision := policy.Decide(authenticated, role, r.URL.Path)
			switch decision.Kind {
			case auth.DecisionNext:
				next.ServeHTTP(w, r)

			case auth.DecisionRedirectLogin:
				metrics.AuthzDecisions.WithLabelValues("redirect_login").Inc()
				if isAPIPath(r.URL.Path) {
					respondError(w, http.StatusUnauthorized, "authentication required")
					return
				}
				http.Redirect(w, r, decision.Location, http.StatusFound)

			case auth.DecisionRedirectHome:
				metrics.AuthzDecisions.WithLabelValues("redirect_home").Inc()
				http.Redirect(w, r, decision.Location, http.StatusFound)

			case auth.DecisionRedirectUnauthorized:
				metrics.AuthzDecisions.WithLabelValues("redirect_unauthorized").Inc()
				log.Warn().
					Str("path", r.URL.Path).
					Str("role", string(role)).
					Msg("Access denied by route policy")
				if audit != nil {
					audit.RecordSession(r.Context(), r, session, services.Event{
						Action: models.AuditActionAccessDenied,
						Status: models.AuditStatusFailure,
						Detail: r.URL.Path,
					})
				}
				if isAPIPath(r.URL.Path) {
					respondError(w, http.StatusForbidden, "insufficient permissions")
					return
				}
				http.Redirect(w, r, decision.Location, http.StatusFound)
			}
		})
	}
}

// extractToken reads the session cookie, falling back to a Bearer header
// for scripted API clients. Both paths verify identically.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const bearer = "Bearer "
	if len(header) > len(bearer) && strings.EqualFold(header[:len(bearer)], bearer) {
		return strings.TrimSpace(header[len(bearer):])
	}
	return ""
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
