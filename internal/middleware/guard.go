package middleware

import (
	"errors"
	"net/http"

	"github.com/nicuhealth/central-station/internal/auth"
	"github.com/nicuhealth/central-station/internal/metrics"
	"github.com/nicuhealth/central-station/internal/models"
)

// RequireSession rejects requests without a verified session. It runs
// after Authorize and re-checks independently; the edge decision is not
// trusted as the only line.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.RequireSession(r.Context()); err != nil {
			metrics.GuardDenials.WithLabelValues("unauthenticated").Inc()
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose session role is not in the allowed
// set. Missing session yields 401, present-but-disallowed role yields
// 403, so clients can distinguish "log in" from "you lack permission".
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := auth.RequireRole(r.Context(), allowed...); err != nil {
				if errors.Is(err, auth.ErrForbidden) {
					metrics.GuardDenials.WithLabelValues("forbidden").Inc()
					respondError(w, http.StatusForbidden, "insufficient permissions")
					return
				}
				metrics.GuardDenials.WithLabelValues("unauthenticated").Inc()
				respondError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
