package handlers

import (
	"net/http"
	"strconv"

	"github.com/nicuhealth/central-station/internal/auth"
	"github.com/nicuhealth/central-station/internal/models"
	"github.com/nicuhealth/central-station/internal/services"
	"github.com/rs/zerolog/log"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	audit *services.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List returns recent audit entries. Admin only; checked here again on
// top of the route policy.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, err := auth.RequireRole(ctx, models.RoleAdmin); err != nil {
		if err == auth.ErrForbidden {
			respondError(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	entries, err := h.audit.List(ctx, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list audit logs")
		respondError(w, http.StatusInternalServerError, "failed to list audit logs")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}
