package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nicuhealth/central-station/internal/auth"
	"github.com/nicuhealth/central-station/internal/metrics"
	"github.com/nicuhealth/central-station/internal/models"
	"github.com/nicuhealth/central-station/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler serves the session endpoints under /api/auth.
type AuthHandler struct {
	authService *auth.Service
	audit       *services.AuditService
	cookies     auth.CookieOptions
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, audit *services.AuditService, cookies auth.CookieOptions) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		audit:       audit,
		cookies:     cookies,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	IdentityID  string      `json:"identity_id"`
	DisplayName string      `json:"display_name"`
	Role        models.Role `json:"role"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// Login verifies credentials and issues the session cookie. Unknown
// identifiers and wrong passwords produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, token, expiresAt, err := h.authService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		h.audit.Record(ctx, r, services.Event{
			Action:     models.AuditActionLoginFailed,
			Status:     models.AuditStatusFailure,
			ActorEmail: req.Email,
		})
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	actorID, _ := uuid.Parse(identity.ID)
	h.audit.Record(ctx, r, services.Event{
		Action:     models.AuditActionLogin,
		Status:     models.AuditStatusSuccess,
		ActorID:    actorID,
		ActorEmail: identity.Email,
		ActorRole:  identity.Role,
	})

	auth.SetSessionCookie(w, token, expiresAt, h.cookies)
	respondJSON(w, http.StatusOK, sessionResponse{
		IdentityID:  identity.ID,
		DisplayName: identity.DisplayName,
		Role:        identity.Role,
		ExpiresAt:   expiresAt,
	})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; there is no revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if session, ok := auth.SessionFromContext(ctx); ok {
		h.audit.RecordSession(ctx, r, session, services.Event{
			Action: models.AuditActionLogout,
			Status: models.AuditStatusSuccess,
		})
	} else {
		log.Debug().Msg("Logout without active session")
	}

	auth.ClearSessionCookie(w, h.cookies)
	respondJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Session returns the verified claims of the current session, or 401.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{
		IdentityID:  session.IdentityID,
		DisplayName: session.DisplayName,
		Role:        session.Role,
		ExpiresAt:   session.ExpiresAt,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
