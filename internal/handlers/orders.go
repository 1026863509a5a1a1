package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/nicuhealth/central-station/internal/auth"
	"github.com/nicuhealth/central-station/internal/cache"
	"github.com/nicuhealth/central-station/internal/models"
	"github.com/nicuhealth/central-station/internal/repository"
	"github.com/nicuhealth/central-station/internal/services"
	"github.com/rs/zerolog/log"
)

// OrderHandler serves clinical order entry.
type OrderHandler struct {
	orders   *repository.OrderRepository
	patients *repository.PatientRepository
	audit    *services.AuditService
	cache    cache.Cache
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	orders *repository.OrderRepository,
	patients *repository.PatientRepository,
	audit *services.AuditService,
	c cache.Cache,
) *OrderHandler {
	return &OrderHandler{orders: orders, patients: patients, audit: audit, cache: c}
}

// Create places a clinical order. The role check here is deliberate
// even though the edge layer already filtered the route.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := auth.RequireRole(ctx, models.ClinicalRoles...)
	if err != nil {
		if err == auth.ErrForbidden {
			respondError(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Validate() {
		respondError(w, http.StatusBadRequest, "patient_id, kind and detail are required")
		return
	}

	if _, err := h.patients.GetByID(ctx, req.PatientID); err != nil {
		if err == repository.ErrPatientNotFound {
			respondError(w, http.StatusNotFound, "patient not found")
			return
		}
		log.Error().Err(err).Msg("Failed to resolve patient for order")
		respondError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	orderedByID, _ := uuid.Parse(session.IdentityID)
	order := &models.Order{
		PatientID:   req.PatientID,
		OrderedByID: orderedByID,
		OrderedBy:   session.DisplayName,
		Kind:        req.Kind,
		Detail:      req.Detail,
		Status:      "active",
	}
	if err := h.orders.Create(ctx, order); err != nil {
		log.Error().Err(err).Msg("Failed to create order")
		respondError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	h.audit.RecordSession(ctx, r, session, services.Event{
		Action:       models.AuditActionOrderCreated,
		Status:       models.AuditStatusSuccess,
		ResourceType: "order",
		ResourceID:   order.ID.String(),
	})
	if h.cache != nil {
		if err := h.cache.Delete(ctx, cache.OrdersKey(req.PatientID.String())); err != nil {
			log.Warn().Err(err).Msg("Failed to invalidate order cache")
		}
	}

	respondJSON(w, http.StatusCreated, order)
}

// List returns active orders, optionally filtered by patient.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, err := auth.RequireSession(ctx); err != nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if raw := r.URL.Query().Get("patient_id"); raw != "" {
		patientID, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid patient_id")
			return
		}
		orders, err := h.orders.ListByPatient(ctx, patientID)
		if err != nil {
			log.Error().Err(err).Msg("Failed to list orders")
			respondError(w, http.StatusInternalServerError, "failed to list orders")
			return
		}
		respondJSON(w, http.StatusOK, orders)
		return
	}

	orders, err := h.orders.ListActive(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders")
		respondError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}
