package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nicuhealth/central-station/internal/cache"
	"github.com/nicuhealth/central-station/internal/repository"
	"github.com/rs/zerolog/log"
)

// PatientHandler serves the patient census endpoints.
type PatientHandler struct {
	patients *repository.PatientRepository
	cache    cache.Cache
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patients *repository.PatientRepository, c cache.Cache) *PatientHandler {
	return &PatientHandler{patients: patients, cache: c}
}

// List returns the current census. The response is cached briefly; a
// cache failure falls through to the database.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, cache.CensusKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "hit")
			_, _ = w.Write(cached)
			return
		}
	}

	patients, err := h.patients.ListAdmitted(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list patients")
		respondError(w, http.StatusInternalServerError, "failed to list patients")
		return
	}

	body, err := json.Marshal(patients)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode patients")
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(ctx, cache.CensusKey, body, cache.CensusTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to cache census")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// Get returns one patient by ID. Per-patient routes are open to every
// authenticated identity; there is no role restriction here.
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "patientID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid patient id")
		return
	}

	patient, err := h.patients.GetByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrPatientNotFound {
			respondError(w, http.StatusNotFound, "patient not found")
			return
		}
		log.Error().Err(err).Str("patient_id", id.String()).Msg("Failed to get patient")
		respondError(w, http.StatusInternalServerError, "failed to get patient")
		return
	}

	respondJSON(w, http.StatusOK, patient)
}
