package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/nicuhealth/central-station/internal/auth"
	"github.com/nicuhealth/central-station/internal/models"
	"github.com/nicuhealth/central-station/internal/repository"
	"github.com/rs/zerolog/log"
)

// AuditStore is the persistence surface the audit service needs.
// *repository.AuditRepository satisfies it.
type AuditStore interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, error)
}

var _ AuditStore = (*repository.AuditRepository)(nil)

// AuditService records security-relevant events. Writing the trail never
// fails the request that produced it; persistence errors are logged and
// dropped.
type AuditService struct {
	repo AuditStore
}

// NewAuditService creates a new audit service
func NewAuditService(repo AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

// Event captures one auditable action.
type Event struct {
	Action       string
	Status       string
	ResourceType string
	ResourceID   string
	Detail       string

	// Actor fields; left zero for failed/anonymous attempts.
	ActorID    uuid.UUID
	ActorEmail string
	ActorRole  models.Role
}

// Record persists an audit event, enriched with request metadata.
func (s *AuditService) Record(ctx context.Context, r *http.Request, ev Event) {
	entry := &models.AuditLog{
		ActorID:      ev.ActorID,
		ActorEmail:   ev.ActorEmail,
		ActorRole:    ev.ActorRole,
		Action:       ev.Action,
		ResourceType: ev.ResourceType,
		ResourceID:   ev.ResourceID,
		Status:       ev.Status,
		Detail:       ev.Detail,
	}
	if r != nil {
		entry.IPAddress = r.RemoteAddr
		entry.UserAgent = r.UserAgent()
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).Str("action", ev.Action).Msg("Failed to write audit log")
	}
}

// RecordSession persists an audit event attributed to the given session.
func (s *AuditService) RecordSession(ctx context.Context, r *http.Request, session *auth.Session, ev Event) {
	if session != nil {
		if id, err := uuid.Parse(session.IdentityID); err == nil {
			ev.ActorID = id
		}
		ev.ActorRole = session.Role
	}
	s.Record(ctx, r, ev)
}

// List returns recent audit entries, newest first.
func (s *AuditService) List(ctx context.Context, limit, offset int) ([]models.AuditLog, error) {
	return s.repo.List(ctx, limit, offset)
}
