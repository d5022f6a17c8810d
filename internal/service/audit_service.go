package service

import (
	"context"

	"student-rewards-api/internal/core/domain"
	"student-rewards-api/internal/core/ports"

	"github.com/rs/zerolog"
)

// auditService implements ports.AuditService, writing entries to the
// structured log.
type auditService struct {
	log zerolog.Logger
}

// NewAuditService creates a new audit service.
func NewAuditService(log zerolog.Logger) ports.AuditService {
	return &auditService{log: log}
}

// Log records an audit entry.
func (s *auditService) Log(ctx context.Context, entry *domain.AuditLog) {
	s.log.Info().
		Str("audit_id", entry.ID.String()).
		Str("actor", entry.Actor).
		Str("role", entry.Role).
		Str("action", string(entry.Action)).
		Str("resource_type", entry.ResourceType).
		Str("resource_id", entry.ResourceID).
		Str("ip", entry.IPAddress).
		RawJSON("details", detailsOrEmpty(entry.Details)).
		Msg("audit")
}

func detailsOrEmpty(details string) []byte {
	if details == "" {
		return []byte("{}")
	}
	return []byte(details)
}
