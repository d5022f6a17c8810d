package service

import (
	"context"

	"student-rewards-api/internal/core/domain"
	"student-rewards-api/internal/core/ports"
	"student-rewards-api/internal/ledger"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	ledger *ledger.Ledger
}

// NewReportingService creates a new reporting service.
func NewReportingService(l *ledger.Ledger) ports.ReportingService {
	return &reportingService{ledger: l}
}

// GetDashboard assembles the per-student summary: balance,
// credentials, and event participation history.
func (s *reportingService) GetDashboard(ctx context.Context, address string) (*domain.StudentSummary, error) {
	summary := s.ledger.StudentSummary(address)
	return &summary, nil
}
