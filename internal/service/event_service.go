package service

import (
	"context"

	"student-rewards-api/internal/core/domain"
	"student-rewards-api/internal/core/ports"
	"student-rewards-api/internal/ledger"
	"student-rewards-api/pkg/apperror"

	"github.com/rs/zerolog"
)

// eventService implements ports.EventService.
type eventService struct {
	ledger *ledger.Ledger
	log    zerolog.Logger
}

// NewEventService creates a new event service.
func NewEventService(l *ledger.Ledger, log zerolog.Logger) ports.EventService {
	return &eventService{ledger: l, log: log}
}

// CreateEvent registers a new event and returns its id.
func (s *eventService) CreateEvent(ctx context.Context, req ports.CreateEventRequest) (int64, error) {
	if req.Name == "" {
		return 0, apperror.Validation("event name is required")
	}
	if req.RewardAmount < 0 {
		return 0, apperror.ErrInvalidAmount()
	}

	id, err := s.ledger.CreateEvent(domain.EventSpec{
		Name:             req.Name,
		Type:             req.Type,
		Description:      req.Description,
		RewardAmount:     req.RewardAmount,
		IssueCertificate: req.IssueCertificate,
		Organizer:        req.Organizer.Address,
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Int64("event_id", id).
		Str("name", req.Name).
		Str("organizer", req.Organizer.Address).
		Msg("event created")

	return id, nil
}

// GetEvent returns a single event by id.
func (s *eventService) GetEvent(ctx context.Context, eventID int64) (domain.Event, error) {
	return s.ledger.Event(eventID)
}

// ListEvents returns events in creation order.
func (s *eventService) ListEvents(ctx context.Context, activeOnly bool) ([]domain.Event, error) {
	return s.ledger.Events(activeOnly), nil
}

// RecordAttendance marks the student as attended, minting the event's
// reward and, when configured, a certificate credential.
func (s *eventService) RecordAttendance(ctx context.Context, req ports.AttendanceRequest) (domain.AttendanceResult, error) {
	result, err := s.ledger.RecordAttendance(req.EventID, req.Student)
	if err != nil {
		return domain.AttendanceResult{}, err
	}

	logEvt := s.log.Info().
		Int64("event_id", req.EventID).
		Str("student", req.Student).
		Str("recorder", req.Recorder.Address).
		Int64("tokens_earned", result.TokensEarned)
	if result.CredentialID != nil {
		logEvt = logEvt.Int64("credential_id", *result.CredentialID)
	}
	logEvt.Msg("attendance recorded")

	return result, nil
}
