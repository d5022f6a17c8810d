package service

import (
	"context"
	"time"

	"student-rewards-api/internal/core/domain"
	"student-rewards-api/internal/core/ports"
	"student-rewards-api/pkg/apperror"

	"github.com/rs/zerolog"
)

// authService implements ports.AuthService.
type authService struct {
	tokenSvc ports.TokenService
	log      zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(tokenSvc ports.TokenService, log zerolog.Logger) ports.AuthService {
	return &authService{tokenSvc: tokenSvc, log: log}
}

// CreateSession issues a signed session token bound to the wallet
// address and role. Unknown roles fall back to student.
func (s *authService) CreateSession(ctx context.Context, address, role string) (string, time.Time, error) {
	if address == "" {
		return "", time.Time{}, apperror.ErrWalletAddressRequired()
	}

	switch domain.Role(role) {
	case domain.RoleAdmin, domain.RoleOrganizer, domain.RoleIssuer, domain.RoleStudent:
	case "":
		role = string(domain.RoleStudent)
	default:
		return "", time.Time{}, apperror.Validation("unknown role: " + role)
	}

	token, expiresAt, err := s.tokenSvc.Generate(address, role)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}

	s.log.Info().Str("address", address).Str("role", role).Msg("session created")

	return token, expiresAt, nil
}
