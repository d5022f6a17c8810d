package service

import (
	"context"

	"student-rewards-api/internal/core/domain"
	"student-rewards-api/internal/core/ports"
	"student-rewards-api/internal/ledger"
	"student-rewards-api/pkg/apperror"

	"github.com/rs/zerolog"
)

// credentialService implements ports.CredentialService.
type credentialService struct {
	ledger *ledger.Ledger
	log    zerolog.Logger
}

// NewCredentialService creates a new credential service.
func NewCredentialService(l *ledger.Ledger, log zerolog.Logger) ports.CredentialService {
	return &credentialService{ledger: l, log: log}
}

// GetCredentials returns all credentials owned by the address.
func (s *credentialService) GetCredentials(ctx context.Context, address string) ([]domain.Credential, error) {
	return s.ledger.CredentialsOf(address), nil
}

// IssueCredential mints a credential with the request fields folded
// into its metadata, returning the new credential id.
func (s *credentialService) IssueCredential(ctx context.Context, req ports.IssueCredentialRequest) (int64, error) {
	if req.Type == "" {
		return 0, apperror.Validation("credential type is required")
	}

	metadata := make(map[string]interface{}, len(req.Metadata)+4)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata[domain.MetadataKeyType] = req.Type
	if req.Title != "" {
		metadata["title"] = req.Title
	}
	if req.Description != "" {
		metadata["description"] = req.Description
	}
	metadata["issuer"] = req.Issuer.Address

	id, err := s.ledger.IssueCredential(req.Recipient, metadata)
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Int64("credential_id", id).
		Str("recipient", req.Recipient).
		Str("type", req.Type).
		Str("issuer", req.Issuer.Address).
		Msg("credential issued")

	return id, nil
}

// VerifyCredential reports whether the credential exists and belongs
// to the address.
func (s *credentialService) VerifyCredential(ctx context.Context, credentialID int64, address string) (bool, error) {
	return s.ledger.VerifyCredential(credentialID, address), nil
}
