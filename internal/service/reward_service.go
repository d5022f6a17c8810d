package service

import (
	"context"

	"student-rewards-api/internal/core/domain"
	"student-rewards-api/internal/core/ports"
	"student-rewards-api/internal/ledger"
	"student-rewards-api/pkg/apperror"

	"github.com/rs/zerolog"
)

// rewardService implements ports.RewardService on top of the ledger.
type rewardService struct {
	ledger *ledger.Ledger
	log    zerolog.Logger
}

// NewRewardService creates a new reward service.
func NewRewardService(l *ledger.Ledger, log zerolog.Logger) ports.RewardService {
	return &rewardService{ledger: l, log: log}
}

// GetBalance returns the current token balance for the address.
func (s *rewardService) GetBalance(ctx context.Context, address string) (int64, error) {
	return s.ledger.Balance(address), nil
}

// IssueReward mints tokens to the recipient and returns their new balance.
func (s *rewardService) IssueReward(ctx context.Context, req ports.IssueRewardRequest) (int64, error) {
	if req.Amount <= 0 {
		return 0, apperror.ErrInvalidAmount()
	}

	if err := s.ledger.Mint(req.Recipient, req.Amount); err != nil {
		return 0, err
	}

	s.log.Info().
		Str("recipient", req.Recipient).
		Int64("amount", req.Amount).
		Str("reason", req.Reason).
		Str("issuer", req.Issuer.Address).
		Msg("reward issued")

	return s.ledger.Balance(req.Recipient), nil
}

// Transfer moves tokens from the caller to another address and returns
// the caller's new balance.
func (s *rewardService) Transfer(ctx context.Context, req ports.TransferRequest) (int64, error) {
	if req.Amount <= 0 {
		return 0, apperror.ErrInvalidAmount()
	}

	if err := s.ledger.Transfer(req.From.Address, req.To, req.Amount); err != nil {
		return 0, err
	}

	s.log.Info().
		Str("from", req.From.Address).
		Str("to", req.To).
		Int64("amount", req.Amount).
		Msg("tokens transferred")

	return s.ledger.Balance(req.From.Address), nil
}

// Leaderboard returns the top token holders.
func (s *rewardService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return s.ledger.Leaderboard(limit), nil
}
