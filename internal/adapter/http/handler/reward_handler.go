package handler

import (
	"strconv"

	"student-rewards-api/internal/adapter/http/dto"
	"student-rewards-api/internal/adapter/http/middleware"
	"student-rewards-api/internal/core/ports"
	"student-rewards-api/pkg/apperror"
	"student-rewards-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// RewardHandler handles token reward endpoints.
type RewardHandler struct {
	rewardSvc ports.RewardService
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(rewardSvc ports.RewardService) *RewardHandler {
	return &RewardHandler{rewardSvc: rewardSvc}
}

// GetBalance handles GET /api/v1/rewards/balance/:address.
func (h *RewardHandler) GetBalance(c *gin.Context) {
	address := c.Param("address")

	balance, err := h.rewardSvc.GetBalance(c.Request.Context(), address)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{Address: address, Balance: balance})
}

// IssueReward handles POST /api/v1/rewards/issue.
func (h *RewardHandler) IssueReward(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrWalletAddressRequired())
		return
	}

	var req dto.IssueRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	balance, err := h.rewardSvc.IssueReward(c.Request.Context(), ports.IssueRewardRequest{
		Recipient: req.StudentAddress,
		Amount:    req.Amount,
		Reason:    req.Reason,
		Issuer:    principal,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{Address: req.StudentAddress, Balance: balance})
}

// Transfer handles POST /api/v1/rewards/transfer.
func (h *RewardHandler) Transfer(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrWalletAddressRequired())
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	balance, err := h.rewardSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		From:   principal,
		To:     req.ToAddress,
		Amount: req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{Address: principal.Address, Balance: balance})
}

// Leaderboard handles GET /api/v1/rewards/leaderboard.
func (h *RewardHandler) Leaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, apperror.Validation("limit must be an integer"))
			return
		}
		limit = n
	}

	entries, err := h.rewardSvc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	board := make([]dto.LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		board[i] = dto.LeaderboardEntryResponse{
			Rank:    i + 1,
			Address: e.Address,
			Tokens:  e.Tokens,
		}
	}

	response.OK(c, board)
}
