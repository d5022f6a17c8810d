package handler

import (
	"strconv"
	"time"

	"student-rewards-api/internal/adapter/http/dto"
	"student-rewards-api/internal/adapter/http/middleware"
	"student-rewards-api/internal/core/domain"
	"student-rewards-api/internal/core/ports"
	"student-rewards-api/pkg/apperror"
	"student-rewards-api/pkg/response"

	"github.com/gin-gonic/gin"
)

// CredentialHandler handles credential endpoints.
type CredentialHandler struct {
	credentialSvc ports.CredentialService
}

// NewCredentialHandler creates a new CredentialHandler.
func NewCredentialHandler(credentialSvc ports.CredentialService) *CredentialHandler {
	return &CredentialHandler{credentialSvc: credentialSvc}
}

// GetCredentials handles GET /api/v1/credentials/:address.
func (h *CredentialHandler) GetCredentials(c *gin.Context) {
	address := c.Param("address")

	creds, err := h.credentialSvc.GetCredentials(c.Request.Context(), address)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.CredentialResponse, len(creds))
	for i, cred := range creds {
		out[i] = toCredentialResponse(cred)
	}

	response.OK(c, out)
}

// IssueCredential handles POST /api/v1/credentials/issue.
func (h *CredentialHandler) IssueCredential(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrWalletAddressRequired())
		return
	}

	var req dto.IssueCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	id, err := h.credentialSvc.IssueCredential(c.Request.Context(), ports.IssueCredentialRequest{
		Recipient:   req.StudentAddress,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Metadata:    req.Metadata,
		Issuer:      principal,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"credential_id": id, "owner": req.StudentAddress})
}

// VerifyCredential handles GET /api/v1/credentials/verify/:id/:address.
func (h *CredentialHandler) VerifyCredential(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("credential id must be an integer"))
		return
	}
	address := c.Param("address")

	valid, err := h.credentialSvc.VerifyCredential(c.Request.Context(), id, address)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.VerifyCredentialResponse{
		CredentialID: id,
		Address:      address,
		Valid:        valid,
	})
}

// toCredentialResponse converts domain.Credential to DTO.
func toCredentialResponse(cred domain.Credential) dto.CredentialResponse {
	return dto.CredentialResponse{
		ID:       cred.ID,
		Owner:    cred.Owner,
		Metadata: cred.Metadata,
		IssuedAt: cred.IssuedAt.Format(time.RFC3339),
	}
}
