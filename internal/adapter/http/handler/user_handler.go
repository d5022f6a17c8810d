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

// UserHandler handles the student-facing endpoints: dashboard, events,
// and attendance.
type UserHandler struct {
	eventSvc     ports.EventService
	reportingSvc ports.ReportingService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(eventSvc ports.EventService, reportingSvc ports.ReportingService) *UserHandler {
	return &UserHandler{eventSvc: eventSvc, reportingSvc: reportingSvc}
}

// GetDashboard handles GET /api/v1/users/dashboard — the caller's own
// summary.
func (h *UserHandler) GetDashboard(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrWalletAddressRequired())
		return
	}

	h.renderDashboard(c, principal.Address)
}

// GetDashboardFor handles GET /api/v1/users/dashboard/:address.
func (h *UserHandler) GetDashboardFor(c *gin.Context) {
	h.renderDashboard(c, c.Param("address"))
}

func (h *UserHandler) renderDashboard(c *gin.Context, address string) {
	summary, err := h.reportingSvc.GetDashboard(c.Request.Context(), address)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// CreateEvent handles POST /api/v1/users/events.
func (h *UserHandler) CreateEvent(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrWalletAddressRequired())
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	id, err := h.eventSvc.CreateEvent(c.Request.Context(), ports.CreateEventRequest{
		Name:             req.Name,
		Type:             req.Type,
		Description:      req.Description,
		RewardAmount:     req.RewardAmount,
		IssueCertificate: req.IssueCertificate,
		Organizer:        principal,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	evt, err := h.eventSvc.GetEvent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toEventResponse(evt))
}

// ListEvents handles GET /api/v1/users/events.
func (h *UserHandler) ListEvents(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	events, err := h.eventSvc.ListEvents(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.EventResponse, len(events))
	for i, evt := range events {
		out[i] = toEventResponse(evt)
	}

	response.OK(c, out)
}

// GetEvent handles GET /api/v1/users/events/:id.
func (h *UserHandler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("event id must be an integer"))
		return
	}

	evt, err := h.eventSvc.GetEvent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toEventResponse(evt))
}

// RecordAttendance handles POST /api/v1/users/attendance.
func (h *UserHandler) RecordAttendance(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, apperror.ErrWalletAddressRequired())
		return
	}

	var req dto.AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.eventSvc.RecordAttendance(c.Request.Context(), ports.AttendanceRequest{
		EventID:  req.EventID,
		Student:  req.StudentAddress,
		Recorder: principal,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AttendanceResponse{
		EventID:        req.EventID,
		StudentAddress: req.StudentAddress,
		TokensEarned:   result.TokensEarned,
		CredentialID:   result.CredentialID,
	})
}

// toEventResponse converts domain.Event to DTO.
func toEventResponse(evt domain.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:               evt.ID,
		Name:             evt.Name,
		Type:             evt.Type,
		Description:      evt.Description,
		RewardAmount:     evt.RewardAmount,
		IssueCertificate: evt.IssueCertificate,
		Organizer:        evt.Organizer,
		Participants:     evt.Participants,
		ParticipantCount: len(evt.Participants),
		Active:           evt.Active,
		CreatedAt:        evt.CreatedAt.Format(time.RFC3339),
	}
}
