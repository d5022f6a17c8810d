package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"student-rewards-api/internal/adapter/http/dto"
	"student-rewards-api/internal/adapter/http/middleware"
	"student-rewards-api/internal/core/domain"
	"student-rewards-api/internal/core/ports"
	"student-rewards-api/internal/core/ports/mocks"
	"student-rewards-api/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(w *httptest.ResponseRecorder, method, path string, body interface{}) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func setPrincipal(c *gin.Context, address string, role domain.Role) {
	c.Set(middleware.CtxPrincipal, domain.Principal{Address: address, Role: role})
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

// --- Auth Handler Tests ---

func TestCreateSession_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(24 * time.Hour)
	mockAuth.EXPECT().CreateSession(gomock.Any(), "0xStudent1", "student").Return("jwt-token-123", expiry, nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodPost, "/api/v1/auth/session", dto.SessionRequest{
		WalletAddress: "0xStudent1",
		Role:          "student",
	})

	h.CreateSession(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "jwt-token-123", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expiry"])
}

func TestCreateSession_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	// Empty body => binding error
	w := httptest.NewRecorder()
	c := testContext(w, http.MethodPost, "/api/v1/auth/session", map[string]string{})

	h.CreateSession(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Reward Handler Tests ---

func TestGetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReward := mocks.NewMockRewardService(ctrl)
	h := NewRewardHandler(mockReward)

	mockReward.EXPECT().GetBalance(gomock.Any(), "0xStudent1").Return(int64(120), nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/api/v1/rewards/balance/0xStudent1", nil)
	c.Params = gin.Params{{Key: "address", Value: "0xStudent1"}}

	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "0xStudent1", data["address"])
	assert.Equal(t, float64(120), data["balance"])
}

func TestIssueReward_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReward := mocks.NewMockRewardService(ctrl)
	h := NewRewardHandler(mockReward)

	mockReward.EXPECT().IssueReward(gomock.Any(), ports.IssueRewardRequest{
		Recipient: "0xStudent1",
		Amount:    50,
		Reason:    "hackathon winner",
		Issuer:    domain.Principal{Address: "0xAdmin", Role: domain.RoleAdmin},
	}).Return(int64(150), nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodPost, "/api/v1/rewards/issue", dto.IssueRewardRequest{
		StudentAddress: "0xStudent1",
		Amount:         50,
		Reason:         "hackathon winner",
	})
	setPrincipal(c, "0xAdmin", domain.RoleAdmin)

	h.IssueReward(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, float64(150), data["balance"])
}

func TestIssueReward_MissingPrincipal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReward := mocks.NewMockRewardService(ctrl)
	h := NewRewardHandler(mockReward)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodPost, "/api/v1/rewards/issue", dto.IssueRewardRequest{
		StudentAddress: "0xStudent1",
		Amount:         50,
	})

	h.IssueReward(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueReward_NegativeAmountRejectedAtBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReward := mocks.NewMockRewardService(ctrl)
	h := NewRewardHandler(mockReward)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodPost, "/api/v1/rewards/issue", map[string]interface{}{
		"student_address": "0xStudent1",
		"amount":          -10,
	})
	setPrincipal(c, "0xAdmin", domain.RoleAdmin)

	h.IssueReward(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransfer_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReward := mocks.NewMockRewardService(ctrl)
	h := NewRewardHandler(mockReward)

	mockReward.EXPECT().Transfer(gomock.Any(), ports.TransferRequest{
		From:   domain.Principal{Address: "0xAlice", Role: domain.RoleStudent},
		To:     "0xBob",
		Amount: 30,
	}).Return(int64(70), nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodPost, "/api/v1/rewards/transfer", dto.TransferRequest{
		ToAddress: "0xBob",
		Amount:    30,
	})
	setPrincipal(c, "0xAlice", domain.RoleStudent)

	h.Transfer(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, "0xAlice", data["address"])
	assert.Equal(t, float64(70), data["balance"])
}

func TestTransfer_InsufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReward := mocks.NewMockRewardService(ctrl)
	h := NewRewardHandler(mockReward)

	mockReward.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(int64(0), apperror.ErrInsufficientBalance("0xAlice"))

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodPost, "/api/v1/rewards/transfer", dto.TransferRequest{
		ToAddress: "0xBob",
		Amount:    1000,
	})
	setPrincipal(c, "0xAlice", domain.RoleStudent)

	h.Transfer(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "TOK_001")
}

func TestLeaderboard_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReward := mocks.NewMockRewardService(ctrl)
	h := NewRewardHandler(mockReward)

	mockReward.EXPECT().Leaderboard(gomock.Any(), 2).Return([]domain.LeaderboardEntry{
		{Address: "0xB", Tokens: 50},
		{Address: "0xA", Tokens: 30},
	}, nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/api/v1/rewards/leaderboard?limit=2", nil)

	h.Leaderboard(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	rows := resp["data"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, "0xB", first["address"])
}

func TestLeaderboard_BadLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReward := mocks.NewMockRewardService(ctrl)
	h := NewRewardHandler(mockReward)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/api/v1/rewards/leaderboard?limit=abc", nil)

	h.Leaderboard(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Credential Handler Tests ---

func TestGetCredentials_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCred := mocks.NewMockCredentialService(ctrl)
	h := NewCredentialHandler(mockCred)

	mockCred.EXPECT().GetCredentials(gomock.Any(), "0xStudent1").Return([]domain.Credential{
		{
			ID:       1,
			Owner:    "0xStudent1",
			Metadata: map[string]interface{}{"type": "certificate"},
			IssuedAt: time.Now(),
		},
	}, nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/api/v1/credentials/0xStudent1", nil)
	c.Params = gin.Params{{Key: "address", Value: "0xStudent1"}}

	h.GetCredentials(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "certificate")
}

func TestIssueCredential_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCred := mocks.NewMockCredentialService(ctrl)
	h := NewCredentialHandler(mockCred)

	mockCred.EXPECT().IssueCredential(gomock.Any(), ports.IssueCredentialRequest{
		Recipient: "0xStudent1",
		Type:      "badge",
		Title:     "Go Workshop",
		Issuer:    domain.Principal{Address: "0xIssuer", Role: domain.RoleIssuer},
	}).Return(int64(7), nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodPost, "/api/v1/credentials/issue", dto.IssueCredentialRequest{
		StudentAddress: "0xStudent1",
		Type:           "badge",
		Title:          "Go Workshop",
	})
	setPrincipal(c, "0xIssuer", domain.RoleIssuer)

	h.IssueCredential(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w)
	assert.Equal(t, float64(7), data["credential_id"])
}

func TestVerifyCredential_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCred := mocks.NewMockCredentialService(ctrl)
	h := NewCredentialHandler(mockCred)

	mockCred.EXPECT().VerifyCredential(gomock.Any(), int64(3), "0xStudent1").Return(true, nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/api/v1/credentials/verify/3/0xStudent1", nil)
	c.Params = gin.Params{
		{Key: "id", Value: "3"},
		{Key: "address", Value: "0xStudent1"},
	}

	h.VerifyCredential(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, true, data["valid"])
}

func TestVerifyCredential_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCred := mocks.NewMockCredentialService(ctrl)
	h := NewCredentialHandler(mockCred)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/api/v1/credentials/verify/abc/0xStudent1", nil)
	c.Params = gin.Params{
		{Key: "id", Value: "abc"},
		{Key: "address", Value: "0xStudent1"},
	}

	h.VerifyCredential(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- User Handler Tests ---

func TestGetDashboard_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEvent := mocks.NewMockEventService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewUserHandler(mockEvent, mockReporting)

	mockReporting.EXPECT().GetDashboard(gomock.Any(), "0xStudent1").Return(&domain.StudentSummary{
		Address:     "0xStudent1",
		TotalTokens: 65,
		Credentials: 1,
		TotalEvents: 2,
	}, nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/api/v1/users/dashboard", nil)
	setPrincipal(c, "0xStudent1", domain.RoleStudent)

	h.GetDashboard(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, float64(65), data["total_tokens"])
}

func TestCreateEvent_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEvent := mocks.NewMockEventService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewUserHandler(mockEvent, mockReporting)

	organizer := domain.Principal{Address: "0xOrg", Role: domain.RoleOrganizer}
	mockEvent.EXPECT().CreateEvent(gomock.Any(), ports.CreateEventRequest{
		Name:             "Hackathon",
		Type:             "hackathon",
		RewardAmount:     50,
		IssueCertificate: true,
		Organizer:        organizer,
	}).Return(int64(1), nil)
	mockEvent.EXPECT().GetEvent(gomock.Any(), int64(1)).Return(domain.Event{
		ID:           1,
		Name:         "Hackathon",
		Type:         "hackathon",
		RewardAmount: 50,
		Organizer:    "0xOrg",
		Participants: []string{},
		Active:       true,
		CreatedAt:    time.Now(),
	}, nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodPost, "/api/v1/users/events", dto.CreateEventRequest{
		Name:             "Hackathon",
		Type:             "hackathon",
		RewardAmount:     50,
		IssueCertificate: true,
	})
	setPrincipal(c, "0xOrg", domain.RoleOrganizer)

	h.CreateEvent(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := dataField(t, w)
	assert.Equal(t, float64(1), data["id"])
	assert.Equal(t, "Hackathon", data["name"])
}

func TestGetEvent_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEvent := mocks.NewMockEventService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewUserHandler(mockEvent, mockReporting)

	mockEvent.EXPECT().GetEvent(gomock.Any(), int64(42)).Return(domain.Event{}, apperror.ErrNotFound("Event"))

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/api/v1/users/events/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	h.GetEvent(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordAttendance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEvent := mocks.NewMockEventService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewUserHandler(mockEvent, mockReporting)

	credID := int64(4)
	organizer := domain.Principal{Address: "0xOrg", Role: domain.RoleOrganizer}
	mockEvent.EXPECT().RecordAttendance(gomock.Any(), ports.AttendanceRequest{
		EventID:  1,
		Student:  "0xStudent1",
		Recorder: organizer,
	}).Return(domain.AttendanceResult{TokensEarned: 50, CredentialID: &credID}, nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodPost, "/api/v1/users/attendance", dto.AttendanceRequest{
		EventID:        1,
		StudentAddress: "0xStudent1",
	})
	setPrincipal(c, "0xOrg", domain.RoleOrganizer)

	h.RecordAttendance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, float64(50), data["tokens_earned"])
	assert.Equal(t, float64(4), data["credential_id"])
}

func TestRecordAttendance_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEvent := mocks.NewMockEventService(ctrl)
	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewUserHandler(mockEvent, mockReporting)

	mockEvent.EXPECT().RecordAttendance(gomock.Any(), gomock.Any()).
		Return(domain.AttendanceResult{}, apperror.ErrDuplicateAttendance(1, "0xStudent1"))

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodPost, "/api/v1/users/attendance", dto.AttendanceRequest{
		EventID:        1,
		StudentAddress: "0xStudent1",
	})
	setPrincipal(c, "0xOrg", domain.RoleOrganizer)

	h.RecordAttendance(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "EVT_002")
}

// --- Health / Swagger ---

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	healthy := mocks.NewMockHealthChecker(ctrl)
	healthy.EXPECT().Ping(gomock.Any()).Return(nil)
	healthy.EXPECT().Name().Return("ledger")

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/health", nil)

	HealthCheck(healthy)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	unhealthy := mocks.NewMockHealthChecker(ctrl)
	unhealthy.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	unhealthy.EXPECT().Name().Return("redis")

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/health", nil)

	HealthCheck(unhealthy)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}

func TestSwaggerSpec_NotLoaded(t *testing.T) {
	SetSwaggerSpec(nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/swagger/spec", nil)

	SwaggerSpec(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwaggerSpec_Loaded(t *testing.T) {
	SetSwaggerSpec([]byte("openapi: 3.0.0"))
	defer SetSwaggerSpec(nil)

	w := httptest.NewRecorder()
	c := testContext(w, http.MethodGet, "/swagger/spec", nil)

	SwaggerSpec(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi")
}
