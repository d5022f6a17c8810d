package ports

import (
	"context"
	"time"

	"student-rewards-api/internal/core/domain"
)

// TokenService handles JWT wallet-session token operations.
type TokenService interface {
	Generate(address string, role string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Address string
	Role    string
}

// --- Service Ports (Business Logic) ---

// RewardService defines the token reward business logic.
type RewardService interface {
	GetBalance(ctx context.Context, address string) (int64, error)
	IssueReward(ctx context.Context, req IssueRewardRequest) (int64, error) // new balance
	Transfer(ctx context.Context, req TransferRequest) (int64, error)      // sender's new balance
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// IssueRewardRequest holds validated input for minting tokens.
type IssueRewardRequest struct {
	Recipient string
	Amount    int64
	Reason    string
	Issuer    domain.Principal
}

// TransferRequest holds validated input for a peer transfer.
type TransferRequest struct {
	From   domain.Principal
	To     string
	Amount int64
}

// CredentialService defines credential issuance and lookup.
type CredentialService interface {
	GetCredentials(ctx context.Context, address string) ([]domain.Credential, error)
	IssueCredential(ctx context.Context, req IssueCredentialRequest) (int64, error)
	VerifyCredential(ctx context.Context, credentialID int64, address string) (bool, error)
}

// IssueCredentialRequest holds validated input for issuing a credential.
type IssueCredentialRequest struct {
	Recipient   string
	Type        string
	Title       string
	Description string
	Metadata    map[string]interface{}
	Issuer      domain.Principal
}

// EventService defines event creation and attendance.
type EventService interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (int64, error)
	GetEvent(ctx context.Context, eventID int64) (domain.Event, error)
	ListEvents(ctx context.Context, activeOnly bool) ([]domain.Event, error)
	RecordAttendance(ctx context.Context, req AttendanceRequest) (domain.AttendanceResult, error)
}

// CreateEventRequest holds validated input for event creation.
type CreateEventRequest struct {
	Name             string
	Type             string
	Description      string
	RewardAmount     int64
	IssueCertificate bool
	Organizer        domain.Principal
}

// AttendanceRequest holds validated input for recording attendance.
type AttendanceRequest struct {
	EventID  int64
	Student  string
	Recorder domain.Principal
}

// ReportingService defines dashboard/reporting business logic.
type ReportingService interface {
	GetDashboard(ctx context.Context, address string) (*domain.StudentSummary, error)
}

// AuditService records security-relevant actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// AuthService issues wallet-session tokens.
type AuthService interface {
	CreateSession(ctx context.Context, address, role string) (string, time.Time, error) // token, expiry, error
}
