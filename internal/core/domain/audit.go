package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionIssueReward      AuditAction = "ISSUE_REWARD"
	AuditActionTransfer         AuditAction = "TRANSFER"
	AuditActionIssueCredential  AuditAction = "ISSUE_CREDENTIAL"
	AuditActionCreateEvent      AuditAction = "CREATE_EVENT"
	AuditActionRecordAttendance AuditAction = "RECORD_ATTENDANCE"
	AuditActionSession          AuditAction = "SESSION"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Actor        string      `json:"actor,omitempty"` // wallet address
	Role         string      `json:"role,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
