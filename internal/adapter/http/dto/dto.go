package dto

// SessionRequest is the request body for creating a wallet session.
type SessionRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required,wallet_address"`
	Role          string `json:"role,omitempty" binding:"omitempty,oneof=admin organizer issuer student"`
}

// SessionResponse is the response body for a created session.
type SessionResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// IssueRewardRequest is the request body for minting tokens.
type IssueRewardRequest struct {
	StudentAddress string `json:"student_address" binding:"required,wallet_address"`
	Amount         int64  `json:"amount" binding:"required,gt=0"`
	Reason         string `json:"reason,omitempty" binding:"max=200"`
}

// TransferRequest is the request body for a peer transfer.
type TransferRequest struct {
	ToAddress string `json:"to_address" binding:"required,wallet_address"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

// LeaderboardEntryResponse is a single leaderboard row.
type LeaderboardEntryResponse struct {
	Rank    int    `json:"rank"`
	Address string `json:"address"`
	Tokens  int64  `json:"tokens"`
}

// IssueCredentialRequest is the request body for issuing a credential.
type IssueCredentialRequest struct {
	StudentAddress string                 `json:"student_address" binding:"required,wallet_address"`
	Type           string                 `json:"type" binding:"required,max=50"`
	Title          string                 `json:"title,omitempty" binding:"max=200"`
	Description    string                 `json:"description,omitempty" binding:"max=1000"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// CredentialResponse is the response body for a single credential.
type CredentialResponse struct {
	ID       int64                  `json:"id"`
	Owner    string                 `json:"owner"`
	Metadata map[string]interface{} `json:"metadata"`
	IssuedAt string                 `json:"issued_at"`
}

// VerifyCredentialResponse is the response for credential verification.
type VerifyCredentialResponse struct {
	CredentialID int64  `json:"credential_id"`
	Address      string `json:"address"`
	Valid        bool   `json:"valid"`
}

// CreateEventRequest is the request body for event creation.
type CreateEventRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=200"`
	Type             string `json:"type,omitempty" binding:"max=50"`
	Description      string `json:"description,omitempty" binding:"max=1000"`
	RewardAmount     int64  `json:"reward_amount" binding:"gte=0"`
	IssueCertificate bool   `json:"issue_certificate"`
}

// EventResponse is the response body for a single event.
type EventResponse struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Description      string   `json:"description"`
	RewardAmount     int64    `json:"reward_amount"`
	IssueCertificate bool     `json:"issue_certificate"`
	Organizer        string   `json:"organizer"`
	Participants     []string `json:"participants"`
	ParticipantCount int      `json:"participant_count"`
	Active           bool     `json:"active"`
	CreatedAt        string   `json:"created_at"`
}

// AttendanceRequest is the request body for recording attendance.
type AttendanceRequest struct {
	EventID        int64  `json:"event_id" binding:"required,gt=0"`
	StudentAddress string `json:"student_address" binding:"required,wallet_address"`
}

// AttendanceResponse is the response body for a recorded attendance.
type AttendanceResponse struct {
	EventID        int64  `json:"event_id"`
	StudentAddress string `json:"student_address"`
	TokensEarned   int64  `json:"tokens_earned"`
	CredentialID   *int64 `json:"credential_id,omitempty"`
}
