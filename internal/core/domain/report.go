package domain

import "time"

// EventAttendance is one entry of a student's event history, derived
// from the event table at read time.
type EventAttendance struct {
	EventID      int64     `json:"event_id"`
	EventName    string    `json:"event_name"`
	EventType    string    `json:"event_type"`
	TokensEarned int64     `json:"tokens_earned"`
	Timestamp    time.Time `json:"timestamp"`
}

// StudentSummary is the dashboard view for one address. Everything is
// recomputed from ledger state on each read; nothing is cached.
type StudentSummary struct {
	Address         string            `json:"address"`
	TotalTokens     int64             `json:"total_tokens"`
	Credentials     int               `json:"credentials"`
	CredentialsList []Credential      `json:"credentials_list"`
	EventHistory    []EventAttendance `json:"event_history"`
	TotalEvents     int               `json:"total_events"`
}

// LeaderboardEntry pairs an address with its current token count.
type LeaderboardEntry struct {
	Address string `json:"address"`
	Tokens  int64  `json:"tokens"`
}
