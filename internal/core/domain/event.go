package domain

import "time"

// Event is an organizer-defined activity carrying a reward amount and
// optional certificate issuance, accumulating participants over time.
// IDs are dense, start at 1, and are never reused.
type Event struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Description      string    `json:"description"`
	RewardAmount     int64     `json:"reward_amount"`
	IssueCertificate bool      `json:"issue_certificate"`
	Organizer        string    `json:"organizer"`
	Participants     []string  `json:"participants"` // insertion order, no duplicates
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}

// HasParticipant reports whether address already attended. Addresses
// are compared case-sensitively.
func (e *Event) HasParticipant(address string) bool {
	for _, p := range e.Participants {
		if p == address {
			return true
		}
	}
	return false
}

// EventSpec holds validated input for event creation.
type EventSpec struct {
	Name             string
	Type             string
	Description      string
	RewardAmount     int64
	IssueCertificate bool
	Organizer        string
}

// AttendanceResult is the outcome of a successful attendance recording.
// CredentialID is nil when the event does not issue certificates.
type AttendanceResult struct {
	TokensEarned int64  `json:"tokens_earned"`
	CredentialID *int64 `json:"credential_id"`
}
