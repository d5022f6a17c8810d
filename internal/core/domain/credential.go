package domain

import "time"

// Credential metadata key for the credential kind. recordAttendance
// issues credentials with this key set to "certificate".
const (
	MetadataKeyType           = "type"
	CredentialTypeCertificate = "certificate"
)

// Credential is an immutable achievement record bound to one owner
// address. IDs are dense, start at 1, and are never reused.
type Credential struct {
	ID       int64                  `json:"id"`
	Owner    string                 `json:"owner"`
	Metadata map[string]interface{} `json:"metadata"`
	IssuedAt time.Time              `json:"issued_at"`
}
