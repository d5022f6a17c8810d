package domain

// Role is the caller role resolved by the authentication boundary.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleIssuer    Role = "issuer"
	RoleStudent   Role = "student"
)

// Principal is an already-validated caller identity. The ledger core
// trusts it; all credential checking happens at the HTTP boundary.
type Principal struct {
	Address string `json:"address"`
	Role    Role   `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsOrganizer reports whether the principal may manage events.
// Admins are organizers.
func (p Principal) IsOrganizer() bool {
	return p.Role == RoleOrganizer || p.Role == RoleAdmin
}

// IsIssuer reports whether the principal may issue credentials.
// Admins are issuers.
func (p Principal) IsIssuer() bool {
	return p.Role == RoleIssuer || p.Role == RoleAdmin
}
