// Package ledger implements the in-memory authoritative store of token
// balances, credentials, and events. It simulates the smart-contract
// layer of the student rewards system: state lives for the process
// lifetime only and every mutation is serialized under a single lock.
package ledger

import (
	"sort"
	"sync"
	"time"

	"student-rewards-api/internal/core/domain"
	"student-rewards-api/pkg/apperror"
)

// DefaultLeaderboardLimit is applied when a caller passes limit <= 0.
const DefaultLeaderboardLimit = 10

// Ledger owns the three state tables. All exported methods are safe for
// concurrent use: writes take the exclusive lock, reads observe a
// consistent snapshot under the shared lock. No other component holds a
// reference to the internals; lookups return copies.
type Ledger struct {
	mu sync.RWMutex

	initialized bool
	owner       string

	balances    map[string]int64
	totalSupply int64

	credentials   map[int64]*domain.Credential
	credentialSeq int64

	events   map[int64]*domain.Event
	eventSeq int64
}

// New creates an uninitialized ledger. Initialize must be called before
// any mutating operation.
func New() *Ledger {
	return &Ledger{}
}

// Initialize resets all three tables to empty and records the owner
// address. This is the only reset path.
func (l *Ledger) Initialize(owner string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.initialized = true
	l.owner = owner
	l.balances = make(map[string]int64)
	l.totalSupply = 0
	l.credentials = make(map[int64]*domain.Credential)
	l.credentialSeq = 0
	l.events = make(map[int64]*domain.Event)
	l.eventSeq = 0
}

// Initialized reports whether Initialize has been called.
func (l *Ledger) Initialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.initialized
}

// Owner returns the address recorded at initialization.
func (l *Ledger) Owner() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.owner
}

// ---- Token operations ----

// Balance returns the current balance of address, 0 if the address has
// never appeared. Never fails.
func (l *Ledger) Balance(address string) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[address]
}

// TotalSupply returns the sum of all minted amounts. Transfers do not
// change it.
func (l *Ledger) TotalSupply() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalSupply
}

// Mint credits amount to recipient and grows the total supply. Amount
// sign is not validated here; the transport boundary rejects negative
// requests before they reach the ledger.
func (l *Ledger) Mint(recipient string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return apperror.ErrNotInitialized()
	}
	l.mintLocked(recipient, amount)
	return nil
}

// mintLocked requires l.mu held exclusively.
func (l *Ledger) mintLocked(recipient string, amount int64) {
	l.balances[recipient] += amount
	l.totalSupply += amount
}

// Transfer moves amount from one balance to another. It fails atomically
// with InsufficientBalance when the sender's balance is short; total
// supply is unaffected. Self-transfer is a well-defined no-op.
func (l *Ledger) Transfer(from, to string, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return apperror.ErrNotInitialized()
	}
	if l.balances[from] < amount {
		return apperror.ErrInsufficientBalance(from)
	}

	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}

// ---- Credential operations ----

// IssueCredential stores a new credential for recipient and returns its
// id. IDs are allocated by simple increment: dense, gapless, never
// reused.
func (l *Ledger) IssueCredential(recipient string, metadata map[string]interface{}) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return 0, apperror.ErrNotInitialized()
	}
	return l.issueCredentialLocked(recipient, metadata), nil
}

// issueCredentialLocked requires l.mu held exclusively.
func (l *Ledger) issueCredentialLocked(recipient string, metadata map[string]interface{}) int64 {
	l.credentialSeq++
	l.credentials[l.credentialSeq] = &domain.Credential{
		ID:       l.credentialSeq,
		Owner:    recipient,
		Metadata: metadata,
		IssuedAt: time.Now().UTC(),
	}
	return l.credentialSeq
}

// CredentialsOf returns every credential owned by address in ascending
// id order. Empty slice if none.
func (l *Ledger) CredentialsOf(address string) []domain.Credential {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := []domain.Credential{}
	for id := int64(1); id <= l.credentialSeq; id++ {
		if cred := l.credentials[id]; cred.Owner == address {
			result = append(result, copyCredential(cred))
		}
	}
	return result
}

// VerifyCredential reports whether a credential with the given id exists
// and is owned by address. Unknown ids are false, not an error.
func (l *Ledger) VerifyCredential(id int64, address string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cred, ok := l.credentials[id]
	return ok && cred.Owner == address
}

// ---- Event operations ----

// CreateEvent stores a new event with an empty participant set and the
// active flag raised, returning its id.
func (l *Ledger) CreateEvent(spec domain.EventSpec) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return 0, apperror.ErrNotInitialized()
	}

	l.eventSeq++
	l.events[l.eventSeq] = &domain.Event{
		ID:               l.eventSeq,
		Name:             spec.Name,
		Type:             spec.Type,
		Description:      spec.Description,
		RewardAmount:     spec.RewardAmount,
		IssueCertificate: spec.IssueCertificate,
		Organizer:        spec.Organizer,
		Participants:     []string{},
		Active:           true,
		CreatedAt:        time.Now().UTC(),
	}
	return l.eventSeq, nil
}

// Event returns a copy of the event with the given id, or ErrNotFound.
func (l *Ledger) Event(id int64) (domain.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	evt, ok := l.events[id]
	if !ok {
		return domain.Event{}, apperror.ErrNotFound("Event")
	}
	return copyEvent(evt), nil
}

// Events returns all events in creation order, restricted to active
// ones when activeOnly is set.
func (l *Ledger) Events(activeOnly bool) []domain.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := []domain.Event{}
	for id := int64(1); id <= l.eventSeq; id++ {
		evt := l.events[id]
		if activeOnly && !evt.Active {
			continue
		}
		result = append(result, copyEvent(evt))
	}
	return result
}

// RecordAttendance is the compound operation: it verifies the event
// exists and the student has not attended, appends the student to the
// participant set, mints the event's reward, and issues a certificate
// credential when the event is configured to. The whole sequence runs
// under one critical section so two simultaneous requests for the same
// (event, address) pair cannot both pass the duplicate check.
func (l *Ledger) RecordAttendance(eventID int64, student string) (domain.AttendanceResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return domain.AttendanceResult{}, apperror.ErrNotInitialized()
	}

	evt, ok := l.events[eventID]
	if !ok {
		return domain.AttendanceResult{}, apperror.ErrEventNotFound(eventID)
	}
	if evt.HasParticipant(student) {
		return domain.AttendanceResult{}, apperror.ErrDuplicateAttendance(eventID, student)
	}

	evt.Participants = append(evt.Participants, student)
	l.mintLocked(student, evt.RewardAmount)

	result := domain.AttendanceResult{TokensEarned: evt.RewardAmount}
	if evt.IssueCertificate {
		credID := l.issueCredentialLocked(student, map[string]interface{}{
			"eventId":              evt.ID,
			"eventName":            evt.Name,
			"eventType":            evt.Type,
			domain.MetadataKeyType: domain.CredentialTypeCertificate,
		})
		result.CredentialID = &credID
	}
	return result, nil
}

// ---- Derived read views ----

// StudentSummary assembles the dashboard view for address. The event
// history is derived from the event table on every call.
func (l *Ledger) StudentSummary(address string) domain.StudentSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	credentials := []domain.Credential{}
	for id := int64(1); id <= l.credentialSeq; id++ {
		if cred := l.credentials[id]; cred.Owner == address {
			credentials = append(credentials, copyCredential(cred))
		}
	}

	history := []domain.EventAttendance{}
	for id := int64(1); id <= l.eventSeq; id++ {
		evt := l.events[id]
		if !evt.HasParticipant(address) {
			continue
		}
		history = append(history, domain.EventAttendance{
			EventID:      evt.ID,
			EventName:    evt.Name,
			EventType:    evt.Type,
			TokensEarned: evt.RewardAmount,
			Timestamp:    evt.CreatedAt,
		})
	}

	return domain.StudentSummary{
		Address:         address,
		TotalTokens:     l.balances[address],
		Credentials:     len(credentials),
		CredentialsList: credentials,
		EventHistory:    history,
		TotalEvents:     len(history),
	}
}

// Leaderboard returns every known address ordered by token count
// descending; ties break by address ascending so the order is
// deterministic. Limit <= 0 falls back to DefaultLeaderboardLimit.
func (l *Ledger) Leaderboard(limit int) []domain.LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	l.mu.RLock()
	entries := make([]domain.LeaderboardEntry, 0, len(l.balances))
	for address, tokens := range l.balances {
		entries = append(entries, domain.LeaderboardEntry{Address: address, Tokens: tokens})
	}
	l.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Tokens != entries[j].Tokens {
			return entries[i].Tokens > entries[j].Tokens
		}
		return entries[i].Address < entries[j].Address
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func copyCredential(c *domain.Credential) domain.Credential {
	out := *c
	out.Metadata = make(map[string]interface{}, len(c.Metadata))
	for k, v := range c.Metadata {
		out.Metadata[k] = v
	}
	return out
}

func copyEvent(e *domain.Event) domain.Event {
	out := *e
	out.Participants = append([]string(nil), e.Participants...)
	return out
}
