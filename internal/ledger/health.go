package ledger

import (
	"context"
	"errors"
)

// HealthCheck implements ports.HealthChecker for the ledger.
type HealthCheck struct {
	ledger *Ledger
}

// NewHealthCheck creates a ledger health checker.
func NewHealthCheck(l *Ledger) *HealthCheck {
	return &HealthCheck{ledger: l}
}

// Ping reports whether the ledger has been initialized.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if !h.ledger.Initialized() {
		return errors.New("ledger not initialized")
	}
	return nil
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "ledger"
}
