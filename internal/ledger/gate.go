package ledger

import (
	"context"
	"time"
)

// Gatekeeper sequences the admission checks for one request: cooldown first,
// then the per-user daily cap, then the global monthly cap.
//
// The checks and the later increment are separate remote operations, so two
// concurrent requests from the same user can both pass before either one is
// recorded. Over-admission is bounded by request concurrency, not prevented.
type Gatekeeper struct {
	ledger     *Ledger
	cooldown   time.Duration
	monthlyCap int
}

// creates a gatekeeper enforcing the given cooldown and monthly cap
func NewGatekeeper(l *Ledger, cooldown time.Duration, monthlyCap int) *Gatekeeper {
	return &Gatekeeper{
		ledger:     l,
		cooldown:   cooldown,
		monthlyCap: monthlyCap,
	}
}

// AdmitAndRecord runs the admission sequence for one request. An admit has
// already stamped the cooldown timestamp; the usage counters themselves are
// untouched until RecordSuccess.
func (g *Gatekeeper) AdmitAndRecord(ctx context.Context, userID string) Decision {
	if !g.ledger.CheckAndUpdateCooldown(ctx, userID, g.cooldown) {
		return CooldownRejected
	}

	usage := g.ledger.GetUsage(ctx, userID)
	limit := g.ledger.GetDailyLimit(ctx, userID)

	if usage.Count >= limit {
		return DailyQuotaExceeded
	}

	if g.ledger.GetMonthlyTotal(ctx) >= g.monthlyCap {
		return MonthlyQuotaExceeded
	}

	return Admitted
}

// RecordSuccess charges one successful generation against the user's daily
// count and the monthly total. Call it only after the external call
// succeeded; a failed generation must not consume quota.
func (g *Gatekeeper) RecordSuccess(ctx context.Context, userID string) {
	g.ledger.IncrementUsage(ctx, userID)
}

// exposes the underlying ledger for quota display and admin operations
func (g *Gatekeeper) Ledger() *Ledger {
	return g.ledger
}
