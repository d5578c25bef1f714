package ledger

import (
	"context"
	"time"

	"codeberg.org/surferbot/server/internal/logger"
)

// CheckAndUpdateCooldown enforces minimum spacing between a user's requests.
// A rejection mutates nothing; an admit stamps last_ts with the current time
// and leaves the count untouched, so cooldown stays orthogonal to the daily
// cap. A user with last_ts of zero (never seen, or store unavailable) is
// always admitted.
//
// The stamp happens here, before the caller's generation attempt, so a
// request that later fails still arms the cooldown timer.
func (l *Ledger) CheckAndUpdateCooldown(ctx context.Context, userID string, minGap time.Duration) bool {
	usage := l.GetUsage(ctx, userID)
	now := float64(l.now().UnixNano()) / 1e9

	if usage.LastTS > 0 && now-usage.LastTS < minGap.Seconds() {
		return false
	}

	if err := l.SetUsage(ctx, userID, usage.Count, now); err != nil {
		// fail open: spacing enforcement is best-effort
		logger.Warn("failed to stamp cooldown timestamp", "user_id", userID, "error", err)
	}

	return true
}
