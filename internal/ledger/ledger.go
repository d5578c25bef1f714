// Package ledger owns usage accounting: per-user daily counts, last-request
// timestamps, and the process-wide monthly total, all kept as independent
// documents in a remote counter store.
//
// The store contract has no transactions, so the counters here are
// best-effort by design. An increment is a read followed by an independent
// write; two concurrent increments of the same key can both read the same
// stale value and lose one update. That window is accepted and documented,
// not papered over - backends that support atomic increments (see
// store.Incrementer) close it without changing any caller.
package ledger

import (
	"context"
	"encoding/json"
	"time"

	"codeberg.org/surferbot/server/internal/logger"
	"codeberg.org/surferbot/server/internal/metrics"
	"codeberg.org/surferbot/server/internal/store"
)

// Ledger reads and writes usage counters. A Ledger built over
// store.NewNopClient fails open: every read returns its default and every
// write is a no-op.
type Ledger struct {
	store             store.Client
	defaultDailyLimit int

	// injectable clock for tests
	now func() time.Time
}

// creates a ledger over the given store client
func New(client store.Client, defaultDailyLimit int) *Ledger {
	return &Ledger{
		store:             client,
		defaultDailyLimit: defaultDailyLimit,
		now:               time.Now,
	}
}

// returns today's usage for a user; a missing record or a failed read is the
// zero value
func (l *Ledger) GetUsage(ctx context.Context, userID string) Usage {
	now := l.now()

	return Usage{
		Count:  l.readInt(ctx, countPath(userID, now)),
		LastTS: l.readFloat(ctx, lastTSPath(userID, now)),
	}
}

// unconditionally overwrites today's usage record for a user
func (l *Ledger) SetUsage(ctx context.Context, userID string, count int, lastTS float64) error {
	now := l.now()

	if err := l.store.Put(ctx, countPath(userID, now), count); err != nil {
		return err
	}

	return l.store.Put(ctx, lastTSPath(userID, now), lastTS)
}

// IncrementUsage records one successful generation: today's count goes up by
// one, last_ts is set to now, and the monthly total goes up by one. The three
// steps are independent remote writes with no rollback; a failure partway
// through leaves the earlier steps applied. Failures are logged and absorbed
// so accounting never breaks the request that already succeeded.
func (l *Ledger) IncrementUsage(ctx context.Context, userID string) {
	now := l.now()

	l.bumpCounter(ctx, countPath(userID, now), "daily count", userID)

	if err := l.store.Put(ctx, lastTSPath(userID, now), float64(now.UnixNano())/1e9); err != nil {
		metrics.StoreErrors.WithLabelValues("put").Inc()
		logger.Warn("failed to record last-request timestamp", "user_id", userID, "error", err)
	}

	l.bumpCounter(ctx, monthlyTotalPath(now), "monthly total", userID)
}

// adds one to the counter at path, atomically when the backend allows it
func (l *Ledger) bumpCounter(ctx context.Context, path, what, userID string) {
	if inc, ok := l.store.(store.Incrementer); ok {
		if _, err := inc.IncrBy(ctx, path, 1); err != nil {
			metrics.StoreErrors.WithLabelValues("incr").Inc()
			logger.Warn("failed to increment "+what, "user_id", userID, "error", err)
		}

		return
	}

	// no atomic add on this backend: read-then-write, lost updates possible
	cur := l.readInt(ctx, path)

	if err := l.store.Put(ctx, path, cur+1); err != nil {
		metrics.StoreErrors.WithLabelValues("put").Inc()
		logger.Warn("failed to increment "+what, "user_id", userID, "error", err)
	}
}

// returns the user's daily limit override, or the configured default when no
// override exists
func (l *Ledger) GetDailyLimit(ctx context.Context, userID string) int {
	raw, err := l.store.Get(ctx, dailyLimitPath(userID))
	if err != nil {
		metrics.StoreErrors.WithLabelValues("get").Inc()
		logger.Warn("failed to read daily limit, using default", "user_id", userID, "error", err)
		return l.defaultDailyLimit
	}

	if raw == nil {
		return l.defaultDailyLimit
	}

	var limit int
	if err := json.Unmarshal(raw, &limit); err != nil {
		logger.Warn("malformed daily limit, using default", "user_id", userID, "error", err)
		return l.defaultDailyLimit
	}

	return limit
}

// sets a per-user daily limit override
func (l *Ledger) SetDailyLimit(ctx context.Context, userID string, limit int) error {
	return l.store.Put(ctx, dailyLimitPath(userID), limit)
}

// returns this month's global generation total, defaulting to zero
func (l *Ledger) GetMonthlyTotal(ctx context.Context) int {
	return l.readInt(ctx, monthlyTotalPath(l.now()))
}

// overwrites today's usage record for a user with zeroes
func (l *Ledger) ResetUserDaily(ctx context.Context, userID string) error {
	return l.SetUsage(ctx, userID, 0, 0)
}

// overwrites this month's global total with zero
func (l *Ledger) ResetMonthlyTotal(ctx context.Context) error {
	return l.store.Put(ctx, monthlyTotalPath(l.now()), 0)
}

// reads an integer document; absent, unreadable, or malformed is zero
func (l *Ledger) readInt(ctx context.Context, path string) int {
	raw, err := l.store.Get(ctx, path)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("get").Inc()
		logger.Warn("store read failed, treating as absent", "path", path, "error", err)
		return 0
	}

	if raw == nil {
		return 0
	}

	// the store hands numbers back as JSON scalars, sometimes with a
	// fractional part
	var val float64
	if err := json.Unmarshal(raw, &val); err != nil {
		logger.Warn("malformed counter document, treating as absent", "path", path, "error", err)
		return 0
	}

	return int(val)
}

// reads a float document; absent, unreadable, or malformed is zero
func (l *Ledger) readFloat(ctx context.Context, path string) float64 {
	raw, err := l.store.Get(ctx, path)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("get").Inc()
		logger.Warn("store read failed, treating as absent", "path", path, "error", err)
		return 0
	}

	if raw == nil {
		return 0
	}

	var val float64
	if err := json.Unmarshal(raw, &val); err != nil {
		logger.Warn("malformed timestamp document, treating as absent", "path", path, "error", err)
		return 0
	}

	return val
}
