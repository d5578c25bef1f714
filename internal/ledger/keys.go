package ledger

import (
	"fmt"
	"time"
)

// Document layout in the counter store:
//
//	/usage/{user_id}/{2006-01-02}/count    daily request count
//	/usage/{user_id}/{2006-01-02}/last_ts  unix timestamp of last request
//	/usage_images/{2006-01}/total_count    process-wide monthly total
//	/limits/{user_id}/daily                per-user daily limit override
//
// Day and month partitions roll over by key construction alone; stale
// partitions are never deleted here (retention is external).

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func countPath(userID string, t time.Time) string {
	return fmt.Sprintf("/usage/%s/%s/count", userID, dayKey(t))
}

func lastTSPath(userID string, t time.Time) string {
	return fmt.Sprintf("/usage/%s/%s/last_ts", userID, dayKey(t))
}

func monthlyTotalPath(t time.Time) string {
	return fmt.Sprintf("/usage_images/%s/total_count", monthKey(t))
}

func dailyLimitPath(userID string) string {
	return fmt.Sprintf("/limits/%s/daily", userID)
}
