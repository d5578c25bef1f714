package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"codeberg.org/surferbot/server/internal/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// The redis backend implements store.Incrementer, so the ledger's counters
// switch to atomic adds and stop losing concurrent updates. Same callers,
// stricter counting.
func TestIncrementUsage_AtomicBackendIsExact(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := store.NewRedisClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	l := New(client, 10)
	l.now = func() time.Time { return testEpoch }

	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			l.IncrementUsage(ctx, "user-1")
		}()
	}

	wg.Wait()

	assert.Equal(t, n, l.GetUsage(ctx, "user-1").Count)
	assert.Equal(t, n, l.GetMonthlyTotal(ctx))
}
