// Package store provides path-addressed JSON document storage for usage
// counters. Documents are read and written independently per path; the base
// contract offers no compare-and-swap and no multi-key transactions, so
// read-modify-write sequences built on it are subject to lost updates.
package store

import (
	"context"
	"encoding/json"
)

// Client reads and writes small JSON documents addressed by path.
//
// Get returns (nil, nil) for a path that was never written; absence is a
// normal outcome, not an error. Errors are transport failures and are treated
// by callers the same way as absence.
type Client interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Put(ctx context.Context, path string, value any) error
}

// Incrementer is an optional upgrade a backend may offer: an atomic add on a
// numeric document. Callers that detect it can skip the racy read-then-write
// sequence entirely.
type Incrementer interface {
	IncrBy(ctx context.Context, path string, delta int64) (int64, error)
}
