package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryClient implements Client with an in-process map. It deliberately does
// not implement Incrementer: increments built on it go through the same
// read-then-write sequence the remote backend forces, which keeps local runs
// and tests faithful to the deployed consistency model.
type MemoryClient struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

// creates an empty in-memory store client
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		docs: make(map[string]json.RawMessage),
	}
}

// fetches the document at path; (nil, nil) means the document does not exist
func (c *MemoryClient) Get(_ context.Context, path string) (json.RawMessage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, exists := c.docs[path]
	if !exists {
		return nil, nil
	}

	// copy so callers cannot mutate stored state
	out := make(json.RawMessage, len(doc))
	copy(out, doc)

	return out, nil
}

// overwrites the document at path with the JSON encoding of value
func (c *MemoryClient) Put(_ context.Context, path string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.docs[path] = payload

	return nil
}

// returns the number of stored documents
func (c *MemoryClient) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.docs)
}
