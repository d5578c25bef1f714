package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient keeps counter documents as redis strings keyed by their path.
// Unlike the Realtime Database backend it supports atomic increments, so the
// ledger's counters stop losing updates when this backend is selected.
type RedisClient struct {
	client *redis.Client
}

// creates a redis-backed store client
func NewRedisClient(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// creates a redis-backed store client from a URL and verifies connectivity
func NewRedisClientFromURL(redisURL string) (*RedisClient, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// fetches the document at path; (nil, nil) means the document does not exist
func (c *RedisClient) Get(ctx context.Context, path string) (json.RawMessage, error) {
	val, err := c.client.Get(ctx, path).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("redis GET %s: %w", path, err)
	}

	if !json.Valid([]byte(val)) {
		return nil, fmt.Errorf("redis GET %s returned malformed JSON", path)
	}

	return json.RawMessage(val), nil
}

// overwrites the document at path with the JSON encoding of value
func (c *RedisClient) Put(ctx context.Context, path string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.client.Set(ctx, path, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", path, err)
	}

	return nil
}

// atomically adds delta to the numeric document at path and returns the new
// value; a missing document counts from zero
func (c *RedisClient) IncrBy(ctx context.Context, path string, delta int64) (int64, error) {
	val, err := c.client.IncrBy(ctx, path, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("redis INCRBY %s: %w", path, err)
	}

	return val, nil
}

// exposes the underlying redis connection for infrastructure that shares it
func (c *RedisClient) Client() *redis.Client {
	return c.client
}

// closes the underlying redis connection
func (c *RedisClient) Close() error {
	return c.client.Close()
}
