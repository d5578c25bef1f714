package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const firebaseRequestTimeout = 10 * time.Second

// shared HTTP client for Realtime Database REST calls
var firebaseHTTPClient = &http.Client{
	Timeout: firebaseRequestTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// FirebaseClient talks to a Firebase Realtime Database over its REST surface.
// Every document lives at {baseURL}{path}.json; a GET of a never-written path
// returns the JSON literal null.
type FirebaseClient struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// creates a Realtime Database client for the given database URL
func NewFirebaseClient(baseURL, authToken string) *FirebaseClient {
	return &FirebaseClient{
		baseURL:    baseURL,
		authToken:  authToken,
		httpClient: firebaseHTTPClient,
	}
}

func (c *FirebaseClient) url(path string) string {
	u := c.baseURL + path + ".json"
	if c.authToken != "" {
		u += "?auth=" + c.authToken
	}

	return u
}

// fetches the document at path; (nil, nil) means the document does not exist
func (c *FirebaseClient) Get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store GET %s returned status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("store GET %s returned malformed JSON", path)
	}

	// never-written paths read back as the literal null
	if string(bytes.TrimSpace(body)) == "null" {
		return nil, nil
	}

	return json.RawMessage(body), nil
}

// overwrites the document at path with the JSON encoding of value
func (c *FirebaseClient) Put(ctx context.Context, path string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("store PUT %s returned status %d", path, resp.StatusCode)
	}

	return nil
}
