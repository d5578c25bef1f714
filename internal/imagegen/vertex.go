// Package imagegen calls the Vertex AI image generation API. The service is
// an opaque external collaborator: callers get image bytes or an error, and
// decide themselves what a failure means for quota accounting.
package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	vertexEndpointFormat = "https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:predict"
	defaultModel         = "imagegeneration"
	defaultImageSize     = "1024x1024"
)

// shared HTTP client for Vertex AI calls; generation is slow, so the timeout
// is generous
var vertexHTTPClient = &http.Client{
	Timeout: 120 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for outbound Vertex calls (5 requests/second, burst of 2)
var vertexRateLimiter = rate.NewLimiter(5, 2)

// pixel dimensions for the sizes the bot accepts
var sizeMap = map[string]string{
	"512":  "512x512",
	"768":  "768x768",
	"1024": "1024x1024",
}

type predictRequest struct {
	Instances  []instance `json:"instances"`
	Parameters parameters `json:"parameters"`
}

type instance struct {
	Prompt string `json:"prompt"`
}

type parameters struct {
	SampleCount    int    `json:"sampleCount"`
	ImageSize      string `json:"imageSize"`
	Seed           int    `json:"seed,omitempty"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		B64                string `json:"b64"`
		ImageBytes         string `json:"imageBytes"`
	} `json:"predictions"`
}

// VertexConfig holds credentials and model selection for the Vertex client.
type VertexConfig struct {
	ProjectID string
	Location  string
	APIKey    string
	Model     string // defaults to "imagegeneration"
}

// Request describes one image to generate.
type Request struct {
	Prompt   string
	Size     string // "512", "768", or "1024"; empty means 1024
	Seed     int    // 0 means unseeded
	Negative string // negative prompt, empty means none
}

type VertexClient struct {
	config     VertexConfig
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewVertexClient(config VertexConfig) *VertexClient {
	if config.Model == "" {
		config.Model = defaultModel
	}

	return &VertexClient{
		config: config,
		endpoint: fmt.Sprintf(vertexEndpointFormat,
			config.Location, config.ProjectID, config.Location, config.Model),
		httpClient: vertexHTTPClient,
		limiter:    vertexRateLimiter,
	}
}

// reports whether the client has everything it needs to make calls
func (c *VertexClient) Configured() bool {
	return c.config.ProjectID != "" && c.config.Location != "" && c.config.APIKey != ""
}

// Generate produces one image for the request and returns its raw bytes.
func (c *VertexClient) Generate(ctx context.Context, genReq Request) ([]byte, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("vertex client is not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	params := parameters{
		SampleCount: 1,
		ImageSize:   imageSize(genReq.Size),
		Seed:        genReq.Seed,
	}

	prompt := genReq.Prompt
	if genReq.Negative != "" {
		params.NegativePrompt = genReq.Negative
		prompt = fmt.Sprintf("%s. Avoid: %s", prompt, genReq.Negative)
	}

	reqBody := predictRequest{
		Instances:  []instance{{Prompt: prompt}},
		Parameters: params,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.endpoint + "?key=" + c.config.APIKey

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var predResp predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(predResp.Predictions) == 0 {
		return nil, fmt.Errorf("no predictions in response")
	}

	pred := predResp.Predictions[0]

	enc := pred.BytesBase64Encoded
	if enc == "" {
		enc = pred.B64
	}

	if enc == "" {
		enc = pred.ImageBytes
	}

	if enc == "" {
		return nil, fmt.Errorf("no image data in response")
	}

	img, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return img, nil
}

// maps a requested size to pixel dimensions, defaulting to 1024x1024
func imageSize(size string) string {
	if dims, ok := sizeMap[size]; ok {
		return dims
	}

	return defaultImageSize
}
