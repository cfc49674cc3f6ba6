package videogen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"trendforge/internal/service/pipeline"
	"trendforge/internal/service/ratelimit"
)

// Client renders scripts into videos through the generation provider's API
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	limiter    *ratelimit.Limiter
}

// NewClient creates a video generation client
func NewClient(apiKey, baseURL string, limiter *ratelimit.Limiter) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: time.Second * 120,
		},
		limiter: limiter,
	}
}

// CreateVideo submits a script for rendering and returns the published
// video URL
func (c *Client) CreateVideo(ctx context.Context, req pipeline.RenderRequest) (string, error) {
	if err := c.limiter.Acquire(ctx, ratelimit.CategoryAPI); err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]interface{}{
		"script":   req.Script.Voiceover(),
		"scenes":   req.Script.Scenes,
		"platform": req.Platform,
		"duration": req.Duration,
		"style":    req.Style,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate_video", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	httpReq.Header.Add("X-Api-Key", c.APIKey)
	httpReq.Header.Add("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video generation provider returned status code %d", resp.StatusCode)
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.URL == "" {
		return "", fmt.Errorf("video generation provider returned no URL")
	}

	return payload.URL, nil
}
