package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trendforge/internal/service/ratelimit"
)

// ErrRejected marks a request the transcription provider refused outright
// (bad video ID, unsupported media). Retrying will not help.
var ErrRejected = errors.New("transcription request rejected")

// Client talks to the transcription provider's HTTP API
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	limiter    *ratelimit.Limiter
}

// segmentPayload mirrors one transcript segment in the provider response
type segmentPayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Text  string `json:"text"`
}

// NewClient creates a transcription client
func NewClient(apiKey, baseURL string, limiter *ratelimit.Limiter) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: time.Second * 60,
		},
		limiter: limiter,
	}
}

// Transcribe requests a transcript for a video and renders the provider's
// segments as "[start-end] text" lines. A 4xx response means the video
// cannot be transcribed and is wrapped in ErrRejected; 5xx and transport
// errors are transient and returned as-is.
func (c *Client) Transcribe(ctx context.Context, videoID string) (string, error) {
	if err := c.limiter.Acquire(ctx, ratelimit.CategoryTranscription); err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]string{"video_id": videoID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/transcripts", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	req.Header.Add("Authorization", "Bearer "+c.APIKey)
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", fmt.Errorf("%w: video %s, status code %d", ErrRejected, videoID, resp.StatusCode)
	default:
		return "", fmt.Errorf("transcription provider returned status code %d", resp.StatusCode)
	}

	var payload struct {
		Segments []segmentPayload `json:"segments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	return renderSegments(payload.Segments), nil
}

// renderSegments formats provider segments as one "[start-end] text" line
// per segment. Segments missing a timestamp or text are dropped.
func renderSegments(segments []segmentPayload) string {
	var lines []string
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if seg.Start == "" || seg.End == "" || text == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s-%s] %s", seg.Start, seg.End, text))
	}
	return strings.Join(lines, "\n")
}
