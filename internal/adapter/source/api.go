package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"trendforge/internal/domain/trend"
	"trendforge/internal/service/ratelimit"
)

// APIClient talks to the video platform's trending API
type APIClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	limiter    *ratelimit.Limiter
}

// videoPayload mirrors the platform's trending video response item
type videoPayload struct {
	ID     string `json:"id"`
	Desc   string `json:"desc"`
	Author struct {
		UniqueID string `json:"uniqueId"`
	} `json:"author"`
	Music struct {
		ID         string `json:"id"`
		Title      string `json:"title"`
		AuthorName string `json:"authorName"`
		VideoCount int    `json:"videoCount"`
		Duration   int    `json:"duration"`
	} `json:"music"`
	Challenges []struct {
		Name string `json:"name"`
	} `json:"challenges"`
	Stats struct {
		DiggCount    int `json:"diggCount"`
		ShareCount   int `json:"shareCount"`
		CommentCount int `json:"commentCount"`
	} `json:"stats"`
	CreateTime int64 `json:"createTime"`
}

// NewAPIClient creates a new platform API client
func NewAPIClient(apiKey, baseURL string, limiter *ratelimit.Limiter) *APIClient {
	return &APIClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: time.Second * 10,
		},
		limiter: limiter,
	}
}

// Name returns the source name
func (c *APIClient) Name() string { return "platform-api" }

// TrendingVideos fetches trending videos from the platform API
func (c *APIClient) TrendingVideos(ctx context.Context, limit int) ([]trend.TrendingVideo, error) {
	if err := c.limiter.Acquire(ctx, ratelimit.CategoryAPI); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/trending/video?limit=%d", c.BaseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Authorization", "Bearer "+c.APIKey)
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("platform API returned status code %d", resp.StatusCode)
	}

	var payload struct {
		Videos []videoPayload `json:"videos"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	videos := make([]trend.TrendingVideo, 0, len(payload.Videos))
	for _, item := range payload.Videos {
		videos = append(videos, parseVideoPayload(item))
	}

	return videos, nil
}

func parseVideoPayload(item videoPayload) trend.TrendingVideo {
	hashtags := make([]string, 0, len(item.Challenges))
	for _, challenge := range item.Challenges {
		hashtags = append(hashtags, challenge.Name)
	}

	return trend.TrendingVideo{
		ID:          item.ID,
		Description: item.Desc,
		Author:      item.Author.UniqueID,
		Sound: trend.Sound{
			ID:         item.Music.ID,
			Name:       item.Music.Title,
			Author:     item.Music.AuthorName,
			VideoCount: item.Music.VideoCount,
			Duration:   item.Music.Duration,
		},
		Hashtags:  hashtags,
		Likes:     item.Stats.DiggCount,
		Shares:    item.Stats.ShareCount,
		Comments:  item.Stats.CommentCount,
		CreatedAt: time.Unix(item.CreateTime, 0),
	}
}

// APIHashtagSource derives hashtag trends from the API's trending videos:
// each video contributes one video-count per tag, weighted by the video's
// combined engagement.
type APIHashtagSource struct {
	client *APIClient
	limit  int
}

// NewAPIHashtagSource creates a hashtag source backed by the platform API
func NewAPIHashtagSource(client *APIClient, limit int) *APIHashtagSource {
	return &APIHashtagSource{client: client, limit: limit}
}

// Name returns the source name
func (s *APIHashtagSource) Name() string { return "platform-api-hashtags" }

// TrendingHashtags derives hashtag stats from trending videos
func (s *APIHashtagSource) TrendingHashtags(ctx context.Context) ([]trend.Hashtag, error) {
	videos, err := s.client.TrendingVideos(ctx, s.limit)
	if err != nil {
		return nil, err
	}
	return hashtagsFromVideos(videos), nil
}

// hashtagsFromVideos accumulates hashtag usage across a set of videos,
// preserving first-seen order
func hashtagsFromVideos(videos []trend.TrendingVideo) []trend.Hashtag {
	index := make(map[string]int)
	var tags []trend.Hashtag

	for _, video := range videos {
		engagement := video.Engagement()
		for _, name := range video.Hashtags {
			i, seen := index[name]
			if !seen {
				index[name] = len(tags)
				tags = append(tags, trend.Hashtag{
					Name:       name,
					VideoCount: 1,
					ViewCount:  engagement,
				})
				continue
			}
			tags[i].VideoCount++
			tags[i].ViewCount += engagement
		}
	}

	return tags
}
