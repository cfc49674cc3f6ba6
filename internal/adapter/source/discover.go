package source

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"trendforge/internal/domain/trend"
	"trendforge/internal/service/ratelimit"
)

// DiscoverScraper collects trending hashtags from the platform's public
// discover page. Server-rendered challenge cards carry the hashtag name,
// an abbreviated view count and an optional description.
type DiscoverScraper struct {
	BaseURL    string
	HTTPClient *http.Client
	limiter    *ratelimit.Limiter
}

// NewDiscoverScraper creates a discover-page hashtag source
func NewDiscoverScraper(baseURL string, limiter *ratelimit.Limiter) *DiscoverScraper {
	return &DiscoverScraper{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: time.Second * 15,
		},
		limiter: limiter,
	}
}

// Name returns the source name
func (s *DiscoverScraper) Name() string { return "discover-page" }

// TrendingHashtags scrapes the discover page for trending hashtags.
// Cards that cannot be parsed are skipped.
func (s *DiscoverScraper) TrendingHashtags(ctx context.Context) ([]trend.Hashtag, error) {
	if err := s.limiter.Acquire(ctx, ratelimit.CategoryWeb); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/discover", nil)
	if err != nil {
		return nil, err
	}
	// A browser-ish User-Agent avoids the bot interstitial
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discover page returned status code %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var tags []trend.Hashtag
	doc.Find(".challenge-card").Each(func(i int, card *goquery.Selection) {
		name := strings.TrimPrefix(strings.TrimSpace(card.Find(".challenge-title").Text()), "#")
		if name == "" {
			return
		}

		tags = append(tags, trend.Hashtag{
			Name:        name,
			VideoCount:  ParseCount(card.Find(".challenge-videos").Text()),
			ViewCount:   ParseCount(card.Find(".challenge-views").Text()),
			Description: strings.TrimSpace(card.Find(".challenge-desc").Text()),
		})
	})

	return tags, nil
}

// ParseCount converts an abbreviated count such as "1.5M" or "240K" to an
// integer. Unparseable input yields zero.
func ParseCount(raw string) int {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(raw, "k"):
		multiplier = 1_000
		raw = strings.TrimSuffix(raw, "k")
	case strings.HasSuffix(raw, "m"):
		multiplier = 1_000_000
		raw = strings.TrimSuffix(raw, "m")
	case strings.HasSuffix(raw, "b"):
		multiplier = 1_000_000_000
		raw = strings.TrimSuffix(raw, "b")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}

	return int(value * multiplier)
}
