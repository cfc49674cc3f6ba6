package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"trendforge/internal/domain/trend"
	"trendforge/internal/service/ratelimit"
)

// TwitterSource adds a cross-platform signal to hashtag aggregation: the
// recent tweet volume of each watched hashtag. It only ever strengthens
// tags the other sources already know about or that the operator watches
// explicitly.
type TwitterSource struct {
	client    *twitter.Client
	watchlist []string
	limiter   *ratelimit.Limiter
}

type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// NewTwitterSource creates a Twitter tweet-volume hashtag source over a
// configured watchlist of hashtag names (without the leading #).
func NewTwitterSource(bearerToken string, watchlist []string, limiter *ratelimit.Limiter) *TwitterSource {
	return &TwitterSource{
		client: &twitter.Client{
			Authorizer: bearerAuthorizer{token: bearerToken},
			Client: &http.Client{
				Timeout: time.Second * 10,
			},
			Host: "https://api.twitter.com",
		},
		watchlist: watchlist,
		limiter:   limiter,
	}
}

// Name returns the source name
func (s *TwitterSource) Name() string { return "twitter-counts" }

// TrendingHashtags reports recent tweet volume for each watched hashtag.
// Tags with no recent activity are omitted.
func (s *TwitterSource) TrendingHashtags(ctx context.Context) ([]trend.Hashtag, error) {
	var tags []trend.Hashtag

	for _, name := range s.watchlist {
		if err := s.limiter.Acquire(ctx, ratelimit.CategoryAPI); err != nil {
			return nil, err
		}

		res, err := s.client.TweetRecentCounts(ctx, "#"+name, twitter.TweetRecentCountsOpts{
			Granularity: "day",
		})
		if err != nil {
			return nil, fmt.Errorf("tweet counts for #%s: %w", name, err)
		}

		volume := 0
		for _, count := range res.TweetCounts {
			volume += count.TweetCount
		}
		if volume == 0 {
			continue
		}

		tags = append(tags, trend.Hashtag{
			Name:       name,
			VideoCount: volume,
			ViewCount:  volume,
		})
	}

	return tags, nil
}
