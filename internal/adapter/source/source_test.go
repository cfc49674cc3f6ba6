package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trendforge/internal/domain/trend"
	"trendforge/internal/service/ratelimit"
)

func testLimiter() *ratelimit.Limiter {
	return ratelimit.New(ratelimit.DefaultConfig())
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"1.5M", 1500000},
		{"240K", 240000},
		{"2b", 2000000000},
		{"987", 987},
		{"  12.5k ", 12500},
		{"", 0},
		{"n/a", 0},
	}

	for _, tt := range tests {
		if got := ParseCount(tt.raw); got != tt.want {
			t.Errorf("ParseCount(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

const trendingVideosBody = `{
	"videos": [
		{
			"id": "v1",
			"desc": "Desk setup tour",
			"author": {"uniqueId": "deskguy"},
			"music": {"id": "s1", "title": "Lo-fi Loop", "authorName": "beatsmith", "videoCount": 12000, "duration": 30},
			"challenges": [{"name": "desksetup"}, {"name": "workspace"}],
			"stats": {"diggCount": 1000, "shareCount": 500, "commentCount": 100},
			"createTime": 1735689600
		},
		{
			"id": "v2",
			"desc": "Same song, new dance",
			"author": {"uniqueId": "dancer"},
			"music": {"id": "s1", "title": "Lo-fi Loop", "authorName": "beatsmith", "videoCount": 12000, "duration": 30},
			"challenges": [{"name": "desksetup"}],
			"stats": {"diggCount": 200, "shareCount": 100, "commentCount": 50},
			"createTime": 1735693200
		}
	]
}`

func newTestAPIClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAPIClient("test-key", server.URL, testLimiter())
}

func TestAPIClientTrendingVideos(t *testing.T) {
	client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		w.Write([]byte(trendingVideosBody))
	})

	videos, err := client.TrendingVideos(context.Background(), 20)
	if err != nil {
		t.Fatalf("TrendingVideos returned error: %v", err)
	}

	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}
	v := videos[0]
	if v.ID != "v1" || v.Author != "deskguy" {
		t.Errorf("unexpected video: %+v", v)
	}
	if v.Sound.ID != "s1" || v.Sound.Duration != 30 {
		t.Errorf("unexpected sound: %+v", v.Sound)
	}
	if len(v.Hashtags) != 2 || v.Hashtags[0] != "desksetup" {
		t.Errorf("unexpected hashtags: %v", v.Hashtags)
	}
	if v.Engagement() != 1600 {
		t.Errorf("unexpected engagement %d", v.Engagement())
	}
	if !v.CreatedAt.Equal(time.Unix(1735689600, 0)) {
		t.Errorf("unexpected creation time %v", v.CreatedAt)
	}
}

func TestAPIClientErrorStatus(t *testing.T) {
	client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := client.TrendingVideos(context.Background(), 20); err == nil {
		t.Fatal("expected error on 503 response")
	}
}

func TestAPIHashtagSource(t *testing.T) {
	client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(trendingVideosBody))
	})

	tags, err := NewAPIHashtagSource(client, 20).TrendingHashtags(context.Background())
	if err != nil {
		t.Fatalf("TrendingHashtags returned error: %v", err)
	}

	if len(tags) != 2 {
		t.Fatalf("expected 2 hashtags, got %d", len(tags))
	}
	desksetup := tags[0]
	if desksetup.Name != "desksetup" {
		t.Fatalf("expected desksetup first, got %q", desksetup.Name)
	}
	if desksetup.VideoCount != 2 || desksetup.ViewCount != 1950 {
		t.Errorf("expected accumulated stats 2/1950, got %d/%d", desksetup.VideoCount, desksetup.ViewCount)
	}
}

func TestSoundAnalyzerDeduplicates(t *testing.T) {
	client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(trendingVideosBody))
	})

	sounds, err := NewSoundAnalyzer(client, 20).TrendingSounds(context.Background())
	if err != nil {
		t.Fatalf("TrendingSounds returned error: %v", err)
	}

	if len(sounds) != 1 {
		t.Fatalf("expected 1 distinct sound, got %d", len(sounds))
	}
	if sounds[0].ID != "s1" || sounds[0].Name != "Lo-fi Loop" {
		t.Errorf("unexpected sound: %+v", sounds[0])
	}
}

func TestSoundHashtagSourceCorrelates(t *testing.T) {
	client := newTestAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(trendingVideosBody))
	})

	analyzer := NewSoundAnalyzer(client, 20)
	tags, err := NewSoundHashtagSource(analyzer, client, 20).TrendingHashtags(context.Background())
	if err != nil {
		t.Fatalf("TrendingHashtags returned error: %v", err)
	}

	// Both videos use the trending sound, so both contribute their tags
	if len(tags) != 2 {
		t.Fatalf("expected 2 correlated hashtags, got %d", len(tags))
	}
	if tags[0].Name != "desksetup" || tags[0].VideoCount != 2 {
		t.Errorf("unexpected correlated tag: %+v", tags[0])
	}
}

func TestDiscoverScraper(t *testing.T) {
	page := `<html><body>
		<div class="challenge-card">
			<span class="challenge-title">#lifehack</span>
			<span class="challenge-videos">500K</span>
			<span class="challenge-views">5M</span>
			<p class="challenge-desc">Life hacks to make your day easier</p>
		</div>
		<div class="challenge-card">
			<span class="challenge-title"></span>
		</div>
		<div class="challenge-card">
			<span class="challenge-title">#tutorial</span>
			<span class="challenge-views">3M</span>
		</div>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discover" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(page))
	}))
	defer server.Close()

	scraper := NewDiscoverScraper(server.URL, testLimiter())
	tags, err := scraper.TrendingHashtags(context.Background())
	if err != nil {
		t.Fatalf("TrendingHashtags returned error: %v", err)
	}

	// The card without a title is skipped
	if len(tags) != 2 {
		t.Fatalf("expected 2 hashtags, got %d", len(tags))
	}
	if tags[0].Name != "lifehack" || tags[0].ViewCount != 5000000 || tags[0].VideoCount != 500000 {
		t.Errorf("unexpected first tag: %+v", tags[0])
	}
	if tags[0].Description != "Life hacks to make your day easier" {
		t.Errorf("unexpected description: %q", tags[0].Description)
	}
	if tags[1].Name != "tutorial" || tags[1].VideoCount != 0 {
		t.Errorf("unexpected second tag: %+v", tags[1])
	}
}

func TestHashtagsFromVideosEmpty(t *testing.T) {
	if tags := hashtagsFromVideos(nil); len(tags) != 0 {
		t.Errorf("expected no hashtags from no videos, got %v", tags)
	}
	if tags := hashtagsFromVideos([]trend.TrendingVideo{{ID: "v1"}}); len(tags) != 0 {
		t.Errorf("expected no hashtags from untagged video, got %v", tags)
	}
}
