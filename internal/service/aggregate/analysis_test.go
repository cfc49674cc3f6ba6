package aggregate

import (
	"testing"

	"trendforge/internal/domain/trend"
)

func TestAnalyzeSnapshot(t *testing.T) {
	snapshot := trend.Snapshot{
		Hashtags: []trend.Hashtag{
			{Name: "tutorial", ViewCount: 800},
			{Name: "lifehack", ViewCount: 3500},
		},
		Sounds: []trend.Sound{
			{ID: "s1", Name: "Mix A", VideoCount: 100},
			{ID: "s2", Name: "Mix B", VideoCount: 300},
		},
		Videos: []trend.TrendingVideo{
			{ID: "v1", Likes: 100, Shares: 50, Comments: 10, Hashtags: []string{"lifehack", "diy"}, Sound: trend.Sound{Duration: 30}},
			{ID: "v2", Likes: 300, Shares: 150, Comments: 30, Hashtags: []string{"lifehack"}, Sound: trend.Sound{Duration: 30}},
		},
		Outcome: trend.OutcomeOK,
	}

	analysis := Analyze(snapshot)

	if analysis.TopTrend != "lifehack" {
		t.Errorf("expected top trend lifehack, got %q", analysis.TopTrend)
	}
	if analysis.Engagement.AverageLikes != 200 {
		t.Errorf("expected average likes 200, got %v", analysis.Engagement.AverageLikes)
	}
	if analysis.Sounds.TopSound == nil || analysis.Sounds.TopSound.ID != "s2" {
		t.Errorf("expected top sound s2, got %+v", analysis.Sounds.TopSound)
	}
	if analysis.Sounds.AverageUsage != 200 {
		t.Errorf("expected average usage 200, got %v", analysis.Sounds.AverageUsage)
	}
	if analysis.Durations.MostCommon != 30 {
		t.Errorf("expected most common duration 30, got %d", analysis.Durations.MostCommon)
	}
	if analysis.Hashtags.MostUsed != "lifehack" {
		t.Errorf("expected most used hashtag lifehack, got %q", analysis.Hashtags.MostUsed)
	}
	if analysis.Hashtags.Frequency["lifehack"] != 2 {
		t.Errorf("expected lifehack frequency 2, got %d", analysis.Hashtags.Frequency["lifehack"])
	}
}

func TestAnalyzeEmptySnapshot(t *testing.T) {
	analysis := Analyze(trend.Snapshot{Outcome: trend.OutcomeEmpty})

	if analysis.TopTrend != "" {
		t.Errorf("expected no top trend, got %q", analysis.TopTrend)
	}
	if analysis.Engagement.AverageLikes != 0 {
		t.Errorf("expected zero engagement, got %v", analysis.Engagement.AverageLikes)
	}
	if analysis.Sounds.TopSound != nil {
		t.Errorf("expected no top sound, got %+v", analysis.Sounds.TopSound)
	}
}
