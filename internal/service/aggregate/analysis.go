package aggregate

import (
	"sort"

	"trendforge/internal/domain/trend"
)

// EngagementMetrics holds average engagement across a set of videos
type EngagementMetrics struct {
	AverageLikes    float64 `json:"average_likes"`
	AverageShares   float64 `json:"average_shares"`
	AverageComments float64 `json:"average_comments"`
}

// SoundMetric scores one sound's content opportunity
type SoundMetric struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Popularity      int     `json:"popularity"`
	EngagementScore float64 `json:"engagement_score"`
}

// SoundMetrics summarizes trending sound usage
type SoundMetrics struct {
	AverageUsage float64      `json:"average_usage"`
	TopSound     *SoundMetric `json:"top_sound,omitempty"`
}

// DurationPatterns summarizes sound durations across trending videos
type DurationPatterns struct {
	Average    float64 `json:"average"`
	MostCommon int     `json:"most_common"`
}

// HashtagPatterns summarizes hashtag usage across trending videos
type HashtagPatterns struct {
	MostUsed  string         `json:"most_used,omitempty"`
	Frequency map[string]int `json:"frequency"`
}

// Analysis identifies content opportunities in an aggregated snapshot
type Analysis struct {
	TopTrend   string            `json:"top_trend"`
	Engagement EngagementMetrics `json:"engagement"`
	Sounds     SoundMetrics      `json:"sounds"`
	Durations  DurationPatterns  `json:"durations"`
	Hashtags   HashtagPatterns   `json:"hashtags"`
}

// Analyze derives opportunity metrics from one aggregation cycle. Pure
// function of the snapshot; a degenerate snapshot yields zero metrics.
func Analyze(snapshot trend.Snapshot) Analysis {
	return Analysis{
		TopTrend:   topTrend(snapshot.Hashtags),
		Engagement: analyzeEngagement(snapshot.Videos),
		Sounds:     analyzeSounds(snapshot.Sounds),
		Durations:  analyzeDurations(snapshot.Videos),
		Hashtags:   analyzeHashtags(snapshot.Videos),
	}
}

// topTrend picks the hashtag with the highest view count
func topTrend(hashtags []trend.Hashtag) string {
	top := ""
	best := -1
	for _, tag := range hashtags {
		if tag.ViewCount > best {
			best = tag.ViewCount
			top = tag.Name
		}
	}
	return top
}

func analyzeEngagement(videos []trend.TrendingVideo) EngagementMetrics {
	if len(videos) == 0 {
		return EngagementMetrics{}
	}

	var likes, shares, comments int
	for _, video := range videos {
		likes += video.Likes
		shares += video.Shares
		comments += video.Comments
	}

	count := float64(len(videos))
	return EngagementMetrics{
		AverageLikes:    float64(likes) / count,
		AverageShares:   float64(shares) / count,
		AverageComments: float64(comments) / count,
	}
}

func analyzeSounds(sounds []trend.Sound) SoundMetrics {
	if len(sounds) == 0 {
		return SoundMetrics{}
	}

	totalUsage := 0
	metrics := make([]SoundMetric, 0, len(sounds))
	for _, sound := range sounds {
		totalUsage += sound.VideoCount
		metrics = append(metrics, SoundMetric{
			ID:              sound.ID,
			Name:            sound.Name,
			Popularity:      sound.VideoCount,
			EngagementScore: float64(sound.VideoCount) * 0.7,
		})
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].EngagementScore > metrics[j].EngagementScore
	})

	top := metrics[0]
	return SoundMetrics{
		AverageUsage: float64(totalUsage) / float64(len(sounds)),
		TopSound:     &top,
	}
}

func analyzeDurations(videos []trend.TrendingVideo) DurationPatterns {
	var durations []int
	for _, video := range videos {
		if video.Sound.Duration > 0 {
			durations = append(durations, video.Sound.Duration)
		}
	}

	if len(durations) == 0 {
		return DurationPatterns{}
	}

	total := 0
	counts := make(map[int]int)
	for _, d := range durations {
		total += d
		counts[d]++
	}

	mostCommon := durations[0]
	for _, d := range durations {
		if counts[d] > counts[mostCommon] {
			mostCommon = d
		}
	}

	return DurationPatterns{
		Average:    float64(total) / float64(len(durations)),
		MostCommon: mostCommon,
	}
}

func analyzeHashtags(videos []trend.TrendingVideo) HashtagPatterns {
	counts := make(map[string]int)
	var order []string
	for _, video := range videos {
		for _, tag := range video.Hashtags {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	if len(order) == 0 {
		return HashtagPatterns{Frequency: map[string]int{}}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	top := order
	if len(top) > 5 {
		top = top[:5]
	}

	frequency := make(map[string]int, len(top))
	for _, tag := range top {
		frequency[tag] = counts[tag]
	}

	return HashtagPatterns{
		MostUsed:  order[0],
		Frequency: frequency,
	}
}
