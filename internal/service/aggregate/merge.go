package aggregate

import (
	"sort"

	"trendforge/internal/domain/trend"
)

// MergeHashtags reduces hashtag lists from multiple sources into one ranked
// list. The hashtag name is the merge key: the first occurrence establishes
// the record, later occurrences add their counts to the running totals, and
// a missing description is backfilled by the first source that has one. The
// result is sorted by view count descending; the sort is stable so ties keep
// first-seen order. Applying the reducer to an already-merged list is a
// no-op on the counts.
func MergeHashtags(lists ...[]trend.Hashtag) []trend.Hashtag {
	index := make(map[string]int)
	var merged []trend.Hashtag

	for _, list := range lists {
		for _, tag := range list {
			i, seen := index[tag.Name]
			if !seen {
				index[tag.Name] = len(merged)
				merged = append(merged, tag)
				continue
			}

			merged[i].VideoCount += tag.VideoCount
			merged[i].ViewCount += tag.ViewCount
			if merged[i].Description == "" && tag.Description != "" {
				merged[i].Description = tag.Description
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ViewCount > merged[j].ViewCount
	})

	return merged
}

// MergeSounds deduplicates sounds by ID. Each provider reports authoritative
// popularity, so there is no count accumulation: the first occurrence wins.
// Sorted by video count descending, stable.
func MergeSounds(lists ...[]trend.Sound) []trend.Sound {
	seen := make(map[string]bool)
	var merged []trend.Sound

	for _, list := range lists {
		for _, sound := range list {
			if seen[sound.ID] {
				continue
			}
			seen[sound.ID] = true
			merged = append(merged, sound)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].VideoCount > merged[j].VideoCount
	})

	return merged
}

// MergeVideos deduplicates videos by ID, first occurrence wins. Sorted by
// combined engagement descending, stable.
func MergeVideos(lists ...[]trend.TrendingVideo) []trend.TrendingVideo {
	seen := make(map[string]bool)
	var merged []trend.TrendingVideo

	for _, list := range lists {
		for _, video := range list {
			if seen[video.ID] {
				continue
			}
			seen[video.ID] = true
			merged = append(merged, video)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Engagement() > merged[j].Engagement()
	})

	return merged
}

func truncateHashtags(tags []trend.Hashtag, max int) []trend.Hashtag {
	if max > 0 && len(tags) > max {
		return tags[:max]
	}
	return tags
}

func truncateSounds(sounds []trend.Sound, max int) []trend.Sound {
	if max > 0 && len(sounds) > max {
		return sounds[:max]
	}
	return sounds
}

func truncateVideos(videos []trend.TrendingVideo, max int) []trend.TrendingVideo {
	if max > 0 && len(videos) > max {
		return videos[:max]
	}
	return videos
}
