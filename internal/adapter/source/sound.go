package source

import (
	"context"

	"trendforge/internal/domain/trend"
)

// SoundAnalyzer derives trending sounds from the platform's trending
// videos: each distinct sound is taken once, first occurrence wins.
type SoundAnalyzer struct {
	client *APIClient
	limit  int
}

// NewSoundAnalyzer creates a sound trend source backed by the platform API
func NewSoundAnalyzer(client *APIClient, limit int) *SoundAnalyzer {
	return &SoundAnalyzer{client: client, limit: limit}
}

// Name returns the source name
func (s *SoundAnalyzer) Name() string { return "sound-analyzer" }

// TrendingSounds deduplicates the sounds behind the current trending
// videos. Twice the requested limit of videos is sampled so popular sounds
// shared by several videos still leave enough distinct entries.
func (s *SoundAnalyzer) TrendingSounds(ctx context.Context) ([]trend.Sound, error) {
	videos, err := s.client.TrendingVideos(ctx, s.limit*2)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var sounds []trend.Sound
	for _, video := range videos {
		if video.Sound.ID == "" || seen[video.Sound.ID] {
			continue
		}
		seen[video.Sound.ID] = true
		sounds = append(sounds, video.Sound)
		if len(sounds) == s.limit {
			break
		}
	}

	return sounds, nil
}

// SoundHashtagSource surfaces hashtags correlated with trending sounds:
// only videos using a currently-trending sound contribute their tags.
type SoundHashtagSource struct {
	sounds *SoundAnalyzer
	client *APIClient
	limit  int
}

// NewSoundHashtagSource creates a sound-correlated hashtag source
func NewSoundHashtagSource(sounds *SoundAnalyzer, client *APIClient, limit int) *SoundHashtagSource {
	return &SoundHashtagSource{sounds: sounds, client: client, limit: limit}
}

// Name returns the source name
func (s *SoundHashtagSource) Name() string { return "sound-correlated" }

// TrendingHashtags derives hashtag stats from videos that use a trending sound
func (s *SoundHashtagSource) TrendingHashtags(ctx context.Context) ([]trend.Hashtag, error) {
	sounds, err := s.sounds.TrendingSounds(ctx)
	if err != nil {
		return nil, err
	}

	videos, err := s.client.TrendingVideos(ctx, s.limit)
	if err != nil {
		return nil, err
	}

	trending := make(map[string]bool, len(sounds))
	for _, sound := range sounds {
		trending[sound.ID] = true
	}

	var correlated []trend.TrendingVideo
	for _, video := range videos {
		if trending[video.Sound.ID] {
			correlated = append(correlated, video)
		}
	}

	return hashtagsFromVideos(correlated), nil
}
