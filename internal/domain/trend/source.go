package trend

import (
	"context"
)

// HashtagSource defines an interface for hashtag trend data sources
type HashtagSource interface {
	// Name returns the source name for logging and diagnostics
	Name() string

	// TrendingHashtags returns current trending hashtags from this source
	TrendingHashtags(ctx context.Context) ([]Hashtag, error)
}

// SoundSource defines an interface for sound trend data sources
type SoundSource interface {
	// Name returns the source name for logging and diagnostics
	Name() string

	// TrendingSounds returns current trending sounds from this source
	TrendingSounds(ctx context.Context) ([]Sound, error)
}

// VideoSource defines an interface for trending video data sources
type VideoSource interface {
	// Name returns the source name for logging and diagnostics
	Name() string

	// TrendingVideos returns current trending videos from this source
	TrendingVideos(ctx context.Context, limit int) ([]TrendingVideo, error)
}
