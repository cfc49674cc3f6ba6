package trend

import (
	"time"
)

// Kind identifies the category of trend entity being aggregated
type Kind string

const (
	KindHashtag Kind = "hashtag"
	KindSound   Kind = "sound"
	KindVideo   Kind = "video"
)

// Sound represents a trending sound and its usage metrics.
// Immutable once fetched; sounds are deduplicated by ID across sources.
type Sound struct {
	ID         string
	Name       string
	Author     string
	VideoCount int
	Duration   int
}

// Hashtag represents a trending hashtag. Name is the merge key: records
// with the same name have their counts summed during aggregation. An empty
// Description means the source had none; the first source that provides one
// wins.
type Hashtag struct {
	Name        string
	VideoCount  int
	ViewCount   int
	Description string
}

// TrendingVideo represents a trending video with its engagement metrics
type TrendingVideo struct {
	ID          string
	Description string
	Author      string
	Sound       Sound
	Hashtags    []string
	Likes       int
	Shares      int
	Comments    int
	CreatedAt   time.Time
}

// Engagement returns the combined engagement count used for ranking
func (v TrendingVideo) Engagement() int {
	return v.Likes + v.Shares + v.Comments
}

// Outcome distinguishes the three result states of an aggregation: data was
// found, sources answered but had no data, or every source failed. Empty and
// Failed are normal reportable outcomes, not errors.
type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeEmpty  Outcome = "empty"
	OutcomeFailed Outcome = "failed"
)

// Snapshot is one aggregation cycle's view across all entity kinds
type Snapshot struct {
	Hashtags []Hashtag
	Sounds   []Sound
	Videos   []TrendingVideo
	Outcome  Outcome
}
