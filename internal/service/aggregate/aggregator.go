package aggregate

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"trendforge/internal/domain/trend"
)

// Config contains configuration for the trend aggregator
type Config struct {
	MaxResults    int
	SourceTimeout time.Duration
	EventsTopic   string
}

// Aggregator fans out to all configured trend sources concurrently and
// reconciles their outputs into one ranked, deduplicated list per entity
// kind. Individual sources fail soft: an error or timeout from one source
// is logged and treated as an empty result, never aborting the cycle.
type Aggregator struct {
	hashtagSources []trend.HashtagSource
	soundSources   []trend.SoundSource
	videoSources   []trend.VideoSource
	eventBus       *nats.Conn
	config         Config
}

// New creates a trend aggregator over the given sources. Source order is
// significant: it decides merge tie-breaks, so results are deterministic
// no matter which source answers first.
func New(
	hashtagSources []trend.HashtagSource,
	soundSources []trend.SoundSource,
	videoSources []trend.VideoSource,
	eventBus *nats.Conn,
	config Config,
) *Aggregator {
	return &Aggregator{
		hashtagSources: hashtagSources,
		soundSources:   soundSources,
		videoSources:   videoSources,
		eventBus:       eventBus,
		config:         config,
	}
}

// Hashtags collects trending hashtags from every configured source and
// merges them into one ranked list
func (a *Aggregator) Hashtags(ctx context.Context) ([]trend.Hashtag, trend.Outcome) {
	ctx, cancel := context.WithTimeout(ctx, a.config.SourceTimeout)
	defer cancel()

	results := make([][]trend.Hashtag, len(a.hashtagSources))
	failures := make([]bool, len(a.hashtagSources))

	var wg sync.WaitGroup
	for i, source := range a.hashtagSources {
		wg.Add(1)
		go func(i int, source trend.HashtagSource) {
			defer wg.Done()
			tags, err := source.TrendingHashtags(ctx)
			if err != nil {
				log.Printf("Hashtag source %s unavailable: %v", source.Name(), err)
				failures[i] = true
				return
			}
			results[i] = tags
		}(i, source)
	}
	wg.Wait()

	merged := truncateHashtags(MergeHashtags(results...), a.config.MaxResults)
	outcome := a.outcome(len(merged), countTrue(failures), len(a.hashtagSources))
	a.publishUpdate(trend.KindHashtag, len(merged), outcome)
	return merged, outcome
}

// Sounds collects trending sounds from every configured source
func (a *Aggregator) Sounds(ctx context.Context) ([]trend.Sound, trend.Outcome) {
	ctx, cancel := context.WithTimeout(ctx, a.config.SourceTimeout)
	defer cancel()

	results := make([][]trend.Sound, len(a.soundSources))
	failures := make([]bool, len(a.soundSources))

	var wg sync.WaitGroup
	for i, source := range a.soundSources {
		wg.Add(1)
		go func(i int, source trend.SoundSource) {
			defer wg.Done()
			sounds, err := source.TrendingSounds(ctx)
			if err != nil {
				log.Printf("Sound source %s unavailable: %v", source.Name(), err)
				failures[i] = true
				return
			}
			results[i] = sounds
		}(i, source)
	}
	wg.Wait()

	merged := truncateSounds(MergeSounds(results...), a.config.MaxResults)
	outcome := a.outcome(len(merged), countTrue(failures), len(a.soundSources))
	a.publishUpdate(trend.KindSound, len(merged), outcome)
	return merged, outcome
}

// Videos collects trending videos from every configured source
func (a *Aggregator) Videos(ctx context.Context) ([]trend.TrendingVideo, trend.Outcome) {
	ctx, cancel := context.WithTimeout(ctx, a.config.SourceTimeout)
	defer cancel()

	results := make([][]trend.TrendingVideo, len(a.videoSources))
	failures := make([]bool, len(a.videoSources))

	var wg sync.WaitGroup
	for i, source := range a.videoSources {
		wg.Add(1)
		go func(i int, source trend.VideoSource) {
			defer wg.Done()
			videos, err := source.TrendingVideos(ctx, a.config.MaxResults)
			if err != nil {
				log.Printf("Video source %s unavailable: %v", source.Name(), err)
				failures[i] = true
				return
			}
			results[i] = videos
		}(i, source)
	}
	wg.Wait()

	merged := truncateVideos(MergeVideos(results...), a.config.MaxResults)
	outcome := a.outcome(len(merged), countTrue(failures), len(a.videoSources))
	a.publishUpdate(trend.KindVideo, len(merged), outcome)
	return merged, outcome
}

// Snapshot collects all three entity kinds for one aggregation cycle.
// The snapshot outcome is the weakest of the per-kind outcomes: Failed
// only when every kind failed, Empty when nothing was found.
func (a *Aggregator) Snapshot(ctx context.Context) trend.Snapshot {
	hashtags, hashtagOutcome := a.Hashtags(ctx)
	sounds, soundOutcome := a.Sounds(ctx)
	videos, videoOutcome := a.Videos(ctx)

	snapshot := trend.Snapshot{
		Hashtags: hashtags,
		Sounds:   sounds,
		Videos:   videos,
		Outcome:  trend.OutcomeFailed,
	}

	for _, outcome := range []trend.Outcome{hashtagOutcome, soundOutcome, videoOutcome} {
		if outcome == trend.OutcomeOK {
			snapshot.Outcome = trend.OutcomeOK
			break
		}
		if outcome == trend.OutcomeEmpty {
			snapshot.Outcome = trend.OutcomeEmpty
		}
	}

	return snapshot
}

// outcome classifies an aggregation result. Every source failing is still a
// normal "no trends found" result for callers, but it is distinguished from
// sources that answered with no data.
func (a *Aggregator) outcome(merged, failed, sources int) trend.Outcome {
	if merged > 0 {
		return trend.OutcomeOK
	}
	if sources > 0 && failed == sources {
		return trend.OutcomeFailed
	}
	return trend.OutcomeEmpty
}

func (a *Aggregator) publishUpdate(kind trend.Kind, count int, outcome trend.Outcome) {
	if a.eventBus == nil {
		return
	}

	data := []byte(fmt.Sprintf(`{"kind":"%s","count":%d,"outcome":"%s"}`, kind, count, outcome))
	topic := fmt.Sprintf("%s.%s.updated", a.config.EventsTopic, kind)
	if err := a.eventBus.Publish(topic, data); err != nil {
		log.Printf("Error publishing trend event: %v", err)
	}
}

func countTrue(flags []bool) int {
	n := 0
	for _, flag := range flags {
		if flag {
			n++
		}
	}
	return n
}
