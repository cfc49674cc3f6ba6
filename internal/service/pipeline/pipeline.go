package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"trendforge/internal/domain/script"
	"trendforge/internal/domain/trend"
	"trendforge/internal/service/aggregate"
	"trendforge/internal/service/originality"
	"trendforge/internal/service/transcript"
)

// Transcriber produces a time-stamped transcript for a source video.
// A failure here is a hard stop for the pipeline: nothing downstream can
// run without a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, videoID string) (string, error)
}

// RenderRequest describes a video to be rendered from a script
type RenderRequest struct {
	Script   script.Script
	Platform string
	Duration int
	Style    string
}

// VideoGenerator renders a script into a published video URL
type VideoGenerator interface {
	CreateVideo(ctx context.Context, req RenderRequest) (string, error)
}

// ScriptGenerator builds scripts from trends or transcript analysis
type ScriptGenerator interface {
	FromTrends(contentType script.ContentType, topTrend string) script.Script
	FromAnalysis(contentType script.ContentType, analysis transcript.Analysis) script.Script
}

// RunStore persists pipeline run records
type RunStore interface {
	SaveRun(ctx context.Context, run script.Run) error
}

// Config contains configuration for the content pipeline
type Config struct {
	Platform      string
	VideoDuration int
	MaxDuration   int
	EventsTopic   string
}

// Pipeline turns trending source material into original published content:
// transcribe, segment, analyze, generate a script, gate it on originality,
// render, and record the run.
type Pipeline struct {
	aggregator  *aggregate.Aggregator
	transcriber Transcriber
	generator   ScriptGenerator
	videoGen    VideoGenerator
	runStore    RunStore
	eventBus    *nats.Conn
	config      Config
}

// New creates a content pipeline
func New(
	aggregator *aggregate.Aggregator,
	transcriber Transcriber,
	generator ScriptGenerator,
	videoGen VideoGenerator,
	runStore RunStore,
	eventBus *nats.Conn,
	config Config,
) *Pipeline {
	return &Pipeline{
		aggregator:  aggregator,
		transcriber: transcriber,
		generator:   generator,
		videoGen:    videoGen,
		runStore:    runStore,
		eventBus:    eventBus,
		config:      config,
	}
}

// ProcessVideo generates original content from one trending source video.
// A rejected script is a normal outcome (status RunRejected, nil error)
// that routes back to regeneration; a transcription or render failure is
// returned as an error alongside the failed run record.
func (p *Pipeline) ProcessVideo(ctx context.Context, videoID string, contentType script.ContentType) (script.Run, error) {
	run := script.Run{
		ID:            uuid.New().String(),
		SourceVideoID: videoID,
		ContentType:   contentType,
		CreatedAt:     time.Now(),
	}

	raw, err := p.transcriber.Transcribe(ctx, videoID)
	if err != nil {
		run.Status = script.RunFailed
		run.Cause = fmt.Sprintf("transcription failed: %v", err)
		p.finish(ctx, &run)
		return run, fmt.Errorf("transcribing video %s: %w", videoID, err)
	}

	analysis := transcript.Analyze(transcript.Parse(raw))
	run.Script = p.generator.FromAnalysis(contentType, analysis)

	verdict := originality.Validate(run.Script, raw)
	run.Similarity = verdict.Similarity
	if !verdict.Original {
		run.Status = script.RunRejected
		run.Cause = verdict.Reason
		p.finish(ctx, &run)
		return run, nil
	}

	videoURL, err := p.videoGen.CreateVideo(ctx, p.renderRequest(run.Script, contentType))
	if err != nil {
		run.Status = script.RunFailed
		run.Cause = fmt.Sprintf("video generation failed: %v", err)
		p.finish(ctx, &run)
		return run, fmt.Errorf("rendering video for run %s: %w", run.ID, err)
	}

	run.Status = script.RunCompleted
	run.VideoURL = videoURL
	p.finish(ctx, &run)
	return run, nil
}

// GenerateFromTrends generates content around the current top trend,
// without a source video. When no source yields any trend data the run is
// reported as failed with a human-readable cause; that is a pipeline
// result, not a Go error.
func (p *Pipeline) GenerateFromTrends(ctx context.Context, contentType script.ContentType) (script.Run, error) {
	run := script.Run{
		ID:          uuid.New().String(),
		ContentType: contentType,
		CreatedAt:   time.Now(),
	}

	snapshot := p.aggregator.Snapshot(ctx)
	switch snapshot.Outcome {
	case trend.OutcomeFailed:
		run.Status = script.RunFailed
		run.Cause = "every trend source failed"
		p.finish(ctx, &run)
		return run, nil
	case trend.OutcomeEmpty:
		run.Status = script.RunFailed
		run.Cause = "no trends found"
		p.finish(ctx, &run)
		return run, nil
	}

	analysis := aggregate.Analyze(snapshot)
	run.Script = p.generator.FromTrends(contentType, analysis.TopTrend)

	videoURL, err := p.videoGen.CreateVideo(ctx, p.renderRequest(run.Script, contentType))
	if err != nil {
		run.Status = script.RunFailed
		run.Cause = fmt.Sprintf("video generation failed: %v", err)
		p.finish(ctx, &run)
		return run, fmt.Errorf("rendering video for run %s: %w", run.ID, err)
	}

	run.Status = script.RunCompleted
	run.VideoURL = videoURL
	p.finish(ctx, &run)
	return run, nil
}

func (p *Pipeline) renderRequest(s script.Script, contentType script.ContentType) RenderRequest {
	return RenderRequest{
		Script:   s,
		Platform: p.config.Platform,
		Duration: p.config.VideoDuration,
		Style:    string(contentType),
	}
}

// finish persists the run record and publishes its outcome. Storage and
// event-bus problems are logged, not fatal: the run result still flows
// back to the caller.
func (p *Pipeline) finish(ctx context.Context, run *script.Run) {
	if p.runStore != nil {
		if err := p.runStore.SaveRun(ctx, *run); err != nil {
			log.Printf("Error saving run %s: %v", run.ID, err)
		}
	}

	if p.eventBus == nil {
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"id":         run.ID,
		"status":     run.Status,
		"similarity": run.Similarity,
		"cause":      run.Cause,
	})
	if err != nil {
		log.Printf("Error marshaling run event: %v", err)
		return
	}

	topic := fmt.Sprintf("%s.run.%s", p.config.EventsTopic, run.Status)
	if err := p.eventBus.Publish(topic, data); err != nil {
		log.Printf("Error publishing run event: %v", err)
	}
}
