package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"trendforge/internal/domain/script"
	"trendforge/internal/domain/trend"
	"trendforge/internal/service/aggregate"
	"trendforge/internal/service/scriptgen"
	"trendforge/internal/service/transcript"
)

type fakeTranscriber struct {
	transcript string
	err        error
}

func (f fakeTranscriber) Transcribe(ctx context.Context, videoID string) (string, error) {
	return f.transcript, f.err
}

type fakeVideoGen struct {
	url string
	err error

	mu       sync.Mutex
	requests []RenderRequest
}

func (f *fakeVideoGen) CreateVideo(ctx context.Context, req RenderRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type memoryRunStore struct {
	mu   sync.Mutex
	runs []script.Run
}

func (s *memoryRunStore) SaveRun(ctx context.Context, run script.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

// echoGenerator reproduces the source text verbatim, guaranteeing the
// originality gate rejects the result.
type echoGenerator struct {
	text string
}

func (g echoGenerator) FromTrends(ct script.ContentType, topTrend string) script.Script {
	return script.Script{Scenes: []script.Scene{{Role: script.RoleMainContent, Voiceover: g.text}}}
}

func (g echoGenerator) FromAnalysis(ct script.ContentType, analysis transcript.Analysis) script.Script {
	return script.Script{Scenes: []script.Scene{{Role: script.RoleMainContent, Voiceover: g.text}}}
}

func testConfig() Config {
	return Config{
		Platform:      "tiktok",
		VideoDuration: 60,
		MaxDuration:   600,
		EventsTopic:   "pipeline",
	}
}

func TestProcessVideoHappyPath(t *testing.T) {
	videoGen := &fakeVideoGen{url: "https://videos.example/render-1"}
	store := &memoryRunStore{}

	p := New(
		nil,
		fakeTranscriber{transcript: "[00:00-00:05] mixing paint pigments\n[00:05-00:30] layer the base coat\n[00:30-00:60] subscribe now"},
		scriptgen.New(),
		videoGen,
		store,
		nil,
		testConfig(),
	)

	run, err := p.ProcessVideo(context.Background(), "vid-1", script.ContentTutorial)
	if err != nil {
		t.Fatalf("ProcessVideo returned error: %v", err)
	}

	if run.Status != script.RunCompleted {
		t.Fatalf("expected completed run, got %v (%s)", run.Status, run.Cause)
	}
	if run.VideoURL != "https://videos.example/render-1" {
		t.Errorf("unexpected video URL %q", run.VideoURL)
	}
	if run.ID == "" {
		t.Error("expected run to have an ID")
	}
	if run.Similarity >= 0.5 {
		t.Errorf("expected generated script to pass the gate, similarity %v", run.Similarity)
	}
	if len(store.runs) != 1 || store.runs[0].Status != script.RunCompleted {
		t.Errorf("expected completed run persisted, got %+v", store.runs)
	}
	if len(videoGen.requests) != 1 || videoGen.requests[0].Platform != "tiktok" {
		t.Errorf("unexpected render requests: %+v", videoGen.requests)
	}
}

func TestProcessVideoTranscriptionFailureIsHardStop(t *testing.T) {
	transcriptionErr := errors.New("provider returned 500")
	videoGen := &fakeVideoGen{url: "https://videos.example/never"}
	store := &memoryRunStore{}

	p := New(nil, fakeTranscriber{err: transcriptionErr}, scriptgen.New(), videoGen, store, nil, testConfig())

	run, err := p.ProcessVideo(context.Background(), "vid-2", script.ContentTutorial)

	if !errors.Is(err, transcriptionErr) {
		t.Fatalf("expected wrapped transcription error, got %v", err)
	}
	if run.Status != script.RunFailed {
		t.Errorf("expected failed run, got %v", run.Status)
	}
	if !strings.Contains(run.Cause, "transcription failed") {
		t.Errorf("expected human-readable cause, got %q", run.Cause)
	}
	if len(videoGen.requests) != 0 {
		t.Error("no video must be rendered without a transcript")
	}
}

func TestProcessVideoRejectsUnoriginalScript(t *testing.T) {
	raw := "[00:00-00:05] hello world\n[00:05-00:10] goodbye"
	store := &memoryRunStore{}

	p := New(
		nil,
		fakeTranscriber{transcript: raw},
		echoGenerator{text: "hello world goodbye"},
		&fakeVideoGen{url: "https://videos.example/never"},
		store,
		nil,
		testConfig(),
	)

	run, err := p.ProcessVideo(context.Background(), "vid-3", script.ContentTutorial)
	if err != nil {
		t.Fatalf("a rejection must not be an error, got %v", err)
	}

	if run.Status != script.RunRejected {
		t.Fatalf("expected rejected run, got %v", run.Status)
	}
	if run.Similarity != 1.0 {
		t.Errorf("expected similarity 1.0 for an echoed script, got %v", run.Similarity)
	}
	if run.Cause == "" {
		t.Error("expected a reason on the rejected run")
	}
	if len(store.runs) != 1 || store.runs[0].Status != script.RunRejected {
		t.Errorf("expected rejected run persisted, got %+v", store.runs)
	}
}

func TestProcessVideoRenderFailure(t *testing.T) {
	renderErr := errors.New("render farm unavailable")

	p := New(
		nil,
		fakeTranscriber{transcript: "[00:00-00:05] mixing paint pigments"},
		scriptgen.New(),
		&fakeVideoGen{err: renderErr},
		&memoryRunStore{},
		nil,
		testConfig(),
	)

	run, err := p.ProcessVideo(context.Background(), "vid-4", script.ContentTutorial)

	if !errors.Is(err, renderErr) {
		t.Fatalf("expected wrapped render error, got %v", err)
	}
	if run.Status != script.RunFailed {
		t.Errorf("expected failed run, got %v", run.Status)
	}
}

type failingHashtagSource struct{}

func (failingHashtagSource) Name() string { return "down" }
func (failingHashtagSource) TrendingHashtags(ctx context.Context) ([]trend.Hashtag, error) {
	return nil, errors.New("unreachable")
}

type failingSoundSource struct{}

func (failingSoundSource) Name() string { return "down" }
func (failingSoundSource) TrendingSounds(ctx context.Context) ([]trend.Sound, error) {
	return nil, errors.New("unreachable")
}

type failingVideoSource struct{}

func (failingVideoSource) Name() string { return "down" }
func (failingVideoSource) TrendingVideos(ctx context.Context, limit int) ([]trend.TrendingVideo, error) {
	return nil, errors.New("unreachable")
}

func TestGenerateFromTrendsTotalSourceFailure(t *testing.T) {
	aggregator := aggregate.New(
		[]trend.HashtagSource{failingHashtagSource{}},
		[]trend.SoundSource{failingSoundSource{}},
		[]trend.VideoSource{failingVideoSource{}},
		nil,
		aggregate.Config{MaxResults: 5, SourceTimeout: time.Second},
	)
	videoGen := &fakeVideoGen{url: "https://videos.example/never"}

	p := New(aggregator, nil, scriptgen.New(), videoGen, &memoryRunStore{}, nil, testConfig())

	run, err := p.GenerateFromTrends(context.Background(), script.ContentTutorial)
	if err != nil {
		t.Fatalf("total source failure is a run outcome, not an error: %v", err)
	}

	if run.Status != script.RunFailed {
		t.Fatalf("expected failed run, got %v", run.Status)
	}
	if run.Cause != "every trend source failed" {
		t.Errorf("unexpected cause %q", run.Cause)
	}
	if len(videoGen.requests) != 0 {
		t.Error("no video must be rendered without trend data")
	}
}

type cannedHashtagSource struct{ tags []trend.Hashtag }

func (cannedHashtagSource) Name() string { return "canned" }
func (s cannedHashtagSource) TrendingHashtags(ctx context.Context) ([]trend.Hashtag, error) {
	return s.tags, nil
}

func TestGenerateFromTrendsHappyPath(t *testing.T) {
	aggregator := aggregate.New(
		[]trend.HashtagSource{cannedHashtagSource{tags: []trend.Hashtag{{Name: "lifehack", ViewCount: 1000}}}},
		nil, nil, nil,
		aggregate.Config{MaxResults: 5, SourceTimeout: time.Second},
	)
	videoGen := &fakeVideoGen{url: "https://videos.example/render-2"}

	p := New(aggregator, nil, scriptgen.New(), videoGen, &memoryRunStore{}, nil, testConfig())

	run, err := p.GenerateFromTrends(context.Background(), script.ContentTutorial)
	if err != nil {
		t.Fatalf("GenerateFromTrends returned error: %v", err)
	}

	if run.Status != script.RunCompleted {
		t.Fatalf("expected completed run, got %v (%s)", run.Status, run.Cause)
	}
	if !strings.Contains(run.Script.Scenes[0].Voiceover, "lifehack") {
		t.Errorf("expected top trend in hook, got %q", run.Script.Scenes[0].Voiceover)
	}
}
