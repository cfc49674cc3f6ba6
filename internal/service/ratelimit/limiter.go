package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// Resource categories governed by the limiter. Each external-resource
// category gets its own counter and window.
const (
	CategoryAPI           = "api"
	CategoryTranscription = "transcription"
	CategoryWeb           = "web"
)

// ErrUnknownCategory is returned when Acquire is called with a category
// that was not configured. This is a caller programming error and is not
// retried.
var ErrUnknownCategory = errors.New("unknown rate limit category")

// Clock abstracts time so window expiry can be simulated in tests
// without wall-clock waits.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Config contains configuration for the rate limiter
type Config struct {
	Window   time.Duration
	MaxCalls map[string]int
}

// DefaultConfig returns the default per-minute ceilings
func DefaultConfig() Config {
	return Config{
		Window: time.Minute,
		MaxCalls: map[string]int{
			CategoryAPI:           100,
			CategoryTranscription: 50,
			CategoryWeb:           30,
		},
	}
}

type categoryState struct {
	calls       int
	windowStart time.Time
}

// Limiter tracks call counts per resource category within a fixed window.
// One Limiter is constructed per aggregator lifetime and shared by every
// source that uses the same category.
type Limiter struct {
	config Config
	clock  Clock

	mu         sync.Mutex
	categories map[string]*categoryState
}

// New creates a limiter backed by the system clock
func New(config Config) *Limiter {
	return NewWithClock(config, systemClock{})
}

// NewWithClock creates a limiter with an injectable clock
func NewWithClock(config Config, clock Clock) *Limiter {
	categories := make(map[string]*categoryState, len(config.MaxCalls))
	for name := range config.MaxCalls {
		categories[name] = &categoryState{windowStart: clock.Now()}
	}

	return &Limiter{
		config:     config,
		clock:      clock,
		categories: categories,
	}
}

// Acquire blocks until a call slot is available for the category, then
// reserves it. The check and the increment happen under one lock so
// concurrent callers cannot push the counter past the ceiling. Returns
// the context error if ctx is cancelled while waiting.
func (l *Limiter) Acquire(ctx context.Context, category string) error {
	l.mu.Lock()
	state, ok := l.categories[category]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	max := l.config.MaxCalls[category]

	for {
		now := l.clock.Now()

		// Reset the counter once the window has elapsed
		if now.Sub(state.windowStart) >= l.config.Window {
			state.calls = 0
			state.windowStart = now
		}

		if state.calls < max {
			state.calls++
			l.mu.Unlock()
			return nil
		}

		wait := l.config.Window - now.Sub(state.windowStart)
		l.mu.Unlock()

		log.Printf("Rate limit reached for %s, waiting %s", category, wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.clock.After(wait):
		}

		l.mu.Lock()
	}
}
