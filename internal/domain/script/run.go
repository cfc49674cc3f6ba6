package script

import (
	"time"
)

// RunStatus describes how a pipeline run ended
type RunStatus string

const (
	// RunCompleted means the script passed the originality gate and a
	// video was produced.
	RunCompleted RunStatus = "completed"

	// RunRejected means the generated script was too similar to the
	// source transcript. A rejection is a reportable outcome that routes
	// back to regeneration, not a system error.
	RunRejected RunStatus = "rejected"

	// RunFailed means the pipeline could not complete, e.g. the source
	// video could not be transcribed or no trend data was available.
	RunFailed RunStatus = "failed"
)

// Run records the outcome of one content pipeline execution
type Run struct {
	ID            string
	SourceVideoID string
	ContentType   ContentType
	Script        Script
	Similarity    float64
	Status        RunStatus
	Cause         string
	VideoURL      string
	CreatedAt     time.Time
}
