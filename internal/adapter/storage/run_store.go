package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"trendforge/internal/domain/script"
)

// ErrNotFound is returned when a run does not exist
var ErrNotFound = errors.New("run not found")

// RunStore implements storage for pipeline runs
type RunStore struct {
	db *pgxpool.Pool
}

// NewRunStore creates a new run store
func NewRunStore(db *pgxpool.Pool) *RunStore {
	return &RunStore{
		db: db,
	}
}

// SaveRun saves a pipeline run to storage
func (s *RunStore) SaveRun(ctx context.Context, run script.Run) error {
	query := `
		INSERT INTO runs (
			id, source_video_id, content_type, script,
			similarity, status, cause, video_url, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (id) DO UPDATE
		SET
			script = $4,
			similarity = $5,
			status = $6,
			cause = $7,
			video_url = $8
	`

	scriptJSON, err := json.Marshal(run.Script)
	if err != nil {
		return fmt.Errorf("error marshaling script: %w", err)
	}

	_, err = s.db.Exec(
		ctx,
		query,
		run.ID,
		run.SourceVideoID,
		run.ContentType,
		scriptJSON,
		run.Similarity,
		run.Status,
		run.Cause,
		run.VideoURL,
		run.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetRun retrieves a run by ID
func (s *RunStore) GetRun(ctx context.Context, id string) (*script.Run, error) {
	query := `
		SELECT
			id, source_video_id, content_type, script,
			similarity, status, cause, video_url, created_at
		FROM runs
		WHERE id = $1
	`

	var run script.Run
	var scriptJSON []byte

	err := s.db.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.SourceVideoID,
		&run.ContentType,
		&scriptJSON,
		&run.Similarity,
		&run.Status,
		&run.Cause,
		&run.VideoURL,
		&run.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying run: %w", err)
	}

	if err := json.Unmarshal(scriptJSON, &run.Script); err != nil {
		return nil, fmt.Errorf("error unmarshaling script: %w", err)
	}

	return &run, nil
}

// ListRuns returns the most recent runs, optionally filtered by status
func (s *RunStore) ListRuns(ctx context.Context, status script.RunStatus, limit int) ([]script.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			id, source_video_id, content_type, script,
			similarity, status, cause, video_url, created_at
		FROM runs
	`

	args := []interface{}{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var runs []script.Run
	for rows.Next() {
		var run script.Run
		var scriptJSON []byte

		err := rows.Scan(
			&run.ID,
			&run.SourceVideoID,
			&run.ContentType,
			&scriptJSON,
			&run.Similarity,
			&run.Status,
			&run.Cause,
			&run.VideoURL,
			&run.CreatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("error scanning run: %w", err)
		}

		if err := json.Unmarshal(scriptJSON, &run.Script); err != nil {
			return nil, fmt.Errorf("error unmarshaling script: %w", err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}
