package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/TwentyOOO/audiodub-magic/internal/model"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository opens a PostgreSQL-backed repository
func NewPostgresRepository(databaseURL string) (ProjectRepository, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &postgresRepository{db: db}, nil
}

// Create creates a new project record
func (r *postgresRepository) CreateProject(ctx context.Context, p *model.Project) error {
	query := `
		INSERT INTO projects (
			id, name, source_language, target_language, status,
			audio_file_url, dubbed_audio_url, created_at,
			processing_started_at, processing_completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.SourceLanguage,
		p.TargetLanguage,
		p.Status,
		p.AudioFileURL,
		p.DubbedAudioURL,
		p.CreatedAt,
		p.ProcessingStartedAt,
		p.ProcessingCompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetProject retrieves a project by ID
func (r *postgresRepository) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	query := `
		SELECT
			id, name, source_language, target_language, status,
			audio_file_url, dubbed_audio_url, created_at,
			processing_started_at, processing_completed_at
		FROM projects
		WHERE id = $1
	`

	var p model.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.SourceLanguage,
		&p.TargetLanguage,
		&p.Status,
		&p.AudioFileURL,
		&p.DubbedAudioURL,
		&p.CreatedAt,
		&p.ProcessingStartedAt,
		&p.ProcessingCompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &p, nil
}

// UpdateStatus persists a status transition
func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	query := `UPDATE projects SET status = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project not found")
	}

	return nil
}

// MarkProcessingStarted sets status and the processing start timestamp
func (r *postgresRepository) MarkProcessingStarted(ctx context.Context, id uuid.UUID, status model.Status) error {
	query := `UPDATE projects SET status = $1, processing_started_at = $2 WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark processing started: %w", err)
	}

	return nil
}

// MarkCompleted sets the deliverable URL, completion timestamp and completed status
func (r *postgresRepository) MarkCompleted(ctx context.Context, id uuid.UUID, dubbedAudioURL string) error {
	query := `
		UPDATE projects
		SET status = $1, dubbed_audio_url = $2, processing_completed_at = $3
		WHERE id = $4
	`

	_, err := r.db.ExecContext(ctx, query, model.StatusCompleted, dubbedAudioURL, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark project completed: %w", err)
	}

	return nil
}

// CreateSpeakers inserts all speaker rows for a project in one transaction
func (r *postgresRepository) CreateSpeakers(ctx context.Context, speakers []model.Speaker) error {
	if len(speakers) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO speakers (id, project_id, speaker_number, total_duration, sample_audio_url)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, s := range speakers {
		if _, err := tx.ExecContext(ctx, query, s.ID, s.ProjectID, s.SpeakerNumber, s.TotalDuration, s.SampleAudioURL); err != nil {
			return fmt.Errorf("failed to insert speaker %d: %w", s.SpeakerNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit speakers: %w", err)
	}

	return nil
}

// ListSpeakers retrieves a project's speakers ordered by speaker_number
func (r *postgresRepository) ListSpeakers(ctx context.Context, projectID uuid.UUID) ([]model.Speaker, error) {
	query := `
		SELECT id, project_id, speaker_number, total_duration, sample_audio_url
		FROM speakers
		WHERE project_id = $1
		ORDER BY speaker_number ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query speakers: %w", err)
	}
	defer rows.Close()

	var speakers []model.Speaker
	for rows.Next() {
		var s model.Speaker
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.SpeakerNumber, &s.TotalDuration, &s.SampleAudioURL); err != nil {
			return nil, fmt.Errorf("failed to scan speaker: %w", err)
		}
		speakers = append(speakers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating speakers: %w", err)
	}

	return speakers, nil
}

// CreateSegments inserts all transcript segments in one transaction
func (r *postgresRepository) CreateSegments(ctx context.Context, segments []model.TranscriptSegment) error {
	if len(segments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO transcript_segments (id, project_id, speaker_id, original_text, translated_text, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, seg := range segments {
		if _, err := tx.ExecContext(ctx, query, seg.ID, seg.ProjectID, seg.SpeakerID, seg.OriginalText, seg.TranslatedText, seg.StartTime, seg.EndTime); err != nil {
			return fmt.Errorf("failed to insert segment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit segments: %w", err)
	}

	return nil
}

// ListSegments retrieves a project's segments ordered by start_time ascending
func (r *postgresRepository) ListSegments(ctx context.Context, projectID uuid.UUID) ([]model.TranscriptSegment, error) {
	query := `
		SELECT id, project_id, speaker_id, original_text, translated_text, start_time, end_time
		FROM transcript_segments
		WHERE project_id = $1
		ORDER BY start_time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var segments []model.TranscriptSegment
	for rows.Next() {
		var seg model.TranscriptSegment
		if err := rows.Scan(&seg.ID, &seg.ProjectID, &seg.SpeakerID, &seg.OriginalText, &seg.TranslatedText, &seg.StartTime, &seg.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segments: %w", err)
	}

	return segments, nil
}

// UpdateSegmentTranslations fills translated_text where it is still null
func (r *postgresRepository) UpdateSegmentTranslations(ctx context.Context, translations map[uuid.UUID]string) error {
	if len(translations) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE transcript_segments
		SET translated_text = $1
		WHERE id = $2 AND translated_text IS NULL
	`
	for id, text := range translations {
		if _, err := tx.ExecContext(ctx, query, text, id); err != nil {
			return fmt.Errorf("failed to update translation for segment %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit translations: %w", err)
	}

	return nil
}
