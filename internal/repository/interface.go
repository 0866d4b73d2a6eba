package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/TwentyOOO/audiodub-magic/internal/model"
)

// ProjectRepository defines data access for projects, speakers and
// transcript segments. Every pipeline stage and the orchestrator receive
// it explicitly so tests can substitute the in-memory implementation.
type ProjectRepository interface {
	// CreateProject inserts a new project record
	CreateProject(ctx context.Context, p *model.Project) error

	// GetProject retrieves a project by ID
	GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error)

	// UpdateStatus persists a status transition
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error

	// MarkProcessingStarted sets status and the processing start timestamp
	MarkProcessingStarted(ctx context.Context, id uuid.UUID, status model.Status) error

	// MarkCompleted sets the deliverable URL, completion timestamp and completed status
	MarkCompleted(ctx context.Context, id uuid.UUID, dubbedAudioURL string) error

	// CreateSpeakers inserts all speaker rows for a project in one atomic batch
	CreateSpeakers(ctx context.Context, speakers []model.Speaker) error

	// ListSpeakers retrieves a project's speakers ordered by speaker_number
	ListSpeakers(ctx context.Context, projectID uuid.UUID) ([]model.Speaker, error)

	// CreateSegments inserts all transcript segments in one atomic batch
	CreateSegments(ctx context.Context, segments []model.TranscriptSegment) error

	// ListSegments retrieves a project's segments ordered by start_time ascending
	ListSegments(ctx context.Context, projectID uuid.UUID) ([]model.TranscriptSegment, error)

	// UpdateSegmentTranslations fills translated_text for the given
	// segments. Segments already carrying a translation are left
	// untouched so a re-run never regresses filled fields.
	UpdateSegmentTranslations(ctx context.Context, translations map[uuid.UUID]string) error
}
