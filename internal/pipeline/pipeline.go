package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TwentyOOO/audiodub-magic/internal/model"
	"github.com/TwentyOOO/audiodub-magic/internal/notify"
	"github.com/TwentyOOO/audiodub-magic/internal/repository"
	"github.com/TwentyOOO/audiodub-magic/internal/storage"
	"github.com/TwentyOOO/audiodub-magic/internal/stt"
	"github.com/TwentyOOO/audiodub-magic/internal/translate"
	"github.com/TwentyOOO/audiodub-magic/internal/tts"
)

// Request identifies one pipeline run
type Request struct {
	ProjectID      uuid.UUID
	AudioFileURL   string
	SourceLanguage string
	TargetLanguage string
}

// Pipeline sequences the transcription, translation and synthesis
// stages for a project and persists every status transition before
// notifying observers.
type Pipeline struct {
	repo       repository.ProjectRepository
	stt        stt.Client
	translator translate.Translator
	tts        tts.Synthesizer
	store      storage.BlobStore
	notifier   *notify.Notifier

	// PollInterval and MaxPollAttempts bound the transcription wait loop.
	PollInterval    time.Duration
	MaxPollAttempts int
	// Workers bounds per-segment parallelism in translation and synthesis.
	Workers int

	mu     sync.Mutex
	active map[uuid.UUID]struct{}
}

// New creates a pipeline with default polling and worker settings
func New(
	repo repository.ProjectRepository,
	sttClient stt.Client,
	translator translate.Translator,
	synthesizer tts.Synthesizer,
	store storage.BlobStore,
	notifier *notify.Notifier,
) *Pipeline {
	return &Pipeline{
		repo:            repo,
		stt:             sttClient,
		translator:      translator,
		tts:             synthesizer,
		store:           store,
		notifier:        notifier,
		PollInterval:    5 * time.Second,
		MaxPollAttempts: 60,
		Workers:         4,
		active:          make(map[uuid.UUID]struct{}),
	}
}

// Run executes the full pipeline for one project and returns the
// deliverable URL. At most one run per project may be active; a second
// invocation is rejected with ErrAlreadyProcessing before any state is
// mutated.
func (p *Pipeline) Run(ctx context.Context, req Request) (string, error) {
	if req.ProjectID == uuid.Nil || req.AudioFileURL == "" || req.SourceLanguage == "" || req.TargetLanguage == "" {
		return "", ErrMissingParameters
	}

	if err := p.acquire(ctx, req.ProjectID); err != nil {
		return "", err
	}
	defer p.release(req.ProjectID)

	log.Printf("[Pipeline] Starting processing for project: %s", req.ProjectID)

	if err := p.setStatus(ctx, req.ProjectID, model.StatusTranscribing); err != nil {
		return "", err
	}

	log.Printf("[Pipeline] Step 1: Transcribing...")
	summary, err := p.runTranscription(ctx, req.ProjectID, req.AudioFileURL, req.SourceLanguage)
	if err != nil {
		return "", p.fail(ctx, req.ProjectID, fmt.Errorf("transcription failed: %w", err))
	}
	log.Printf("[Pipeline] Transcription completed: %d speakers, %d segments", summary.SpeakerCount, summary.SegmentCount)

	if err := p.setStatus(ctx, req.ProjectID, model.StatusTranslating); err != nil {
		return "", err
	}

	log.Printf("[Pipeline] Step 2: Translating...")
	translated, err := p.runTranslation(ctx, req.ProjectID, req.TargetLanguage)
	if err != nil {
		return "", p.fail(ctx, req.ProjectID, fmt.Errorf("translation failed: %w", err))
	}
	log.Printf("[Pipeline] Translation completed: %d/%d segments", translated.TranslatedCount, translated.TotalCount)

	if err := p.setStatus(ctx, req.ProjectID, model.StatusSynthesizing); err != nil {
		return "", err
	}

	log.Printf("[Pipeline] Step 3: Synthesizing...")
	dubbedURL, err := p.runSynthesis(ctx, req.ProjectID)
	if err != nil {
		return "", p.fail(ctx, req.ProjectID, fmt.Errorf("synthesis failed: %w", err))
	}

	if err := p.repo.MarkCompleted(ctx, req.ProjectID, dubbedURL); err != nil {
		return "", fmt.Errorf("failed to persist completion: %w", err)
	}
	p.notifier.Publish(req.ProjectID, model.StatusCompleted)

	log.Printf("[Pipeline] Processing completed for project: %s", req.ProjectID)
	return dubbedURL, nil
}

// acquire marks a project as actively running. It rejects a project
// that is already running in this process or whose persisted status
// shows a run in flight elsewhere.
func (p *Pipeline) acquire(ctx context.Context, projectID uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, running := p.active[projectID]; running {
		return ErrAlreadyProcessing
	}

	project, err := p.repo.GetProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	if model.Active(project.Status) {
		return ErrAlreadyProcessing
	}

	p.active[projectID] = struct{}{}
	return nil
}

func (p *Pipeline) release(projectID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.active, projectID)
}

// setStatus validates the transition, persists it, then publishes the
// event. Observers never see a transition that is not yet durable.
func (p *Pipeline) setStatus(ctx context.Context, projectID uuid.UUID, to model.Status) error {
	project, err := p.repo.GetProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	if !model.ValidTransition(project.Status, to) {
		return fmt.Errorf("invalid status transition: %s -> %s", project.Status, to)
	}

	if to == model.StatusTranscribing {
		err = p.repo.MarkProcessingStarted(ctx, projectID, to)
	} else {
		err = p.repo.UpdateStatus(ctx, projectID, to)
	}
	if err != nil {
		return fmt.Errorf("failed to update status to %s: %w", to, err)
	}

	p.notifier.Publish(projectID, to)
	return nil
}

// fail persists the failed status, publishes it, and returns the stage error
func (p *Pipeline) fail(ctx context.Context, projectID uuid.UUID, stageErr error) error {
	log.Printf("[Pipeline] Error: %v", stageErr)

	if err := p.repo.UpdateStatus(ctx, projectID, model.StatusFailed); err != nil {
		log.Printf("[Pipeline] Failed to persist failed status: %v", err)
		return stageErr
	}
	p.notifier.Publish(projectID, model.StatusFailed)

	return stageErr
}
