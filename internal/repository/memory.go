package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TwentyOOO/audiodub-magic/internal/model"
)

// memoryRepository is a map-backed ProjectRepository. It serves tests
// and the no-DATABASE_URL startup mode.
type memoryRepository struct {
	mu       sync.Mutex
	projects map[uuid.UUID]*model.Project
	speakers map[uuid.UUID][]model.Speaker
	segments map[uuid.UUID][]model.TranscriptSegment
	byID     map[uuid.UUID]uuid.UUID // segment id -> project id
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() ProjectRepository {
	return &memoryRepository{
		projects: make(map[uuid.UUID]*model.Project),
		speakers: make(map[uuid.UUID][]model.Speaker),
		segments: make(map[uuid.UUID][]model.TranscriptSegment),
		byID:     make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *memoryRepository) CreateProject(ctx context.Context, p *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[p.ID]; ok {
		return fmt.Errorf("project already exists: %s", p.ID)
	}
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *memoryRepository) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project not found: %s", id)
	}
	cp := *p
	return &cp, nil
}

func (r *memoryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return fmt.Errorf("project not found: %s", id)
	}
	p.Status = status
	return nil
}

func (r *memoryRepository) MarkProcessingStarted(ctx context.Context, id uuid.UUID, status model.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return fmt.Errorf("project not found: %s", id)
	}
	now := time.Now().UTC()
	p.Status = status
	p.ProcessingStartedAt = &now
	return nil
}

func (r *memoryRepository) MarkCompleted(ctx context.Context, id uuid.UUID, dubbedAudioURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return fmt.Errorf("project not found: %s", id)
	}
	now := time.Now().UTC()
	p.Status = model.StatusCompleted
	p.DubbedAudioURL = &dubbedAudioURL
	p.ProcessingCompletedAt = &now
	return nil
}

func (r *memoryRepository) CreateSpeakers(ctx context.Context, speakers []model.Speaker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range speakers {
		r.speakers[s.ProjectID] = append(r.speakers[s.ProjectID], s)
	}
	return nil
}

func (r *memoryRepository) ListSpeakers(ctx context.Context, projectID uuid.UUID) ([]model.Speaker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := append([]model.Speaker(nil), r.speakers[projectID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].SpeakerNumber < out[j].SpeakerNumber })
	return out, nil
}

func (r *memoryRepository) CreateSegments(ctx context.Context, segments []model.TranscriptSegment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, seg := range segments {
		r.segments[seg.ProjectID] = append(r.segments[seg.ProjectID], seg)
		r.byID[seg.ID] = seg.ProjectID
	}
	return nil
}

func (r *memoryRepository) ListSegments(ctx context.Context, projectID uuid.UUID) ([]model.TranscriptSegment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := append([]model.TranscriptSegment(nil), r.segments[projectID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r *memoryRepository) UpdateSegmentTranslations(ctx context.Context, translations map[uuid.UUID]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, text := range translations {
		projectID, ok := r.byID[id]
		if !ok {
			continue
		}
		segs := r.segments[projectID]
		for i := range segs {
			if segs[i].ID == id && segs[i].TranslatedText == nil {
				t := text
				segs[i].TranslatedText = &t
			}
		}
	}
	return nil
}
