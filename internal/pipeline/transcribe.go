package pipeline

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/TwentyOOO/audiodub-magic/internal/model"
	"github.com/TwentyOOO/audiodub-magic/internal/stt"
)

// TranscriptionSummary reports what the transcription stage produced
type TranscriptionSummary struct {
	SpeakerCount int
	SegmentCount int
}

// runTranscription submits audio to the speech-to-text provider, waits
// for the job to finish, and persists speakers and transcript segments.
// Nothing is written until the job is terminal, so a timeout or
// provider error leaves no rows behind.
func (p *Pipeline) runTranscription(ctx context.Context, projectID uuid.UUID, audioURL, sourceLanguage string) (*TranscriptionSummary, error) {
	jobID, err := p.stt.Submit(ctx, audioURL, sourceLanguage)
	if err != nil {
		return nil, err
	}

	job, err := p.waitForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	log.Printf("[Transcribe] Transcription completed, processing results...")

	speakers, segments := buildTranscript(projectID, job)

	// Speakers go first so segments can reference their ids.
	if err := p.repo.CreateSpeakers(ctx, speakers); err != nil {
		return nil, fmt.Errorf("failed to persist speakers: %w", err)
	}
	if err := p.repo.CreateSegments(ctx, segments); err != nil {
		return nil, fmt.Errorf("failed to persist segments: %w", err)
	}

	log.Printf("[Transcribe] Created %d speakers and %d segments", len(speakers), len(segments))

	return &TranscriptionSummary{
		SpeakerCount: len(speakers),
		SegmentCount: len(segments),
	}, nil
}

// waitForJob polls the transcription job until it is terminal or the
// attempt ceiling is exhausted.
func (p *Pipeline) waitForJob(ctx context.Context, jobID string) (*stt.Job, error) {
	for attempt := 0; attempt < p.MaxPollAttempts; attempt++ {
		job, err := p.stt.Poll(ctx, jobID)
		if err != nil {
			return nil, err
		}

		switch job.Status {
		case stt.JobStatusCompleted:
			return job, nil
		case stt.JobStatusError:
			return nil, fmt.Errorf("transcription job failed: %s", job.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.PollInterval):
		}
	}

	return nil, ErrPollTimeout
}

// buildTranscript derives speaker rows and transcript segments from a
// completed job. Speaker numbers are assigned in ascending order of
// first appearance in the diarization output; each speaker's total
// duration is the rounded sum of its utterance durations in seconds.
// When the provider returned no per-speaker breakdown the entire
// transcript is attributed to a single implicit speaker.
func buildTranscript(projectID uuid.UUID, job *stt.Job) ([]model.Speaker, []model.TranscriptSegment) {
	if len(job.Utterances) == 0 {
		speaker := model.Speaker{
			ID:            uuid.New(),
			ProjectID:     projectID,
			SpeakerNumber: 1,
			TotalDuration: 0,
		}
		speakerID := speaker.ID
		segment := model.TranscriptSegment{
			ID:           uuid.New(),
			ProjectID:    projectID,
			SpeakerID:    &speakerID,
			OriginalText: job.Text,
			StartTime:    0,
			EndTime:      0,
		}
		return []model.Speaker{speaker}, []model.TranscriptSegment{segment}
	}

	var labels []string
	seen := make(map[string]bool)
	durationMs := make(map[string]int)

	for _, u := range job.Utterances {
		if !seen[u.Speaker] {
			seen[u.Speaker] = true
			labels = append(labels, u.Speaker)
		}
		durationMs[u.Speaker] += u.EndMs - u.StartMs
	}

	speakers := make([]model.Speaker, 0, len(labels))
	speakerIDs := make(map[string]uuid.UUID, len(labels))
	for i, label := range labels {
		id := uuid.New()
		speakerIDs[label] = id
		speakers = append(speakers, model.Speaker{
			ID:            id,
			ProjectID:     projectID,
			SpeakerNumber: i + 1,
			TotalDuration: int(math.Round(float64(durationMs[label]) / 1000.0)),
		})
	}

	segments := make([]model.TranscriptSegment, 0, len(job.Utterances))
	for _, u := range job.Utterances {
		speakerID := speakerIDs[u.Speaker]
		segments = append(segments, model.TranscriptSegment{
			ID:           uuid.New(),
			ProjectID:    projectID,
			SpeakerID:    &speakerID,
			OriginalText: u.Text,
			StartTime:    float64(u.StartMs) / 1000.0,
			EndTime:      float64(u.EndMs) / 1000.0,
		})
	}

	return speakers, segments
}
