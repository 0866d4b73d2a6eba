package model

import (
	"time"

	"github.com/google/uuid"
)

// Project represents one dubbing job from source audio to deliverable
type Project struct {
	ID                    uuid.UUID  `json:"id"`
	Name                  string     `json:"name"`
	SourceLanguage        string     `json:"source_language"`
	TargetLanguage        string     `json:"target_language"`
	Status                Status     `json:"status"`
	AudioFileURL          string     `json:"audio_file_url"`
	DubbedAudioURL        *string    `json:"dubbed_audio_url,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	ProcessingStartedAt   *time.Time `json:"processing_started_at,omitempty"`
	ProcessingCompletedAt *time.Time `json:"processing_completed_at,omitempty"`
}

// Speaker is one distinct voice identified by diarization, scoped to a project
type Speaker struct {
	ID             uuid.UUID `json:"id"`
	ProjectID      uuid.UUID `json:"project_id"`
	SpeakerNumber  int       `json:"speaker_number"`
	TotalDuration  int       `json:"total_duration"` // seconds
	SampleAudioURL *string   `json:"sample_audio_url,omitempty"`
}

// TranscriptSegment is a single time-bounded utterance.
// TranslatedText stays nil until the translation stage fills it.
type TranscriptSegment struct {
	ID             uuid.UUID  `json:"id"`
	ProjectID      uuid.UUID  `json:"project_id"`
	SpeakerID      *uuid.UUID `json:"speaker_id,omitempty"`
	OriginalText   string     `json:"original_text"`
	TranslatedText *string    `json:"translated_text,omitempty"`
	StartTime      float64    `json:"start_time"` // seconds
	EndTime        float64    `json:"end_time"`   // seconds
}
