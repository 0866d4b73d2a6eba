package stt

import "context"

// Job statuses reported by the speech-to-text provider
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusError      = "error"
)

// Utterance is one diarized span of speech
type Utterance struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	StartMs int    `json:"start"`
	EndMs   int    `json:"end"`
}

// Job is the state of an asynchronous transcription job
type Job struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	Utterances []Utterance `json:"utterances,omitempty"`
	Text       string      `json:"text,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Client defines the interface for asynchronous speech-to-text providers
type Client interface {
	// Submit submits audio for transcription with speaker labels and
	// returns a job ID to poll
	Submit(ctx context.Context, audioURL, languageCode string) (string, error)

	// Poll retrieves the current state of a transcription job
	Poll(ctx context.Context, jobID string) (*Job, error)
}
