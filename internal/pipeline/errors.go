package pipeline

import "errors"

var (
	// ErrAlreadyProcessing is returned when a second run is requested
	// for a project that already has an active pipeline run.
	ErrAlreadyProcessing = errors.New("project is already being processed")

	// ErrMissingParameters is returned when a run request lacks a required field.
	ErrMissingParameters = errors.New("missing required parameters")

	// ErrPollTimeout is returned when transcription polling exhausts its attempts.
	ErrPollTimeout = errors.New("transcription timeout")

	// ErrNoSegments is returned when a stage finds no transcript segments.
	ErrNoSegments = errors.New("no transcript segments found for this project")

	// ErrNothingToTranslate is returned when no segment carries original text.
	ErrNothingToTranslate = errors.New("no segments with original text to translate")

	// ErrNoAudioGenerated is returned when every synthesis call failed.
	ErrNoAudioGenerated = errors.New("no audio segments were generated")
)
