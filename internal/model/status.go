package model

// Status is a project lifecycle state
type Status string

const (
	StatusUploading    Status = "uploading"
	StatusTranscribing Status = "transcribing"
	StatusDiarization  Status = "diarization"
	StatusTranslating  Status = "translating"
	StatusSynthesizing Status = "synthesizing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

// Terminal reports whether no further transition leaves the status.
func Terminal(s Status) bool {
	return s == StatusCompleted || s == StatusFailed
}

// Active reports whether a status means a pipeline run currently owns the project.
func Active(s Status) bool {
	switch s {
	case StatusTranscribing, StatusDiarization, StatusTranslating, StatusSynthesizing:
		return true
	default:
		return false
	}
}

// ValidTransition enforces the allowed status edges. The diarization
// status is a UI sub-phase of transcribing; the pipeline never sets it
// itself, but a row carrying it must not wedge validation.
func ValidTransition(from, to Status) bool {
	if to == StatusFailed {
		return !Terminal(from)
	}

	switch from {
	case StatusUploading:
		return to == StatusTranscribing
	case StatusTranscribing:
		return to == StatusDiarization || to == StatusTranslating
	case StatusDiarization:
		return to == StatusTranslating
	case StatusTranslating:
		return to == StatusSynthesizing
	case StatusSynthesizing:
		return to == StatusCompleted
	default:
		return false
	}
}
