package model

import "testing"

// TestValidTransitionTable checks every edge of the status graph.
func TestValidTransitionTable(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusUploading, StatusTranscribing, true},
		{StatusTranscribing, StatusTranslating, true},
		{StatusTranscribing, StatusFailed, true},
		{StatusTranslating, StatusSynthesizing, true},
		{StatusTranslating, StatusFailed, true},
		{StatusSynthesizing, StatusCompleted, true},
		{StatusSynthesizing, StatusFailed, true},
		{StatusTranscribing, StatusDiarization, true},
		{StatusDiarization, StatusTranslating, true},
		{StatusDiarization, StatusFailed, true},

		{StatusUploading, StatusTranslating, false},
		{StatusTranscribing, StatusSynthesizing, false},
		{StatusTranscribing, StatusCompleted, false},
		{StatusTranslating, StatusCompleted, false},
		{StatusSynthesizing, StatusTranslating, false},
		{StatusCompleted, StatusFailed, false},
		{StatusCompleted, StatusTranscribing, false},
		{StatusFailed, StatusTranscribing, false},
		{StatusFailed, StatusFailed, false},
	}

	for _, tc := range cases {
		if got := ValidTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("ValidTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// TestTerminal verifies which statuses end the lifecycle.
func TestTerminal(t *testing.T) {
	if !Terminal(StatusCompleted) || !Terminal(StatusFailed) {
		t.Fatal("completed and failed must be terminal")
	}
	for _, s := range []Status{StatusUploading, StatusTranscribing, StatusDiarization, StatusTranslating, StatusSynthesizing} {
		if Terminal(s) {
			t.Errorf("Terminal(%s) = true, want false", s)
		}
	}
}

// TestActive verifies which statuses mean a run owns the project.
func TestActive(t *testing.T) {
	for _, s := range []Status{StatusTranscribing, StatusDiarization, StatusTranslating, StatusSynthesizing} {
		if !Active(s) {
			t.Errorf("Active(%s) = false, want true", s)
		}
	}
	for _, s := range []Status{StatusUploading, StatusCompleted, StatusFailed} {
		if Active(s) {
			t.Errorf("Active(%s) = true, want false", s)
		}
	}
}
