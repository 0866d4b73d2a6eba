package stt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestSubmitSendsSpeakerLabels verifies the submit payload and auth header.
func TestSubmitSendsSpeakerLabels(t *testing.T) {
	var gotBody submitRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transcript" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(Job{ID: "abc123", Status: JobStatusQueued})
	}))
	defer srv.Close()

	client := NewAssemblyAIClient("test-key", srv.URL)
	jobID, err := client.Submit(context.Background(), "https://example.com/a.mp3", "en")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if jobID != "abc123" {
		t.Errorf("job id = %s, want abc123", jobID)
	}
	if gotAuth != "test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if !gotBody.SpeakerLabels {
		t.Error("speaker_labels not requested")
	}
	if gotBody.AudioURL != "https://example.com/a.mp3" || gotBody.LanguageCode != "en" {
		t.Errorf("unexpected body: %+v", gotBody)
	}
}

// TestSubmitRejected verifies a non-200 submission is an error.
func TestSubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad audio url"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewAssemblyAIClient("test-key", srv.URL)
	if _, err := client.Submit(context.Background(), "https://example.com/a.mp3", "en"); err == nil {
		t.Fatal("expected error for rejected submission")
	}
}

// TestPollParsesUtterances verifies poll decoding of a completed job.
func TestPollParsesUtterances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcript/abc123" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Job{
			ID:     "abc123",
			Status: JobStatusCompleted,
			Utterances: []Utterance{
				{Speaker: "A", Text: "hi", StartMs: 100, EndMs: 900},
			},
		})
	}))
	defer srv.Close()

	client := NewAssemblyAIClient("test-key", srv.URL)
	job, err := client.Poll(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if job.Status != JobStatusCompleted {
		t.Errorf("status = %s, want completed", job.Status)
	}
	if len(job.Utterances) != 1 || job.Utterances[0].Speaker != "A" {
		t.Errorf("unexpected utterances: %+v", job.Utterances)
	}
}
