package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TwentyOOO/audiodub-magic/internal/model"
	"github.com/TwentyOOO/audiodub-magic/internal/notify"
	"github.com/TwentyOOO/audiodub-magic/internal/pipeline"
	"github.com/TwentyOOO/audiodub-magic/internal/repository"
	"github.com/TwentyOOO/audiodub-magic/internal/storage"
	"github.com/TwentyOOO/audiodub-magic/internal/stt"
)

type stubSTT struct{ job *stt.Job }

func (s *stubSTT) Submit(ctx context.Context, audioURL, languageCode string) (string, error) {
	return "job-1", nil
}

func (s *stubSTT) Poll(ctx context.Context, jobID string) (*stt.Job, error) {
	return s.job, nil
}

type stubTranslator struct{}

func (stubTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	return "t:" + text, nil
}

type stubSynthesizer struct{}

func (stubSynthesizer) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	return []byte(text), nil
}

func newTestRouter(t *testing.T) (*gin.Engine, repository.ProjectRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepository()
	notifier := notify.NewNotifier()
	sttClient := &stubSTT{job: &stt.Job{
		ID:     "job-1",
		Status: stt.JobStatusCompleted,
		Utterances: []stt.Utterance{
			{Speaker: "A", Text: "hello", StartMs: 0, EndMs: 1000},
		},
	}}
	p := pipeline.New(repo, sttClient, stubTranslator{}, stubSynthesizer{}, storage.NewMemoryStore(), notifier)
	p.PollInterval = time.Millisecond

	r := gin.New()
	NewHandler(repo, p, notifier).RegisterRoutes(r)
	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestCreateAndGetProject covers the project lifecycle endpoints.
func TestCreateAndGetProject(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/projects", gin.H{
		"name":            "episode 1",
		"source_language": "en",
		"target_language": "ar",
		"audio_file_url":  "https://example.com/a.mp3",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	var created struct {
		Data struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Data.Status != string(model.StatusUploading) {
		t.Errorf("initial status = %s, want uploading", created.Data.Status)
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects/"+created.Data.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
}

// TestCreateProjectValidation covers a missing required field.
func TestCreateProjectValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/projects", gin.H{"name": "no languages"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// TestProcessProject runs the whole pipeline through the HTTP surface.
func TestProcessProject(t *testing.T) {
	r, repo := newTestRouter(t)

	project := &model.Project{
		ID:             uuid.New(),
		Name:           "episode 1",
		SourceLanguage: "en",
		TargetLanguage: "ar",
		Status:         model.StatusUploading,
		AudioFileURL:   "https://example.com/a.mp3",
		CreatedAt:      time.Now().UTC(),
	}
	if err := repo.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/projects/"+project.ID.String()+"/process", gin.H{
		"audio_file_url":  project.AudioFileURL,
		"source_language": "en",
		"target_language": "ar",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("process status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			DubbedAudioURL string `json:"dubbed_audio_url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.DubbedAudioURL == "" {
		t.Error("missing dubbed_audio_url")
	}

	got, _ := repo.GetProject(context.Background(), project.ID)
	if got.Status != model.StatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
}

// TestProcessProjectConflict verifies a run against an active project is a 409.
func TestProcessProjectConflict(t *testing.T) {
	r, repo := newTestRouter(t)

	project := &model.Project{
		ID:             uuid.New(),
		Name:           "busy",
		SourceLanguage: "en",
		TargetLanguage: "ar",
		Status:         model.StatusSynthesizing,
		AudioFileURL:   "https://example.com/a.mp3",
		CreatedAt:      time.Now().UTC(),
	}
	if err := repo.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/projects/"+project.ID.String()+"/process", gin.H{
		"audio_file_url":  project.AudioFileURL,
		"source_language": "en",
		"target_language": "ar",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}
