package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/TwentyOOO/audiodub-magic/internal/model"
	"github.com/TwentyOOO/audiodub-magic/internal/notify"
)

// TestProgressSnapshot verifies the first push carries the project's
// current status and a timestamp of when the snapshot was taken, not
// the row's creation time.
func TestProgressSnapshot(t *testing.T) {
	r, repo := newTestRouter(t)

	project := &model.Project{
		ID:             uuid.New(),
		Name:           "episode 1",
		SourceLanguage: "en",
		TargetLanguage: "ar",
		Status:         model.StatusUploading,
		AudioFileURL:   "https://example.com/a.mp3",
		CreatedAt:      time.Now().UTC().Add(-time.Hour),
	}
	if err := repo.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("create project: %v", err)
	}

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/projects/" + project.ID.String() + "/progress"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var snapshot notify.StatusEvent
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	if snapshot.ProjectID != project.ID {
		t.Errorf("snapshot project = %s, want %s", snapshot.ProjectID, project.ID)
	}
	if snapshot.Status != model.StatusUploading {
		t.Errorf("snapshot status = %s, want uploading", snapshot.Status)
	}
	if !snapshot.Timestamp.After(project.CreatedAt) {
		t.Errorf("snapshot timestamp %s not after creation time %s", snapshot.Timestamp, project.CreatedAt)
	}
}
