package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/TwentyOOO/audiodub-magic/internal/model"
	"github.com/TwentyOOO/audiodub-magic/internal/notify"
	"github.com/TwentyOOO/audiodub-magic/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// streamProgress handles GET /api/projects/:id/progress. It upgrades
// to a websocket, sends the project's current status first, then
// pushes every persisted transition until a terminal one.
func (h *Handler) streamProgress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid project id format")
		return
	}

	project, err := h.repo.GetProject(c.Request.Context(), id)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "project not found")
		return
	}

	// Subscribe before sending the snapshot so no transition between
	// the row read and the first push is missed.
	events, cancel := h.notifier.Subscribe(id)
	defer cancel()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[Progress] Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	snapshot := notify.StatusEvent{
		ProjectID: project.ID,
		Status:    project.Status,
		Timestamp: time.Now().UTC(),
	}
	if err := conn.WriteJSON(snapshot); err != nil {
		return
	}
	if model.Terminal(project.Status) {
		return
	}

	// Detect the client going away so an abandoned connection does not
	// hold its subscription.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
			if model.Terminal(event.Status) {
				return
			}
		case <-done:
			return
		}
	}
}
