package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TwentyOOO/audiodub-magic/internal/model"
)

// subscriberBuffer bounds each subscriber channel. A full pipeline run
// emits at most six transitions, so a connected observer never loses
// an event at this capacity.
const subscriberBuffer = 16

// StatusEvent is one persisted status transition of a project
type StatusEvent struct {
	ProjectID uuid.UUID    `json:"project_id"`
	Status    model.Status `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
}

// Notifier fans out status transitions to subscribers per project. It
// holds no pipeline state, only the observer registry.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[uuid.UUID]map[int]chan StatusEvent
}

// NewNotifier creates an empty notifier
func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[uuid.UUID]map[int]chan StatusEvent),
	}
}

// Subscribe registers an observer for a project. The returned cancel
// function releases the subscription and closes the channel.
func (n *Notifier) Subscribe(projectID uuid.UUID) (<-chan StatusEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.next++
	id := n.next
	ch := make(chan StatusEvent, subscriberBuffer)

	if n.subs[projectID] == nil {
		n.subs[projectID] = make(map[int]chan StatusEvent)
	}
	n.subs[projectID][id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()

		if chans, ok := n.subs[projectID]; ok {
			if c, ok := chans[id]; ok {
				delete(chans, id)
				close(c)
			}
			if len(chans) == 0 {
				delete(n.subs, projectID)
			}
		}
	}

	return ch, cancel
}

// Publish delivers a status event to every subscriber of the project.
// An abandoned subscriber with a full buffer is skipped rather than
// allowed to stall the publisher.
func (n *Notifier) Publish(projectID uuid.UUID, status model.Status) {
	event := StatusEvent{
		ProjectID: projectID,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs[projectID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of observers for a project
func (n *Notifier) SubscriberCount(projectID uuid.UUID) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[projectID])
}
