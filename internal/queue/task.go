package queue

import (
	"encoding/json"
	"fmt"

	"github.com/The0mikkel/byceps/internal/domain"
)

type TaskType string

const (
	TaskTypeAnnounce TaskType = "announce"
)

// Task is a domain event waiting to be announced by the worker.
type Task struct {
	TaskType  TaskType
	EventName string
	EventID   string
	Payload   []byte
	TraceID   string
	Attempt   int
}

// NewAnnounceTask serializes event for the stream. Unregistered event types
// fail here already, before anything is enqueued.
func NewAnnounceTask(event domain.Event, traceID string) (Task, error) {
	name, err := domain.EventName(event)
	if err != nil {
		return Task{}, err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return Task{}, fmt.Errorf("encoding %s event: %w", name, err)
	}

	return Task{
		TaskType:  TaskTypeAnnounce,
		EventName: name,
		EventID:   event.Base().ID.String(),
		Payload:   payload,
		TraceID:   traceID,
		Attempt:   1,
	}, nil
}

// Event decodes the payload back into the registered event type.
func (t Task) Event() (domain.Event, error) {
	return domain.DecodeEvent(t.EventName, t.Payload)
}

func (t Task) values(attempt int) map[string]any {
	if attempt <= 0 {
		attempt = 1
	}

	values := map[string]any{
		"task_type":  string(TaskTypeAnnounce),
		"event_name": t.EventName,
		"event_id":   t.EventID,
		"payload":    string(t.Payload),
		"attempt":    attempt,
	}
	if t.TraceID != "" {
		values["trace_id"] = t.TraceID
	}
	return values
}
