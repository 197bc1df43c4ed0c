package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TASK_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain implementation used for simple domain events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// TaskCreated builds the event published when a task is appended to the list.
func TaskCreated(text string, total int) Event {
	return BaseEvent{
		Type: "TASK_CREATED",
		Data: map[string]interface{}{
			"text":        text,
			"total_tasks": total,
		},
		OccurredAt: time.Now(),
	}
}

// NotesIngested builds the event published after an ingestion pass replaces
// the chunks of a source document.
func NotesIngested(source string, chunks int) Event {
	return BaseEvent{
		Type: "NOTES_INGESTED",
		Data: map[string]interface{}{
			"source": source,
			"chunks": chunks,
		},
		OccurredAt: time.Now(),
	}
}
