package agent

// Event type codes as they appear on the wire.
const (
	EventStart      = "start"
	EventPlan       = "plan"
	EventToolStart  = "tool_start"
	EventToolEnd    = "tool_end"
	EventContextLog = "context_log"
	EventToken      = "token"
	EventEnd        = "end"
	EventError      = "error"
)

// Event is one streamed pipeline event. Only the fields relevant to the
// event type are populated; the rest stay empty on the wire.
type Event struct {
	Type    string                 `json:"type"`
	Plan    []PlanStep             `json:"plan,omitempty"`
	Name    string                 `json:"name,omitempty"`
	Input   map[string]interface{} `json:"input,omitempty"`
	Output  string                 `json:"output,omitempty"`
	Log     []ContextLogEntry      `json:"log,omitempty"`
	Content string                 `json:"content,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// EmitFunc receives pipeline events in emission order. Implementations must
// not block indefinitely; the pipeline runs on the caller's goroutine.
type EmitFunc func(Event)

func StartEvent() Event {
	return Event{Type: EventStart}
}

func PlanEvent(plan []PlanStep) Event {
	return Event{Type: EventPlan, Plan: plan}
}

func ToolStartEvent(name string, input map[string]interface{}) Event {
	return Event{Type: EventToolStart, Name: name, Input: input}
}

func ToolEndEvent(name, output string) Event {
	return Event{Type: EventToolEnd, Name: name, Output: output}
}

func ContextLogEvent(log []ContextLogEntry) Event {
	return Event{Type: EventContextLog, Log: log}
}

func TokenEvent(content string) Event {
	return Event{Type: EventToken, Content: content}
}

func EndEvent() Event {
	return Event{Type: EventEnd}
}

func ErrorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}
