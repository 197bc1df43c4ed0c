package dto

import "lifehub-agent-be/pkg/agent"

// ChatMessage is one conversation turn as sent by the client.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest is the body of POST /chat and POST /chat/sync.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
	Provider string        `json:"provider" validate:"omitempty,oneof=openai ollama"`
	Debug    bool          `json:"debug"`
}

// SyncChatResponse is the buffered result of POST /chat/sync. Plan and
// ContextLog are only present when the request asked for debug output.
type SyncChatResponse struct {
	Role       string                  `json:"role"`
	Content    string                  `json:"content"`
	Plan       []agent.PlanStep        `json:"plan,omitempty"`
	ContextLog []agent.ContextLogEntry `json:"context_log,omitempty"`
}
