package service

import (
	"context"
	"fmt"

	"lifehub-agent-be/internal/dto"
	"lifehub-agent-be/internal/pkg/logger"
	"lifehub-agent-be/pkg/agent"
)

// ProviderNotConfiguredError reports a request naming a model provider that
// was not set up at startup.
type ProviderNotConfiguredError struct {
	Provider string
}

func (e *ProviderNotConfiguredError) Error() string {
	return fmt.Sprintf("provider '%s' is not configured", e.Provider)
}

type IChatService interface {
	// Stream runs one chat turn, forwarding pipeline events to emit.
	Stream(ctx context.Context, req *dto.ChatRequest, emit agent.EmitFunc) error
	// Sync runs one chat turn and returns the buffered result.
	Sync(ctx context.Context, req *dto.ChatRequest) (*dto.SyncChatResponse, error)
}

type chatService struct {
	pipelines       map[string]*agent.Pipeline
	defaultProvider string
	logger          logger.ILogger
}

// NewChatService takes the pipelines built at startup, one per configured
// model provider. Requests select by name; an unconfigured provider is a
// client error, not a reason to read credentials at request time.
func NewChatService(pipelines map[string]*agent.Pipeline, defaultProvider string, log logger.ILogger) IChatService {
	return &chatService{
		pipelines:       pipelines,
		defaultProvider: defaultProvider,
		logger:          log,
	}
}

func (s *chatService) pipelineFor(provider string) (*agent.Pipeline, error) {
	if provider == "" {
		provider = s.defaultProvider
	}
	p, ok := s.pipelines[provider]
	if !ok {
		return nil, &ProviderNotConfiguredError{Provider: provider}
	}
	return p, nil
}

// lastUserMessage picks the request the pipeline plans against: the newest
// user turn, falling back to the newest message of any role.
func lastUserMessage(messages []dto.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return messages[len(messages)-1].Content
}

func (s *chatService) Stream(ctx context.Context, req *dto.ChatRequest, emit agent.EmitFunc) error {
	pipeline, err := s.pipelineFor(req.Provider)
	if err != nil {
		emit(agent.ErrorEvent(err.Error()))
		return err
	}

	s.logger.Info("chat", "stream turn started", map[string]interface{}{
		"messages": len(req.Messages),
		"provider": req.Provider,
		"debug":    req.Debug,
	})

	_, err = pipeline.Run(ctx, lastUserMessage(req.Messages), req.Debug, emit)
	if err != nil {
		s.logger.Error("chat", "stream turn failed", map[string]interface{}{"error": err.Error()})
	}
	return err
}

func (s *chatService) Sync(ctx context.Context, req *dto.ChatRequest) (*dto.SyncChatResponse, error) {
	pipeline, err := s.pipelineFor(req.Provider)
	if err != nil {
		return nil, err
	}

	result, err := pipeline.RunSync(ctx, lastUserMessage(req.Messages), req.Debug)
	if err != nil {
		return nil, err
	}

	resp := &dto.SyncChatResponse{
		Role:    "assistant",
		Content: result.Content,
	}
	if req.Debug {
		resp.Plan = result.Plan
		resp.ContextLog = result.ContextLog
	}
	return resp, nil
}
