package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifehub-agent-be/internal/dto"
	"lifehub-agent-be/pkg/agent"
	"lifehub-agent-be/pkg/llm"
	"lifehub-agent-be/pkg/tools"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// directAnswerLLM plans a single reasoning step and streams a fixed answer.
type directAnswerLLM struct {
	answer string
}

func (d *directAnswerLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return `{"plan":[{"step":1,"description":"Respond directly","tool":null,"tool_input":null}]}`, nil
}

func (d *directAnswerLLM) StreamChat(ctx context.Context, history []llm.Message, chunks chan<- string, options ...llm.Option) error {
	select {
	case chunks <- d.answer:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (d *directAnswerLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return d.Chat(ctx, nil, options...)
}

func newTestChatService(answer string) IChatService {
	pipelines := map[string]*agent.Pipeline{
		"ollama": agent.NewPipeline(&directAnswerLLM{answer: answer}, tools.NewRegistry()),
	}
	return NewChatService(pipelines, "ollama", nopLogger{})
}

func TestChatServiceSyncUsesDefaultProvider(t *testing.T) {
	svc := newTestChatService("Hello there")

	resp, err := svc.Sync(context.Background(), &dto.ChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "assistant", resp.Role)
	assert.Equal(t, "Hello there", resp.Content)
	assert.Nil(t, resp.Plan, "debug fields hidden unless requested")
	assert.Nil(t, resp.ContextLog)
}

func TestChatServiceSyncDebugIncludesPlanAndLog(t *testing.T) {
	svc := newTestChatService("Hello there")

	resp, err := svc.Sync(context.Background(), &dto.ChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "hi"}},
		Debug:    true,
	})
	require.NoError(t, err)

	require.Len(t, resp.Plan, 1)
	require.Len(t, resp.ContextLog, 1)
}

func TestChatServiceUnknownProvider(t *testing.T) {
	svc := newTestChatService("x")

	_, err := svc.Sync(context.Background(), &dto.ChatRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "hi"}},
		Provider: "openai",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestLastUserMessage(t *testing.T) {
	messages := []dto.ChatMessage{
		{Role: "user", Content: "first question"},
		{Role: "assistant", Content: "first answer"},
		{Role: "user", Content: "second question"},
		{Role: "assistant", Content: "second answer"},
	}
	assert.Equal(t, "second question", lastUserMessage(messages))

	onlyAssistant := []dto.ChatMessage{{Role: "assistant", Content: "hello"}}
	assert.Equal(t, "hello", lastUserMessage(onlyAssistant))
}
