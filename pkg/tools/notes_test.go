package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifehub-agent-be/internal/entity"
	"lifehub-agent-be/pkg/retrieval"
)

type fakeSearcher struct {
	results  []*retrieval.ScoredChunk
	err      error
	lastTopK int
}

func (f *fakeSearcher) Query(ctx context.Context, query string, topK int) ([]*retrieval.ScoredChunk, error) {
	f.lastTopK = topK
	return f.results, f.err
}

func TestSearchNotesFormatsResults(t *testing.T) {
	searcher := &fakeSearcher{results: []*retrieval.ScoredChunk{
		{Chunk: &entity.NoteChunk{Document: "Gift ideas: wool socks", Source: "gifts.md"}, Score: 0.91},
		{Chunk: &entity.NoteChunk{Document: "Birthday is in March", Source: "dates.md"}, Score: 0.74},
	}}
	tool := NewSearchNotesTool(searcher)

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"query":"gift ideas"}`))
	require.NoError(t, err)
	require.True(t, result.Success())

	assert.Contains(t, result.Output, "Found 2 relevant note(s)")
	assert.Contains(t, result.Output, "1. [gifts.md, score 0.91] Gift ideas: wool socks")
	assert.Contains(t, result.Output, "2. [dates.md, score 0.74] Birthday is in March")
}

func TestSearchNotesDefaultsTopK(t *testing.T) {
	searcher := &fakeSearcher{}
	tool := NewSearchNotesTool(searcher)

	_, err := tool.Execute(context.Background(), json.RawMessage(`{"query":"anything"}`))
	require.NoError(t, err)
	assert.Equal(t, defaultNotesTopK, searcher.lastTopK)

	_, err = tool.Execute(context.Background(), json.RawMessage(`{"query":"anything","top_k":2}`))
	require.NoError(t, err)
	assert.Equal(t, 2, searcher.lastTopK)
}

func TestSearchNotesEmptyStore(t *testing.T) {
	tool := NewSearchNotesTool(&fakeSearcher{})

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"query":"anything"}`))
	require.NoError(t, err)
	require.True(t, result.Success())
	assert.Equal(t, "No relevant notes found.", result.Output)
}

func TestSearchNotesGatewayFailure(t *testing.T) {
	tool := NewSearchNotesTool(&fakeSearcher{err: errors.New("embedding backend down")})

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"query":"anything"}`))
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Contains(t, result.Error.Error(), "embedding backend down")
}

func TestSearchNotesRequiresQuery(t *testing.T) {
	tool := NewSearchNotesTool(&fakeSearcher{})

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"query":""}`))
	require.NoError(t, err)
	assert.False(t, result.Success())
}
