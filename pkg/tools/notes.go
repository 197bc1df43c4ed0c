package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lifehub-agent-be/pkg/retrieval"
)

const defaultNotesTopK = 5

// NoteSearcher is the slice of the retrieval gateway this tool needs.
type NoteSearcher interface {
	Query(ctx context.Context, query string, topK int) ([]*retrieval.ScoredChunk, error)
}

// SearchNotesTool runs a semantic similarity query over the ingested
// personal notes.
type SearchNotesTool struct {
	gateway NoteSearcher
}

func NewSearchNotesTool(gateway NoteSearcher) *SearchNotesTool {
	return &SearchNotesTool{gateway: gateway}
}

func (t *SearchNotesTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "search_notes",
		Description: "Search the user's personal notes for relevant information.",
		Parameters: []ToolParameter{
			{
				Name:        "query",
				ParamType:   "string",
				Description: "What to look for in the notes",
				Required:    true,
			},
			{
				Name:        "top_k",
				ParamType:   "integer",
				Description: "Maximum number of note excerpts to return (default 5)",
				Required:    false,
			},
		},
	}
}

type searchNotesArgs struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

func (t *SearchNotesTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var in searchNotesArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return FailureResultf("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(in.Query) == "" {
		return FailureResultf("query is required"), nil
	}
	if in.TopK <= 0 {
		in.TopK = defaultNotesTopK
	}

	results, err := t.gateway.Query(ctx, in.Query, in.TopK)
	if err != nil {
		return FailureResultf("note search failed: %v", err), nil
	}
	if len(results) == 0 {
		return SuccessResult("No relevant notes found."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d relevant note(s):\n", len(results)))
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%d. [%s, score %.2f] %s\n",
			i+1, r.Chunk.Source, r.Score, strings.TrimSpace(r.Chunk.Document)))
	}
	return SuccessResult(strings.TrimSpace(sb.String())), nil
}
