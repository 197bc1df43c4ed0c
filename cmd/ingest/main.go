// Command ingest synchronously (re)indexes every note file in NOTES_DIR
// into the vector store. Run it once before first start, or whenever notes
// change outside the API.
package main

import (
	"context"
	"log"

	"github.com/fatih/color"

	"lifehub-agent-be/internal/config"
	"lifehub-agent-be/internal/repository/implementation"
	"lifehub-agent-be/pkg/database"
	"lifehub-agent-be/pkg/embedding"
	"lifehub-agent-be/pkg/events"
	pktNats "lifehub-agent-be/pkg/nats"
	"lifehub-agent-be/pkg/retrieval"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
	} else {
		provider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.OpenAIEmbedModel)
	}

	gateway := retrieval.NewGateway(provider, implementation.NewNoteChunkRepository(gormDB))

	var natsPub *pktNats.Publisher
	if cfg.App.NatsEnabled {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			color.Yellow("NATS unavailable, skipping events: %v", err)
			natsPub = nil
		}
	}

	name, model := gateway.Provider()
	color.Cyan("Ingesting notes from %s (embedding space: %s/%s)", cfg.Notes.Dir, name, model)

	docs, err := retrieval.LoadDocumentsFromDir(cfg.Notes.Dir)
	if err != nil {
		log.Fatalf("Failed to load notes: %v", err)
	}
	if len(docs) == 0 {
		color.Yellow("No .md or .txt files found in %s", cfg.Notes.Dir)
		return
	}

	ctx := context.Background()
	total := 0
	for _, doc := range docs {
		chunks, err := gateway.IngestDocument(ctx, doc)
		if err != nil {
			color.Red("  ✗ %s: %v", doc.Source, err)
			log.Fatalf("Ingestion aborted")
		}
		color.Green("  ✓ %s (%d chunks)", doc.Source, chunks)
		total += chunks

		_ = natsPub.Publish(ctx, events.NotesIngested(doc.Source, chunks))
	}

	color.Cyan("Done: %d document(s), %d chunk(s)", len(docs), total)
	natsPub.Close()
}
