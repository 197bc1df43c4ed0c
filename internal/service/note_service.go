package service

import (
	"context"

	"lifehub-agent-be/internal/dto"
	"lifehub-agent-be/internal/pkg/logger"
	"lifehub-agent-be/pkg/retrieval"
)

type INoteService interface {
	// Reindex queues every note file in the configured directory for
	// background re-ingestion.
	Reindex(ctx context.Context) (*dto.ReindexResponse, error)
}

type noteService struct {
	notesDir  string
	publisher IPublisherService
	logger    logger.ILogger
}

func NewNoteService(notesDir string, publisher IPublisherService, log logger.ILogger) INoteService {
	return &noteService{
		notesDir:  notesDir,
		publisher: publisher,
		logger:    log,
	}
}

func (s *noteService) Reindex(ctx context.Context) (*dto.ReindexResponse, error) {
	docs, err := retrieval.LoadDocumentsFromDir(s.notesDir)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if err := s.publisher.PublishIngestNote(doc.Source, doc.Content); err != nil {
			return nil, err
		}
	}

	s.logger.Info("notes", "reindex queued", map[string]interface{}{"documents": len(docs)})
	return &dto.ReindexResponse{Documents: len(docs)}, nil
}
