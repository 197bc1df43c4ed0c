package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"lifehub-agent-be/internal/dto"
	"lifehub-agent-be/internal/pkg/logger"
	"lifehub-agent-be/pkg/events"
	natspkg "lifehub-agent-be/pkg/nats"
	"lifehub-agent-be/pkg/retrieval"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService processes queued ingest jobs: each message replaces the
// stored chunks of one source document. Messages are spread across a fixed
// pool of workers since distinct sources never touch the same rows.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	workers   int
	gateway   *retrieval.Gateway
	natsPub   *natspkg.Publisher
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	workers int,
	gateway *retrieval.Gateway,
	natsPub *natspkg.Publisher,
	log logger.ILogger,
) IConsumerService {
	if workers < 1 {
		workers = 1
	}
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		workers:   workers,
		gateway:   gateway,
		natsPub:   natsPub,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	for i := 0; i < cs.workers; i++ {
		go func() {
			for msg := range messages {
				cs.processMessage(ctx, msg)
			}
		}()
	}

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestNoteMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ingest", "failed to unmarshal ingest message", map[string]interface{}{"error": err.Error()})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	cs.logger.Info("ingest", "processing note", map[string]interface{}{"source": payload.Source})

	chunks, err := cs.gateway.IngestDocument(ctx, retrieval.Document{
		Source:  payload.Source,
		Content: payload.Content,
	})
	if err != nil {
		cs.logger.Error("ingest", "failed to ingest note", map[string]interface{}{
			"source": payload.Source,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	if err := cs.natsPub.Publish(ctx, events.NotesIngested(payload.Source, chunks)); err != nil {
		cs.logger.Warn("ingest", "failed to publish NOTES_INGESTED event", map[string]interface{}{"error": err.Error()})
	}

	cs.logger.Info("ingest", "note processed", map[string]interface{}{
		"source": payload.Source,
		"chunks": chunks,
	})
	msg.Ack()
}
