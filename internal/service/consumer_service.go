package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"training-builder-be/internal/dto"
	"training-builder-be/internal/entity"
	"training-builder-be/internal/pkg/logger"
	"training-builder-be/internal/repository/specification"
	"training-builder-be/internal/repository/unitofwork"
	"training-builder-be/pkg/embedding"
	"training-builder-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the embed queue: every published session gets its
// outline flattened to text, chunked, embedded and written to the
// retrieval corpus, replacing whatever was there from earlier publishes.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal embed message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads would retry forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: payload.SessionId})
	if err != nil {
		cs.logger.Error("consumer", "failed to load session for embedding", map[string]interface{}{
			"session_id": payload.SessionId.String(),
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}
	if session == nil || session.Outline == nil {
		cs.logger.Warn("consumer", "session missing or has no outline, skipping embed", map[string]interface{}{
			"session_id": payload.SessionId.String(),
		})
		msg.Ack()
		return
	}

	content := flattenSessionContent(session)

	// 1500 chars per chunk with 200 overlap keeps each piece well inside
	// embedding context limits.
	chunks := utils.SplitText(content, 1500, 200)

	newDocs := make([]*entity.CorpusDocument, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			cs.logger.Error("consumer", "failed to embed session chunk", map[string]interface{}{
				"session_id": payload.SessionId.String(),
				"chunk":      i,
				"error":      err.Error(),
			})
			msg.Nack()
			return
		}

		newDocs = append(newDocs, &entity.CorpusDocument{
			Id:             uuid.New(),
			SessionId:      session.Id,
			Title:          session.Title,
			Category:       session.Metadata.Category,
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("consumer", "failed to begin transaction", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.CorpusRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		cs.logger.Error("consumer", "failed to delete stale corpus documents", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	if len(newDocs) > 0 {
		if err := uow.CorpusRepository().CreateBulk(ctx, newDocs); err != nil {
			cs.logger.Error("consumer", "failed to store corpus documents", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("consumer", "failed to commit corpus update", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer", "session embedded into corpus", map[string]interface{}{
		"session_id": session.Id.String(),
		"chunks":     len(newDocs),
	})
	msg.Ack()
}

// flattenSessionContent renders the outline into the text that gets
// embedded: brief first, then every section's visible content in order.
func flattenSessionContent(session *entity.TrainingSession) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s\n", session.Title)
	fmt.Fprintf(&b, "Category: %s\n", session.Metadata.Category)
	if session.Metadata.DesiredOutcome != "" {
		fmt.Fprintf(&b, "Outcome: %s\n", session.Metadata.DesiredOutcome)
	}
	if len(session.Metadata.Topics) > 0 {
		fmt.Fprintf(&b, "Topics: %s\n", strings.Join(session.Metadata.Topics, ", "))
	}
	if session.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", session.Description)
	}

	for _, section := range session.Outline.Sections {
		fmt.Fprintf(&b, "\n%s (%d min)\n", section.Title, section.Duration)
		if section.Description != "" {
			fmt.Fprintf(&b, "%s\n", section.Description)
		}
		for _, obj := range section.LearningObjectives {
			fmt.Fprintf(&b, "- %s\n", obj)
		}
		for _, kt := range section.KeyTakeaways {
			fmt.Fprintf(&b, "- %s\n", kt)
		}
	}

	return b.String()
}
