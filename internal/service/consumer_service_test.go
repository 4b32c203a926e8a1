package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"training-builder-be/internal/dto"
	"training-builder-be/internal/entity"
	"training-builder-be/internal/pkg/logger"
	"training-builder-be/pkg/outline"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmbedTopic = "EMBED_SESSION_OUTLINE"

func publishEmbedMessage(t *testing.T, pubSub *gochannel.GoChannel, sessionId uuid.UUID) {
	t.Helper()
	payload, err := json.Marshal(dto.PublishEmbedSessionMessage{SessionId: sessionId})
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish(testEmbedTopic, message.NewMessage(watermill.NewUUID(), payload)))
}

func TestConsumerServiceEmbedsPublishedSession(t *testing.T) {
	factory := newFakeRepoFactory()
	embedder := &fakeEmbedder{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	registry := outline.NewRegistry()
	userId := uuid.New()
	session := seedSessionWithOutline(t, factory, registry, userId)

	consumer := NewConsumerService(pubSub, testEmbedTopic, factory, embedder, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	publishEmbedMessage(t, pubSub, session.Id)

	assert.Eventually(t, func() bool {
		docs, _ := factory.uow.corpus.FindAll(context.Background())
		return len(docs) > 0
	}, 2*time.Second, 10*time.Millisecond)

	docs, err := factory.uow.corpus.FindAll(context.Background())
	require.NoError(t, err)
	for _, doc := range docs {
		assert.Equal(t, session.Id, doc.SessionId)
		assert.Equal(t, session.Title, doc.Title)
		assert.Equal(t, session.Metadata.Category, doc.Category)
		assert.NotEmpty(t, doc.EmbeddingValue)
	}

	// Stale chunks from an earlier publish are replaced, not appended.
	assert.Contains(t, factory.uow.corpus.deleted, session.Id)
}

func TestConsumerServiceSkipsUnknownSession(t *testing.T) {
	factory := newFakeRepoFactory()
	embedder := &fakeEmbedder{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, testEmbedTopic, factory, embedder, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	publishEmbedMessage(t, pubSub, uuid.New())

	// The message is acked without touching the corpus or the embedder.
	time.Sleep(200 * time.Millisecond)
	docs, _ := factory.uow.corpus.FindAll(context.Background())
	assert.Empty(t, docs)
	assert.Empty(t, embedder.calls)
}

func TestFlattenSessionContent(t *testing.T) {
	registry := outline.NewRegistry()
	doc := outline.NewDocument(registry)
	var err error
	doc, err = doc.AddSection(outline.TypeOpener, nil)
	require.NoError(t, err)
	doc, err = doc.AddSection(outline.TypeClosing, nil)
	require.NoError(t, err)
	doc, err = doc.UpdateSection(doc.Sections[1].Id, map[string]any{
		"keyTakeaways": []string{"Own the follow-up"},
	})
	require.NoError(t, err)

	session := &entity.TrainingSession{
		Title:       "Delegation deep dive",
		Description: "Hands-on workshop for new leads.",
		Metadata: entity.SessionMetadata{
			Category:       "leadership",
			DesiredOutcome: "delegate with confidence",
			Topics:         []string{"delegation", "trust"},
		},
		Outline: doc,
	}

	content := flattenSessionContent(session)
	assert.Contains(t, content, "Session: Delegation deep dive")
	assert.Contains(t, content, "Category: leadership")
	assert.Contains(t, content, "Topics: delegation, trust")
	assert.Contains(t, content, "Wrap-up & Next Steps (10 min)")
	assert.Contains(t, content, "- Own the follow-up")
}
