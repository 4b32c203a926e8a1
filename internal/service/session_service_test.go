package service

import (
	"context"
	"encoding/json"
	"testing"

	"training-builder-be/internal/dto"
	"training-builder-be/internal/entity"
	"training-builder-be/internal/pkg/logger"
	"training-builder-be/internal/pkg/serverutils"
	"training-builder-be/pkg/outline"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionServiceForTest(factory *fakeRepoFactory, publisher *fakePublisher) ISessionService {
	return NewSessionService(factory, outline.NewRegistry(), publisher, nil, logger.NewNop())
}

func TestSessionServiceCreateAndShow(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newSessionServiceForTest(factory, &fakePublisher{})
	userId := uuid.New()

	created, err := svc.Create(context.Background(), userId, &dto.CreateSessionRequest{
		Title: "Conflict basics",
		Metadata: dto.SessionMetadataPayload{
			Category:       "communication",
			DesiredOutcome: "de-escalate tense conversations",
			TargetDuration: 60,
		},
	})
	require.NoError(t, err)

	shown, err := svc.Show(context.Background(), userId, created.Id)
	require.NoError(t, err)
	require.NotNil(t, shown)
	assert.Equal(t, "Conflict basics", shown.Title)
	assert.Equal(t, entity.SessionStatusDraft, shown.Status)
	assert.Equal(t, 60, shown.Metadata.TargetDuration)
	assert.Nil(t, shown.Outline)
}

func TestSessionServiceShowScopedToOwner(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newSessionServiceForTest(factory, &fakePublisher{})

	created, err := svc.Create(context.Background(), uuid.New(), &dto.CreateSessionRequest{
		Title: "Private session",
		Metadata: dto.SessionMetadataPayload{
			Category:       "leadership",
			DesiredOutcome: "delegate better",
			TargetDuration: 45,
		},
	})
	require.NoError(t, err)

	shown, err := svc.Show(context.Background(), uuid.New(), created.Id)
	require.NoError(t, err)
	assert.Nil(t, shown)
}

func TestSessionServiceDeleteAlsoClearsCorpus(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newSessionServiceForTest(factory, &fakePublisher{})
	userId := uuid.New()

	created, err := svc.Create(context.Background(), userId, &dto.CreateSessionRequest{
		Title: "Retired session",
		Metadata: dto.SessionMetadataPayload{
			Category:       "leadership",
			DesiredOutcome: "coach directly",
			TargetDuration: 30,
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userId, created.Id))
	assert.Contains(t, factory.uow.corpus.deleted, created.Id)

	err = svc.Delete(context.Background(), userId, created.Id)
	var httpErr *serverutils.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
}

func TestSessionServicePublishValidOutline(t *testing.T) {
	factory := newFakeRepoFactory()
	publisher := &fakePublisher{}
	svc := newSessionServiceForTest(factory, publisher)
	registry := outline.NewRegistry()
	userId := uuid.New()

	session := seedSessionWithOutline(t, factory, registry, userId)

	resp, err := svc.Publish(context.Background(), userId, session.Id, 5)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusPublished, resp.Status)
	assert.False(t, resp.PublishedAt.IsZero())

	stored, _ := factory.uow.sessions.FindOne(context.Background())
	assert.Equal(t, entity.SessionStatusPublished, stored.Status)
	require.NotNil(t, stored.PublishedAt)

	// The embed pipeline gets exactly one message carrying the session id.
	require.Len(t, publisher.payloads, 1)
	var msg dto.PublishEmbedSessionMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &msg))
	assert.Equal(t, session.Id, msg.SessionId)
}

func TestSessionServicePublishRejectsInvalidOutline(t *testing.T) {
	factory := newFakeRepoFactory()
	publisher := &fakePublisher{}
	svc := newSessionServiceForTest(factory, publisher)
	registry := outline.NewRegistry()
	userId := uuid.New()

	session := seedSessionWithOutline(t, factory, registry, userId)

	// An exercise without its exerciseType fails outline validation.
	doc, err := session.Outline.AddSection(outline.TypeExercise, nil)
	require.NoError(t, err)
	session.Outline = doc
	require.NoError(t, factory.uow.sessions.Update(context.Background(), session))

	_, err = svc.Publish(context.Background(), userId, session.Id, 5)
	var httpErr *serverutils.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 422, httpErr.Code)

	stored, _ := factory.uow.sessions.FindOne(context.Background())
	assert.Equal(t, entity.SessionStatusDraft, stored.Status)
	assert.Empty(t, publisher.payloads)
}

func TestSessionServicePublishWithoutOutline(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newSessionServiceForTest(factory, &fakePublisher{})
	userId := uuid.New()

	created, err := svc.Create(context.Background(), userId, &dto.CreateSessionRequest{
		Title: "Empty shell",
		Metadata: dto.SessionMetadataPayload{
			Category:       "leadership",
			DesiredOutcome: "lead standups",
			TargetDuration: 30,
		},
	})
	require.NoError(t, err)

	_, err = svc.Publish(context.Background(), userId, created.Id, 5)
	var httpErr *serverutils.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 422, httpErr.Code)
}
