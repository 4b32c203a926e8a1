package service

import (
	"context"
	"testing"
	"time"

	"training-builder-be/internal/dto"
	"training-builder-be/internal/entity"
	"training-builder-be/pkg/outline"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTemplate(t *testing.T, factory *fakeRepoFactory, name, category string, active bool) *entity.Template {
	t.Helper()

	registry := outline.NewRegistry()
	doc := outline.NewDocument(registry)
	var err error
	doc, err = doc.AddSection(outline.TypeOpener, nil)
	require.NoError(t, err)
	doc, err = doc.AddSection(outline.TypeTopic, nil)
	require.NoError(t, err)
	doc, err = doc.AddSection(outline.TypeClosing, nil)
	require.NoError(t, err)

	template := &entity.Template{
		Id:        uuid.New(),
		Name:      name,
		Category:  category,
		IsActive:  active,
		Outline:   doc,
		CreatedAt: time.Now(),
	}
	require.NoError(t, factory.uow.templates.Create(context.Background(), template))
	return template
}

func TestTemplateServiceGetAllFiltersInactive(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := NewTemplateService(factory)

	seedTemplate(t, factory, "Leadership Fundamentals", "leadership", true)
	seedTemplate(t, factory, "Retired Workshop", "leadership", false)
	seedTemplate(t, factory, "Team Communication", "communication", true)

	all, err := svc.GetAll(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	leadership, err := svc.GetAll(context.Background(), "leadership")
	require.NoError(t, err)
	require.Len(t, leadership, 1)
	assert.Equal(t, "Leadership Fundamentals", leadership[0].Name)
}

func TestTemplateServiceGetAllServedFromCache(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := NewTemplateService(factory)

	seedTemplate(t, factory, "Leadership Fundamentals", "leadership", true)

	first, err := svc.GetAll(context.Background(), "leadership")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A template added after the first read stays invisible until the
	// cache entry expires.
	seedTemplate(t, factory, "Another One", "leadership", true)
	second, err := svc.GetAll(context.Background(), "leadership")
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestTemplateServiceInstantiate(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := NewTemplateService(factory)
	userId := uuid.New()

	template := seedTemplate(t, factory, "Leadership Fundamentals", "leadership", true)

	resp, err := svc.Instantiate(context.Background(), userId, &dto.InstantiateTemplateRequest{
		TemplateId: template.Id,
		Title:      "March cohort",
		Metadata: dto.SessionMetadataPayload{
			Category:       "leadership",
			DesiredOutcome: "grow first-time managers",
			TargetDuration: 40,
		},
	})
	require.NoError(t, err)

	session, err := factory.uow.sessions.FindOne(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, resp.SessionId, session.Id)
	assert.Equal(t, "March cohort", session.Title)
	assert.Equal(t, entity.SessionStatusDraft, session.Status)
	assert.Equal(t, userId, session.UserId)

	// The seeded outline is a deep copy, not the template's document.
	require.NotNil(t, session.Outline)
	assert.NotSame(t, template.Outline, session.Outline)
	require.Len(t, session.Outline.Sections, len(template.Outline.Sections))
	assert.Equal(t, template.Outline.Sections[0].Id, session.Outline.Sections[0].Id)
}

func TestTemplateServiceInstantiateUnknownTemplate(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := NewTemplateService(factory)

	resp, err := svc.Instantiate(context.Background(), uuid.New(), &dto.InstantiateTemplateRequest{
		TemplateId: uuid.New(),
		Title:      "Orphan",
		Metadata: dto.SessionMetadataPayload{
			Category:       "leadership",
			DesiredOutcome: "anything",
			TargetDuration: 30,
		},
	})
	require.NoError(t, err)
	assert.Nil(t, resp)
}
