package mapper

import (
	"testing"
	"time"

	"training-builder-be/internal/entity"
	"training-builder-be/pkg/outline"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMapperRoundTripPreservesOutline(t *testing.T) {
	registry := outline.NewRegistry()
	doc := outline.NewDocument(registry)
	var err error
	doc, err = doc.AddSection(outline.TypeOpener, nil)
	require.NoError(t, err)
	doc, err = doc.AddSection(outline.TypeTopic, nil)
	require.NoError(t, err)
	doc, err = doc.AddSection(outline.TypeClosing, nil)
	require.NoError(t, err)

	now := time.Now()
	session := &entity.TrainingSession{
		Id:     uuid.New(),
		UserId: uuid.New(),
		Title:  "Coaching conversations",
		Status: entity.SessionStatusDraft,
		Metadata: entity.SessionMetadata{
			Category:       "leadership",
			DesiredOutcome: "run coaching 1:1s",
			Topics:         []string{"listening", "questions"},
			TargetDuration: 40,
		},
		Outline:   doc,
		CreatedAt: now,
	}

	m := NewSessionMapper()
	back := m.ToEntity(m.ToModel(session))
	require.NotNil(t, back)

	assert.Equal(t, session.Id, back.Id)
	assert.Equal(t, session.UserId, back.UserId)
	assert.Equal(t, session.Metadata, back.Metadata)
	require.NotNil(t, back.Outline)
	require.Len(t, back.Outline.Sections, 3)
	assert.Equal(t, doc.Sections[0].Id, back.Outline.Sections[0].Id)
	assert.Equal(t, doc.TotalDuration, back.Outline.TotalDuration)

	// The registry binding is not part of the JSON shape, so a reloaded
	// document must be usable again after an explicit rebind.
	result := back.Outline.WithRegistry(registry).Validate(outline.ValidateOptions{
		TargetDuration:    40,
		DurationTolerance: 5,
	})
	assert.True(t, result.IsValid)
}

func TestSessionMapperNilAndCorruptOutline(t *testing.T) {
	m := NewSessionMapper()

	session := &entity.TrainingSession{Id: uuid.New(), UserId: uuid.New(), Status: entity.SessionStatusDraft}
	back := m.ToEntity(m.ToModel(session))
	require.NotNil(t, back)
	assert.Nil(t, back.Outline)

	row := m.ToModel(session)
	row.Outline = []byte("{not json")
	corrupt := m.ToEntity(row)
	require.NotNil(t, corrupt)
	assert.Nil(t, corrupt.Outline)
}
