package generation

import (
	"testing"

	"training-builder-be/internal/entity"
	"training-builder-be/pkg/outline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviderOutline(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"title":"T","sections":[{"type":"opener","duration":10}]}`,
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"title\":\"T\",\"sections\":[{\"type\":\"opener\"}]}\n```",
		},
		{
			name:    "prose response",
			raw:     "Here is your outline: opening, then topics.",
			wantErr: true,
		},
		{
			name:    "empty sections",
			raw:     `{"title":"T","sections":[]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := parseProviderOutline(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOutput)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, out.Sections)
		})
	}
}

func TestNormalizeSynthesizesProtectedSections(t *testing.T) {
	registry := outline.NewRegistry()
	raw := &providerOutline{
		Title: "Session",
		Sections: []providerSection{
			{Type: "topic", Title: "Only topic", Duration: 30},
		},
	}

	doc := normalizeOutline(registry, entity.SessionMetadata{TargetDuration: 50}, raw, 5)

	require.Len(t, doc.Sections, 3)
	assert.Equal(t, outline.TypeOpener, doc.Sections[0].Type)
	assert.Equal(t, outline.TypeTopic, doc.Sections[1].Type)
	assert.Equal(t, outline.TypeClosing, doc.Sections[2].Type)
	assert.True(t, doc.Sections[0].IsRequired)
	assert.True(t, doc.Sections[2].IsRequired)

	res := doc.Validate(outline.ValidateOptions{TargetDuration: 50, DurationTolerance: 5})
	assert.True(t, res.IsValid, "findings: %v", res.Errors)
}

func TestNormalizeUnknownTypeBecomesCustom(t *testing.T) {
	registry := outline.NewRegistry()
	raw := &providerOutline{
		Sections: []providerSection{
			{Type: "opener", Duration: 10},
			{Type: "keynote", Title: "Big speech", Duration: 20},
			{Type: "closing", Duration: 10},
		},
	}

	doc := normalizeOutline(registry, entity.SessionMetadata{}, raw, 5)
	assert.Equal(t, outline.TypeCustom, doc.Sections[1].Type)
	assert.Equal(t, "Big speech", doc.Sections[1].Title)
}

func TestNormalizeFillsRegistryDefaults(t *testing.T) {
	registry := outline.NewRegistry()
	raw := &providerOutline{
		Sections: []providerSection{
			{Type: "opener"},                        // no title, no duration
			{Type: "exercise", Title: "Practice"},   // no exerciseType
			{Type: "inspiration", Title: "A story"}, // no inspirationType
			{Type: "closing"},
		},
	}

	doc := normalizeOutline(registry, entity.SessionMetadata{}, raw, 5)

	assert.Equal(t, 10, doc.Sections[0].Duration)
	assert.Equal(t, "Welcome & Introductions", doc.Sections[0].Title)
	assert.Equal(t, "activity", doc.Sections[1].ExerciseType)
	assert.Equal(t, "video", doc.Sections[2].InspirationType)
}

func TestNormalizeTopicMatching(t *testing.T) {
	registry := outline.NewRegistry()
	raw := &providerOutline{
		Sections: []providerSection{
			{Type: "opener", Duration: 10},
			{Type: "topic", Title: "Effective COMMUNICATION habits", Duration: 20},
			{Type: "topic", Title: "Delegation", Description: "builds trust in teams", Duration: 20},
			{Type: "closing", Duration: 10},
		},
	}
	metadata := entity.SessionMetadata{
		Topics: []string{"communication", "trust", "conflict"},
	}

	doc := normalizeOutline(registry, metadata, raw, 5)

	assert.Equal(t, []string{"communication"}, doc.Sections[1].MatchedTopics)
	assert.Equal(t, []string{"trust"}, doc.Sections[2].MatchedTopics)
	assert.Empty(t, doc.Sections[0].MatchedTopics)
}

func TestNormalizeScalesToTargetDuration(t *testing.T) {
	registry := outline.NewRegistry()
	raw := &providerOutline{
		Sections: []providerSection{
			{Type: "opener", Duration: 10},
			{Type: "topic", Duration: 40},
			{Type: "exercise", Duration: 40, ExerciseType: "activity"},
			{Type: "closing", Duration: 10},
		},
	}
	// Total 100, target 60: the two non-required sections must shrink from
	// 80 to 40 while opener and closing stay untouched.
	doc := normalizeOutline(registry, entity.SessionMetadata{TargetDuration: 60}, raw, 5)

	assert.Equal(t, 60, doc.TotalDuration)
	assert.Equal(t, 10, doc.Sections[0].Duration)
	assert.Equal(t, 10, doc.Sections[3].Duration)
	assert.Equal(t, 20, doc.Sections[1].Duration)
	assert.Equal(t, 20, doc.Sections[2].Duration)
}

func TestNormalizeWithinToleranceKeepsDurations(t *testing.T) {
	registry := outline.NewRegistry()
	raw := &providerOutline{
		Sections: []providerSection{
			{Type: "opener", Duration: 10},
			{Type: "topic", Duration: 43},
			{Type: "closing", Duration: 10},
		},
	}
	// Total 63 vs target 60: inside the 5-minute tolerance, left alone.
	doc := normalizeOutline(registry, entity.SessionMetadata{TargetDuration: 60}, raw, 5)
	assert.Equal(t, 63, doc.TotalDuration)
	assert.Equal(t, 43, doc.Sections[1].Duration)
}

func TestNormalizeScalingRoundsWholeMinutes(t *testing.T) {
	registry := outline.NewRegistry()
	raw := &providerOutline{
		Sections: []providerSection{
			{Type: "opener", Duration: 10},
			{Type: "topic", Duration: 17},
			{Type: "discussion", Duration: 23},
			{Type: "topic", Duration: 31},
			{Type: "closing", Duration: 10},
		},
	}
	doc := normalizeOutline(registry, entity.SessionMetadata{TargetDuration: 60}, raw, 5)

	assert.Equal(t, 60, doc.TotalDuration)
	for _, s := range doc.Sections {
		assert.Greater(t, s.Duration, 0, "section %q", s.Title)
	}
	assert.Equal(t, 10, doc.Sections[0].Duration)
	assert.Equal(t, 10, doc.Sections[4].Duration)
}

func TestAudienceRange(t *testing.T) {
	assert.Equal(t, outline.AudienceRange{Min: 8, Max: 20}, audienceRange(0))
	assert.Equal(t, outline.AudienceRange{Min: 8, Max: 16}, audienceRange(12))
	assert.Equal(t, outline.AudienceRange{Min: 2, Max: 7}, audienceRange(3))
}
