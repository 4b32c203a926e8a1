package outline

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHealthyDocument(t *testing.T) {
	doc := newTestDocument(t)
	doc, err := doc.UpdateSection(doc.Sections[2].Id, map[string]any{
		"exerciseType": "activity",
	})
	require.NoError(t, err)

	res := doc.Validate(ValidateOptions{})
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestValidateFindings(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		mutate  func(*Document)
		opts    ValidateOptions
		wantMsg string
	}{
		{
			name:    "missing opener",
			mutate:  func(d *Document) { d.Sections = d.Sections[1:] },
			wantMsg: "missing a opener section",
		},
		{
			name: "duplicate closing",
			mutate: func(d *Document) {
				extra := d.Sections[len(d.Sections)-1].Clone()
				extra.Id = uuid.New()
				d.Sections = append(d.Sections, extra)
			},
			wantMsg: "closing sections, expected exactly one",
		},
		{
			name: "duplicate id",
			mutate: func(d *Document) {
				d.Sections[1].Id = d.Sections[0].Id
			},
			wantMsg: "duplicate section id",
		},
		{
			name:    "position gap",
			mutate:  func(d *Document) { d.Sections[2].Position = 7 },
			wantMsg: "has position 7, expected 3",
		},
		{
			name:    "zero duration",
			mutate:  func(d *Document) { d.Sections[1].Duration = 0 },
			wantMsg: "non-positive duration",
		},
		{
			name:    "missing required field",
			mutate:  func(d *Document) {},
			wantMsg: "missing required field \"exerciseType\"",
		},
		{
			name: "field outside type schema",
			mutate: func(d *Document) {
				d.Sections[0].InspirationType = "video"
			},
			wantMsg: "not available for type",
		},
		{
			name:    "stale total",
			mutate:  func(d *Document) { d.TotalDuration = 999 },
			wantMsg: "does not match section sum",
		},
		{
			name:    "total off target",
			mutate:  func(d *Document) {},
			opts:    ValidateOptions{TargetDuration: 120, DurationTolerance: 5},
			wantMsg: "deviates from target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument(r)
			var err error
			for _, typ := range []SectionType{TypeOpener, TypeTopic, TypeExercise, TypeClosing} {
				doc, err = doc.AddSection(typ, nil)
				require.NoError(t, err)
			}
			tt.mutate(doc)

			res := doc.Validate(tt.opts)
			assert.False(t, res.IsValid)

			found := false
			for _, msg := range res.Errors {
				if strings.Contains(msg, tt.wantMsg) {
					found = true
					break
				}
			}
			assert.True(t, found, "expected finding containing %q, got %v", tt.wantMsg, res.Errors)
		})
	}
}

func TestValidateNeverThrows(t *testing.T) {
	// A document full of problems still yields a result, not a panic.
	r := NewRegistry()
	doc := NewDocument(r)
	doc.Sections = []Section{
		{Id: uuid.New(), Type: SectionType("mystery"), Position: 9, Duration: -5},
	}
	doc.TotalDuration = 42

	res := doc.Validate(ValidateOptions{TargetDuration: 60, DurationTolerance: 5})
	assert.False(t, res.IsValid)
	assert.NotEmpty(t, res.Errors)
}
