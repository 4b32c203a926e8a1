package outline

import (
	"time"

	"github.com/google/uuid"
)

// LegacyRecord is the historical fixed five-slot outline shape. Records
// written after the flexible-section migration carry a populated Sections
// list instead of slots.
type LegacyRecord struct {
	Sections []Section `json:"sections,omitempty"`

	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	TotalDuration int    `json:"totalDuration,omitempty"`

	ConvertedFromLegacy bool       `json:"convertedFromLegacy,omitempty"`
	ConvertedAt         *time.Time `json:"convertedAt,omitempty"`

	Opener               *LegacySlot `json:"opener,omitempty"`
	Topic1               *LegacySlot `json:"topic1,omitempty"`
	Topic2               *LegacySlot `json:"topic2,omitempty"`
	InspirationalContent *LegacySlot `json:"inspirationalContent,omitempty"`
	Closing              *LegacySlot `json:"closing,omitempty"`
}

// LegacySlot is one of the five fixed slots. Only some fields are populated
// per slot: engagementType on topic2, type/mediaUrl on inspirationalContent,
// keyTakeaways/actionItems on closing.
type LegacySlot struct {
	Title              string   `json:"title,omitempty"`
	Description        string   `json:"description,omitempty"`
	Duration           int      `json:"duration,omitempty"`
	LearningObjectives []string `json:"learningObjectives,omitempty"`
	MaterialsNeeded    []string `json:"materialsNeeded,omitempty"`
	EngagementType     string   `json:"engagementType,omitempty"`
	Type               string   `json:"type,omitempty"`
	MediaUrl           string   `json:"mediaUrl,omitempty"`
	KeyTakeaways       []string `json:"keyTakeaways,omitempty"`
	ActionItems        []string `json:"actionItems,omitempty"`
}

// Fixed field-mapping tables for the one-way migration. Unknown source
// values fall through to the table's zero-key entry.

var legacyExerciseTypeMap = map[string]string{
	"discussion": "discussion",
	"activity":   "activity",
	"workshop":   "workshop",
	"case-study": "case-study",
	"role-play":  "role-play",
	"":           "activity",
}

var legacyEngagementMap = map[string]string{
	"discussion": "full-group",
	"activity":   "small-groups",
	"workshop":   "small-groups",
	"case-study": "pairs",
	"role-play":  "pairs",
	"":           "small-groups",
}

var legacyInspirationTypeMap = map[string]string{
	"video":      "video",
	"story":      "story",
	"quote":      "quote",
	"case-study": "case-study",
	"":           "video",
}

func mapLegacyValue(table map[string]string, value string) string {
	if mapped, ok := table[value]; ok {
		return mapped
	}
	return table[""]
}

// ConvertLegacy migrates a fixed five-slot record into a flexible document.
// A record that already carries a sections list is returned as-is (the
// migration is idempotent). Absent slots are skipped and the remaining
// sections get compacted positions so converted documents satisfy the same
// density invariant as freshly generated ones.
func ConvertLegacy(r *Registry, record LegacyRecord) *Document {
	doc := NewDocument(r)
	doc.SuggestedTitle = record.Title
	doc.SuggestedDescription = record.Description

	if len(record.Sections) > 0 {
		doc.Sections = make([]Section, len(record.Sections))
		for i, s := range record.Sections {
			doc.Sections[i] = s.Clone()
		}
		doc.ConvertedFromLegacy = record.ConvertedFromLegacy
		doc.ConvertedAt = record.ConvertedAt
		doc.normalize()
		return doc
	}

	// Slots in their fixed original order: opener=1, topic1=2,
	// topic2-as-exercise=3, inspirationalContent=4, closing=5.
	if record.Opener != nil {
		doc.Sections = append(doc.Sections, convertSlot(r, TypeOpener, *record.Opener))
	}
	if record.Topic1 != nil {
		doc.Sections = append(doc.Sections, convertSlot(r, TypeTopic, *record.Topic1))
	}
	if record.Topic2 != nil {
		s := convertSlot(r, TypeExercise, *record.Topic2)
		s.ExerciseType = mapLegacyValue(legacyExerciseTypeMap, record.Topic2.EngagementType)
		s.EngagementType = mapLegacyValue(legacyEngagementMap, record.Topic2.EngagementType)
		doc.Sections = append(doc.Sections, s)
	}
	if record.InspirationalContent != nil {
		s := convertSlot(r, TypeInspiration, *record.InspirationalContent)
		s.InspirationType = mapLegacyValue(legacyInspirationTypeMap, record.InspirationalContent.Type)
		s.MediaUrl = record.InspirationalContent.MediaUrl
		doc.Sections = append(doc.Sections, s)
	}
	if record.Closing != nil {
		s := convertSlot(r, TypeClosing, *record.Closing)
		s.KeyTakeaways = cloneStrings(record.Closing.KeyTakeaways)
		s.ActionItems = cloneStrings(record.Closing.ActionItems)
		doc.Sections = append(doc.Sections, s)
	}

	now := time.Now().UTC()
	doc.ConvertedFromLegacy = true
	doc.ConvertedAt = &now
	doc.normalize()
	return doc
}

// convertSlot maps the slot's scalar fields onto a section of the given
// type, backfilling missing values from the registry defaults.
func convertSlot(r *Registry, t SectionType, slot LegacySlot) Section {
	spec, _ := r.Lookup(t)

	s := Section{
		Id:            uuid.New(),
		Type:          t,
		Title:         slot.Title,
		Duration:      slot.Duration,
		Description:   slot.Description,
		IsRequired:    spec.IsProtected,
		IsCollapsible: spec.IsCollapsible,
	}
	if s.Title == "" {
		s.Title = spec.DefaultTitle
	}
	if s.Duration <= 0 {
		s.Duration = spec.DefaultDuration
	}
	if len(slot.LearningObjectives) > 0 && r.FieldAvailable(t, FieldLearningObjectives) {
		s.LearningObjectives = cloneStrings(slot.LearningObjectives)
	}
	if len(slot.MaterialsNeeded) > 0 && r.FieldAvailable(t, FieldMaterialsNeeded) {
		s.MaterialsNeeded = cloneStrings(slot.MaterialsNeeded)
	}
	return s
}

// AsRecord renders a document back into the flexible record shape, used
// when persisting a converted outline over its legacy source.
func (d *Document) AsRecord() LegacyRecord {
	sections := make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		sections[i] = s.Clone()
	}
	return LegacyRecord{
		Sections:            sections,
		Title:               d.SuggestedTitle,
		Description:         d.SuggestedDescription,
		TotalDuration:       d.TotalDuration,
		ConvertedFromLegacy: d.ConvertedFromLegacy,
		ConvertedAt:         d.ConvertedAt,
	}
}
