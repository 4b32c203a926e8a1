package generation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"training-builder-be/internal/entity"
	"training-builder-be/pkg/outline"
)

// providerOutline is the structured candidate shape the content-generation
// provider returns.
type providerOutline struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Difficulty  string            `json:"difficulty"`
	Sections    []providerSection `json:"sections"`
}

type providerSection struct {
	Type               string   `json:"type"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Duration           int      `json:"duration"`
	LearningObjectives []string `json:"learningObjectives"`
	MaterialsNeeded    []string `json:"materialsNeeded"`
	ExerciseType       string   `json:"exerciseType"`
	EngagementType     string   `json:"engagementType"`
	InspirationType    string   `json:"inspirationType"`
	MediaUrl           string   `json:"mediaUrl"`
	KeyTakeaways       []string `json:"keyTakeaways"`
	ActionItems        []string `json:"actionItems"`
	DiscussionPrompts  []string `json:"discussionPrompts"`
}

// parseProviderOutline decodes the provider's response, tolerating the
// markdown code fences smaller models like to wrap JSON in.
func parseProviderOutline(raw string) (*providerOutline, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var out providerOutline
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if len(out.Sections) == 0 {
		return nil, fmt.Errorf("%w: no sections", ErrInvalidOutput)
	}
	return &out, nil
}

// normalizeOutline maps a provider response into a canonical document:
// registry defaults fill missing fields, the structurally required opener
// and closing are synthesized when omitted, topics are matched, and the
// total duration is scaled toward the metadata target.
func normalizeOutline(
	registry *outline.Registry,
	metadata entity.SessionMetadata,
	raw *providerOutline,
	tolerance int,
) *outline.Document {
	doc := outline.NewDocument(registry)
	doc.SuggestedTitle = raw.Title
	doc.SuggestedDescription = raw.Description
	doc.Difficulty = normalizeDifficulty(raw.Difficulty)
	doc.RecommendedAudienceSize = audienceRange(metadata.ParticipantCount)
	doc.GeneratedAt = time.Now().UTC()

	for _, ps := range raw.Sections {
		doc.Sections = append(doc.Sections, normalizeSection(registry, ps))
	}

	ensureProtectedSections(registry, doc)
	attachTopicMatches(doc, metadata.Topics)
	scaleToTarget(doc, metadata.TargetDuration, tolerance)

	doc.Refresh()
	return doc
}

func normalizeSection(registry *outline.Registry, ps providerSection) outline.Section {
	t := outline.SectionType(strings.ToLower(strings.TrimSpace(ps.Type)))
	spec, known := registry.Lookup(t)
	if !known {
		t = outline.TypeCustom
		spec, _ = registry.Lookup(t)
	}

	s, _ := outline.NewSection(registry, t)
	if ps.Title != "" {
		s.Title = ps.Title
	}
	if ps.Duration > 0 {
		s.Duration = ps.Duration
	}
	s.Description = ps.Description

	// Only carry optional fields the type declares available; everything
	// else the provider invented is dropped.
	if registry.FieldAvailable(t, outline.FieldLearningObjectives) {
		s.LearningObjectives = ps.LearningObjectives
	}
	if registry.FieldAvailable(t, outline.FieldMaterialsNeeded) {
		s.MaterialsNeeded = ps.MaterialsNeeded
	}
	if registry.FieldAvailable(t, outline.FieldExerciseType) {
		s.ExerciseType = ps.ExerciseType
		if s.ExerciseType == "" && requiresField(spec, outline.FieldExerciseType) {
			s.ExerciseType = "activity"
		}
	}
	if registry.FieldAvailable(t, outline.FieldEngagementType) {
		s.EngagementType = ps.EngagementType
	}
	if registry.FieldAvailable(t, outline.FieldInspirationType) {
		s.InspirationType = ps.InspirationType
		if s.InspirationType == "" && requiresField(spec, outline.FieldInspirationType) {
			s.InspirationType = "video"
		}
	}
	if registry.FieldAvailable(t, outline.FieldMediaUrl) {
		s.MediaUrl = ps.MediaUrl
	}
	if registry.FieldAvailable(t, outline.FieldKeyTakeaways) {
		s.KeyTakeaways = ps.KeyTakeaways
	}
	if registry.FieldAvailable(t, outline.FieldActionItems) {
		s.ActionItems = ps.ActionItems
	}
	if registry.FieldAvailable(t, outline.FieldDiscussionPrompts) {
		s.DiscussionPrompts = ps.DiscussionPrompts
	}
	return s
}

func requiresField(spec outline.TypeSpec, field string) bool {
	for _, f := range spec.RequiredFields {
		if f == field {
			return true
		}
	}
	return false
}

// ensureProtectedSections synthesizes a minimal opener at the front and/or
// closing at the end when the provider omitted them.
func ensureProtectedSections(registry *outline.Registry, doc *outline.Document) {
	hasOpener, hasClosing := false, false
	for i := range doc.Sections {
		switch doc.Sections[i].Type {
		case outline.TypeOpener:
			hasOpener = true
		case outline.TypeClosing:
			hasClosing = true
		}
	}

	if !hasOpener {
		s, _ := outline.NewSection(registry, outline.TypeOpener)
		doc.Sections = append([]outline.Section{s}, doc.Sections...)
	}
	if !hasClosing {
		s, _ := outline.NewSection(registry, outline.TypeClosing)
		doc.Sections = append(doc.Sections, s)
	}
}

// attachTopicMatches records metadata topics that overlap a section's title
// or description, case-insensitively.
func attachTopicMatches(doc *outline.Document, topics []string) {
	for i := range doc.Sections {
		haystack := strings.ToLower(doc.Sections[i].Title + " " + doc.Sections[i].Description)
		for _, topic := range topics {
			t := strings.ToLower(strings.TrimSpace(topic))
			if t == "" {
				continue
			}
			if strings.Contains(haystack, t) {
				doc.Sections[i].MatchedTopics = append(doc.Sections[i].MatchedTopics, topic)
			}
		}
	}
}

// scaleToTarget proportionally rescales non-required section durations when
// the outline's total deviates from the target by more than the tolerance.
// Required sections (opener, closing) are never touched. Scaled durations
// round to whole minutes with a floor of one; any rounding residual lands
// on the longest scalable section so the total hits the target exactly.
func scaleToTarget(doc *outline.Document, target, tolerance int) {
	if target <= 0 {
		return
	}

	total, fixed := 0, 0
	for _, s := range doc.Sections {
		total += s.Duration
		if s.IsRequired {
			fixed += s.Duration
		}
	}

	deviation := total - target
	if deviation < 0 {
		deviation = -deviation
	}
	if deviation <= tolerance {
		return
	}

	scalable := total - fixed
	budget := target - fixed
	if scalable <= 0 || budget <= 0 {
		// Nothing to scale, or required sections alone exceed the target.
		return
	}

	factor := float64(budget) / float64(scalable)
	newTotal := fixed
	largest := -1
	for i := range doc.Sections {
		if doc.Sections[i].IsRequired {
			continue
		}
		scaled := int(float64(doc.Sections[i].Duration)*factor + 0.5)
		if scaled < 1 {
			scaled = 1
		}
		doc.Sections[i].Duration = scaled
		newTotal += scaled
		if largest < 0 || doc.Sections[i].Duration > doc.Sections[largest].Duration {
			largest = i
		}
	}

	if residual := target - newTotal; residual != 0 && largest >= 0 {
		adjusted := doc.Sections[largest].Duration + residual
		if adjusted >= 1 {
			doc.Sections[largest].Duration = adjusted
		}
	}
}

func normalizeDifficulty(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "beginner", "intermediate", "advanced":
		return strings.ToLower(strings.TrimSpace(d))
	}
	return "intermediate"
}

func audienceRange(participantHint int) outline.AudienceRange {
	if participantHint <= 0 {
		return outline.AudienceRange{Min: 8, Max: 20}
	}
	min := participantHint - 4
	if min < 2 {
		min = 2
	}
	return outline.AudienceRange{Min: min, Max: participantHint + 4}
}
