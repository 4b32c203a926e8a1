package outline

import (
	"github.com/google/uuid"
)

// Section is one ordered unit of an outline. Common fields are always
// present; the optional fields a section may populate are declared by its
// type's entry in the Registry.
type Section struct {
	Id            uuid.UUID   `json:"id"`
	Type          SectionType `json:"type"`
	Position      int         `json:"position"` // 1-based, dense within the document
	Title         string      `json:"title"`
	Duration      int         `json:"duration"` // minutes, > 0
	Description   string      `json:"description,omitempty"`
	IsRequired    bool        `json:"isRequired"`
	IsCollapsible bool        `json:"isCollapsible"`

	LearningObjectives []string `json:"learningObjectives,omitempty"`
	MaterialsNeeded    []string `json:"materialsNeeded,omitempty"`
	ExerciseType       string   `json:"exerciseType,omitempty"`
	EngagementType     string   `json:"engagementType,omitempty"`
	InspirationType    string   `json:"inspirationType,omitempty"`
	MediaUrl           string   `json:"mediaUrl,omitempty"`
	KeyTakeaways       []string `json:"keyTakeaways,omitempty"`
	ActionItems        []string `json:"actionItems,omitempty"`
	DiscussionPrompts  []string `json:"discussionPrompts,omitempty"`

	// MatchedTopics holds metadata topics that overlap this section's
	// title/description, attached during generation.
	MatchedTopics []string `json:"matchedTopics,omitempty"`
}

// NewSection builds a default section of the given type from the registry
// spec. Position is left at zero; the document assigns it on insert.
func NewSection(r *Registry, t SectionType) (Section, error) {
	spec, ok := r.Lookup(t)
	if !ok {
		return Section{}, ErrUnknownSectionType
	}
	return Section{
		Id:            uuid.New(),
		Type:          t,
		Title:         spec.DefaultTitle,
		Duration:      spec.DefaultDuration,
		IsRequired:    spec.IsProtected,
		IsCollapsible: spec.IsCollapsible,
	}, nil
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	c := s
	c.LearningObjectives = cloneStrings(s.LearningObjectives)
	c.MaterialsNeeded = cloneStrings(s.MaterialsNeeded)
	c.KeyTakeaways = cloneStrings(s.KeyTakeaways)
	c.ActionItems = cloneStrings(s.ActionItems)
	c.DiscussionPrompts = cloneStrings(s.DiscussionPrompts)
	c.MatchedTopics = cloneStrings(s.MatchedTopics)
	return c
}

// PopulatedOptionalFields returns the names of optional fields this section
// actually carries, for checking against the type's available-field schema.
func (s Section) PopulatedOptionalFields() []string {
	var fields []string
	if len(s.LearningObjectives) > 0 {
		fields = append(fields, FieldLearningObjectives)
	}
	if len(s.MaterialsNeeded) > 0 {
		fields = append(fields, FieldMaterialsNeeded)
	}
	if s.ExerciseType != "" {
		fields = append(fields, FieldExerciseType)
	}
	if s.EngagementType != "" {
		fields = append(fields, FieldEngagementType)
	}
	if s.InspirationType != "" {
		fields = append(fields, FieldInspirationType)
	}
	if s.MediaUrl != "" {
		fields = append(fields, FieldMediaUrl)
	}
	if len(s.KeyTakeaways) > 0 {
		fields = append(fields, FieldKeyTakeaways)
	}
	if len(s.ActionItems) > 0 {
		fields = append(fields, FieldActionItems)
	}
	if len(s.DiscussionPrompts) > 0 {
		fields = append(fields, FieldDiscussionPrompts)
	}
	return fields
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
