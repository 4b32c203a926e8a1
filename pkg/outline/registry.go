package outline

// SectionType identifies the shape of a section and which optional
// fields it may carry.
type SectionType string

const (
	TypeOpener       SectionType = "opener"
	TypeTopic        SectionType = "topic"
	TypeExercise     SectionType = "exercise"
	TypeInspiration  SectionType = "inspiration"
	TypeClosing      SectionType = "closing"
	TypeVideo        SectionType = "video"
	TypeDiscussion   SectionType = "discussion"
	TypePresentation SectionType = "presentation"
	TypeBreak        SectionType = "break"
	TypeAssessment   SectionType = "assessment"
	TypeCustom       SectionType = "custom"
)

// Optional field names as they appear in section JSON and in partial
// update payloads. The registry uses these to declare what each type accepts.
const (
	FieldLearningObjectives = "learningObjectives"
	FieldMaterialsNeeded    = "materialsNeeded"
	FieldExerciseType       = "exerciseType"
	FieldEngagementType     = "engagementType"
	FieldInspirationType    = "inspirationType"
	FieldMediaUrl           = "mediaUrl"
	FieldKeyTakeaways       = "keyTakeaways"
	FieldActionItems        = "actionItems"
	FieldDiscussionPrompts  = "discussionPrompts"
)

// TypeSpec declares defaults and the optional-field schema for one section type.
type TypeSpec struct {
	Type            SectionType
	Label           string
	Icon            string
	DefaultDuration int      // minutes
	DefaultTitle    string
	RequiredFields  []string // optional fields that must be populated to validate
	AvailableFields []string // optional fields this type may carry
	IsProtected     bool     // structurally required in every outline (opener, closing)
	IsCollapsible   bool
}

// Registry is the declarative lookup table describing every section type.
// Both response normalization and document validation consult it; it is
// never mutated after construction.
type Registry struct {
	specs map[SectionType]TypeSpec
	order []SectionType
}

// NewRegistry builds the default section type table.
func NewRegistry() *Registry {
	specs := []TypeSpec{
		{
			Type:            TypeOpener,
			Label:           "Opening",
			Icon:            "sunrise",
			DefaultDuration: 10,
			DefaultTitle:    "Welcome & Introductions",
			IsProtected:     true,
		},
		{
			Type:            TypeTopic,
			Label:           "Topic",
			Icon:            "book-open",
			DefaultDuration: 20,
			DefaultTitle:    "Core Topic",
			AvailableFields: []string{FieldLearningObjectives, FieldMaterialsNeeded, FieldEngagementType},
			IsCollapsible:   true,
		},
		{
			Type:            TypeExercise,
			Label:           "Exercise",
			Icon:            "users",
			DefaultDuration: 25,
			DefaultTitle:    "Interactive Exercise",
			RequiredFields:  []string{FieldExerciseType},
			AvailableFields: []string{FieldExerciseType, FieldEngagementType, FieldMaterialsNeeded, FieldLearningObjectives},
			IsCollapsible:   true,
		},
		{
			Type:            TypeInspiration,
			Label:           "Inspiration",
			Icon:            "star",
			DefaultDuration: 15,
			DefaultTitle:    "Inspirational Moment",
			RequiredFields:  []string{FieldInspirationType},
			AvailableFields: []string{FieldInspirationType, FieldMediaUrl},
			IsCollapsible:   true,
		},
		{
			Type:            TypeClosing,
			Label:           "Closing",
			Icon:            "flag",
			DefaultDuration: 10,
			DefaultTitle:    "Wrap-up & Next Steps",
			AvailableFields: []string{FieldKeyTakeaways, FieldActionItems},
			IsProtected:     true,
		},
		{
			Type:            TypeVideo,
			Label:           "Video",
			Icon:            "video",
			DefaultDuration: 10,
			DefaultTitle:    "Video Segment",
			RequiredFields:  []string{FieldMediaUrl},
			AvailableFields: []string{FieldMediaUrl},
			IsCollapsible:   true,
		},
		{
			Type:            TypeDiscussion,
			Label:           "Discussion",
			Icon:            "message-circle",
			DefaultDuration: 15,
			DefaultTitle:    "Group Discussion",
			AvailableFields: []string{FieldDiscussionPrompts, FieldEngagementType},
			IsCollapsible:   true,
		},
		{
			Type:            TypePresentation,
			Label:           "Presentation",
			Icon:            "monitor",
			DefaultDuration: 20,
			DefaultTitle:    "Presentation",
			AvailableFields: []string{FieldMaterialsNeeded, FieldMediaUrl},
			IsCollapsible:   true,
		},
		{
			Type:            TypeBreak,
			Label:           "Break",
			Icon:            "coffee",
			DefaultDuration: 10,
			DefaultTitle:    "Break",
		},
		{
			Type:            TypeAssessment,
			Label:           "Assessment",
			Icon:            "check-square",
			DefaultDuration: 15,
			DefaultTitle:    "Knowledge Check",
			AvailableFields: []string{FieldMaterialsNeeded},
			IsCollapsible:   true,
		},
		{
			Type:            TypeCustom,
			Label:           "Custom",
			Icon:            "edit",
			DefaultDuration: 15,
			DefaultTitle:    "Custom Section",
			AvailableFields: []string{
				FieldLearningObjectives, FieldMaterialsNeeded, FieldExerciseType,
				FieldEngagementType, FieldInspirationType, FieldMediaUrl,
				FieldKeyTakeaways, FieldActionItems, FieldDiscussionPrompts,
			},
			IsCollapsible: true,
		},
	}

	r := &Registry{specs: make(map[SectionType]TypeSpec, len(specs))}
	for _, s := range specs {
		r.specs[s.Type] = s
		r.order = append(r.order, s.Type)
	}
	return r
}

// Lookup returns the spec for a type, with ok=false for unknown types.
func (r *Registry) Lookup(t SectionType) (TypeSpec, bool) {
	s, ok := r.specs[t]
	return s, ok
}

// Types returns all registered types in declaration order.
func (r *Registry) Types() []SectionType {
	out := make([]SectionType, len(r.order))
	copy(out, r.order)
	return out
}

// FieldAvailable reports whether a type may carry the given optional field.
func (r *Registry) FieldAvailable(t SectionType, field string) bool {
	spec, ok := r.specs[t]
	if !ok {
		return false
	}
	for _, f := range spec.AvailableFields {
		if f == field {
			return true
		}
	}
	return false
}

// ProtectedTypes returns the types every outline must contain (opener, closing).
func (r *Registry) ProtectedTypes() []SectionType {
	var out []SectionType
	for _, t := range r.order {
		if r.specs[t].IsProtected {
			out = append(out, t)
		}
	}
	return out
}
