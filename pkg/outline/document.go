package outline

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// AudienceRange is the recommended participant-count band for an outline.
type AudienceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Document is an ordered, polymorphic collection of sections together with
// derived totals and generation provenance.
//
// Invariants held after every operation:
//  1. Positions are exactly 1..N in slice order, no gaps or duplicates.
//  2. TotalDuration equals the sum of section durations.
//  3. Sections marked required at creation stay required and cannot be removed.
//  4. Section ids are unique within the document.
type Document struct {
	Sections                []Section     `json:"sections"`
	TotalDuration           int           `json:"totalDuration"`
	SuggestedTitle          string        `json:"suggestedTitle,omitempty"`
	SuggestedDescription    string        `json:"suggestedDescription,omitempty"`
	Difficulty              string        `json:"difficulty,omitempty"` // beginner | intermediate | advanced
	RecommendedAudienceSize AudienceRange `json:"recommendedAudienceSize,omitempty"`
	FallbackUsed            bool          `json:"fallbackUsed,omitempty"`
	GeneratedAt             time.Time     `json:"generatedAt,omitempty"`
	ConvertedFromLegacy     bool          `json:"convertedFromLegacy,omitempty"`
	ConvertedAt             *time.Time    `json:"convertedAt,omitempty"`

	registry *Registry
}

// NewDocument builds an empty document bound to a registry.
func NewDocument(r *Registry) *Document {
	return &Document{registry: r, GeneratedAt: time.Now().UTC()}
}

// WithRegistry rebinds the registry after deserialization. The registry is
// not part of the JSON shape, so loaders must call this before mutating.
func (d *Document) WithRegistry(r *Registry) *Document {
	d.registry = r
	return d
}

// Clone returns a deep copy sharing only the registry.
func (d *Document) Clone() *Document {
	c := *d
	c.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		c.Sections[i] = s.Clone()
	}
	if d.ConvertedAt != nil {
		t := *d.ConvertedAt
		c.ConvertedAt = &t
	}
	return &c
}

// Refresh reassigns dense positions and re-derives TotalDuration. Builders
// that assemble Sections directly call this before handing the document out.
func (d *Document) Refresh() {
	d.normalize()
}

// normalize reassigns dense positions and re-derives the total duration.
func (d *Document) normalize() {
	total := 0
	for i := range d.Sections {
		d.Sections[i].Position = i + 1
		total += d.Sections[i].Duration
	}
	d.TotalDuration = total
}

func (d *Document) indexOf(id uuid.UUID) int {
	for i := range d.Sections {
		if d.Sections[i].Id == id {
			return i
		}
	}
	return -1
}

// Section returns the section with the given id, or nil.
func (d *Document) Section(id uuid.UUID) *Section {
	if i := d.indexOf(id); i >= 0 {
		return &d.Sections[i]
	}
	return nil
}

// AddSection inserts a default section of the given type. atPosition is
// 1-based; nil appends at the end. The receiver is never mutated.
func (d *Document) AddSection(t SectionType, atPosition *int) (*Document, error) {
	section, err := NewSection(d.registry, t)
	if err != nil {
		return nil, err
	}

	idx := len(d.Sections)
	if atPosition != nil {
		if *atPosition < 1 || *atPosition > len(d.Sections)+1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidPosition, *atPosition)
		}
		idx = *atPosition - 1
	}

	next := d.Clone()
	next.Sections = append(next.Sections, Section{})
	copy(next.Sections[idx+1:], next.Sections[idx:])
	next.Sections[idx] = section
	next.normalize()
	return next, nil
}

// RemoveSection deletes a section and compacts positions. Removing a
// required section fails with ErrRequiredSection.
func (d *Document) RemoveSection(id uuid.UUID) (*Document, error) {
	idx := d.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}
	if d.Sections[idx].IsRequired {
		return nil, fmt.Errorf("%w: %s", ErrRequiredSection, d.Sections[idx].Title)
	}

	next := d.Clone()
	next.Sections = append(next.Sections[:idx], next.Sections[idx+1:]...)
	next.normalize()
	return next, nil
}

// ReorderSections reassigns positions 1..N in the order given. orderedIds
// must be exactly a permutation of the current section ids.
func (d *Document) ReorderSections(orderedIds []uuid.UUID) (*Document, error) {
	if len(orderedIds) != len(d.Sections) {
		return nil, fmt.Errorf("%w: got %d ids, document has %d sections",
			ErrInvalidPermutation, len(orderedIds), len(d.Sections))
	}

	seen := make(map[uuid.UUID]bool, len(orderedIds))
	reordered := make([]Section, 0, len(orderedIds))
	for _, id := range orderedIds {
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidPermutation, id)
		}
		seen[id] = true

		idx := d.indexOf(id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: unknown id %s", ErrInvalidPermutation, id)
		}
		reordered = append(reordered, d.Sections[idx].Clone())
	}

	next := d.Clone()
	next.Sections = reordered
	next.normalize()
	return next, nil
}

// DuplicateSection clones a section (fresh id, same content) and inserts
// the copy immediately after the source. The copy is never required: only
// sections required at creation carry that protection.
func (d *Document) DuplicateSection(id uuid.UUID) (*Document, error) {
	idx := d.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}

	dup := d.Sections[idx].Clone()
	dup.Id = uuid.New()
	dup.IsRequired = false

	next := d.Clone()
	next.Sections = append(next.Sections, Section{})
	copy(next.Sections[idx+2:], next.Sections[idx+1:])
	next.Sections[idx+1] = dup
	next.normalize()
	return next, nil
}

// UpdateSection merges the given fields into a section. Optional fields not
// declared available for the section's type fail with ErrFieldNotAvailable;
// the common fields title, duration, and description are always editable.
func (d *Document) UpdateSection(id uuid.UUID, fields map[string]any) (*Document, error) {
	idx := d.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, id)
	}

	next := d.Clone()
	target := &next.Sections[idx]
	for name, value := range fields {
		if err := setSectionField(d.registry, target, name, value); err != nil {
			return nil, err
		}
	}
	if target.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", target.Duration)
	}
	next.normalize()
	return next, nil
}

func setSectionField(r *Registry, s *Section, name string, value any) error {
	switch name {
	case "title":
		s.Title = toString(value)
		return nil
	case "description":
		s.Description = toString(value)
		return nil
	case "duration":
		n, ok := toInt(value)
		if !ok {
			return fmt.Errorf("duration must be a whole number of minutes, got %v", value)
		}
		s.Duration = n
		return nil
	case "isCollapsible":
		if b, ok := value.(bool); ok {
			s.IsCollapsible = b
			return nil
		}
		return fmt.Errorf("isCollapsible must be a bool, got %T", value)
	}

	if !r.FieldAvailable(s.Type, name) {
		return fmt.Errorf("%w: %q on type %q", ErrFieldNotAvailable, name, s.Type)
	}

	switch name {
	case FieldLearningObjectives:
		s.LearningObjectives = toStrings(value)
	case FieldMaterialsNeeded:
		s.MaterialsNeeded = toStrings(value)
	case FieldExerciseType:
		s.ExerciseType = toString(value)
	case FieldEngagementType:
		s.EngagementType = toString(value)
	case FieldInspirationType:
		s.InspirationType = toString(value)
	case FieldMediaUrl:
		s.MediaUrl = toString(value)
	case FieldKeyTakeaways:
		s.KeyTakeaways = toStrings(value)
	case FieldActionItems:
		s.ActionItems = toStrings(value)
	case FieldDiscussionPrompts:
		s.DiscussionPrompts = toStrings(value)
	default:
		return fmt.Errorf("%w: %q on type %q", ErrFieldNotAvailable, name, s.Type)
	}
	return nil
}

// JSON decoding hands numbers over as float64 and arrays as []any, so the
// coercions below accept both native and decoded shapes.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		// Durations are whole minutes; a fractional value is a caller
		// mistake, not something to truncate.
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func toStrings(v any) []string {
	switch vals := v.(type) {
	case []string:
		return cloneStrings(vals)
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			out = append(out, toString(item))
		}
		return out
	case string:
		return []string{vals}
	}
	return nil
}
