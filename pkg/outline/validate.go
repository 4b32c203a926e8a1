package outline

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationResult carries non-fatal validation findings as data. Validate
// never fails; callers inspect IsValid and the error list.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// ValidateOptions tunes target-duration checking. A zero TargetDuration
// skips the duration-vs-target check entirely.
type ValidateOptions struct {
	TargetDuration    int
	DurationTolerance int // minutes of allowed deviation from the target
}

// Validate checks the document's structural invariants: protected section
// types present exactly once, id uniqueness, dense positions, positive
// durations, per-type required fields populated, optional fields within the
// type's schema, and (optionally) total duration near a target.
func (d *Document) Validate(opts ValidateOptions) ValidationResult {
	var errs []string

	seenIds := make(map[uuid.UUID]int)
	typeCounts := make(map[SectionType]int)
	total := 0

	for i, s := range d.Sections {
		typeCounts[s.Type]++
		total += s.Duration

		if prev, dup := seenIds[s.Id]; dup {
			errs = append(errs, fmt.Sprintf("duplicate section id %s at positions %d and %d", s.Id, prev+1, i+1))
		}
		seenIds[s.Id] = i

		if s.Position != i+1 {
			errs = append(errs, fmt.Sprintf("section %q has position %d, expected %d", s.Title, s.Position, i+1))
		}
		if s.Duration <= 0 {
			errs = append(errs, fmt.Sprintf("section %q has non-positive duration %d", s.Title, s.Duration))
		}

		spec, known := d.registry.Lookup(s.Type)
		if !known {
			errs = append(errs, fmt.Sprintf("section %q has unknown type %q", s.Title, s.Type))
			continue
		}

		for _, required := range spec.RequiredFields {
			if !fieldPopulated(s, required) {
				errs = append(errs, fmt.Sprintf("section %q is missing required field %q", s.Title, required))
			}
		}
		for _, populated := range s.PopulatedOptionalFields() {
			if !d.registry.FieldAvailable(s.Type, populated) {
				errs = append(errs, fmt.Sprintf("section %q carries field %q not available for type %q", s.Title, populated, s.Type))
			}
		}
	}

	for _, t := range d.registry.ProtectedTypes() {
		switch n := typeCounts[t]; {
		case n == 0:
			errs = append(errs, fmt.Sprintf("outline is missing a %s section", t))
		case n > 1:
			errs = append(errs, fmt.Sprintf("outline has %d %s sections, expected exactly one", n, t))
		}
	}

	if d.TotalDuration != total {
		errs = append(errs, fmt.Sprintf("totalDuration %d does not match section sum %d", d.TotalDuration, total))
	}

	if opts.TargetDuration > 0 {
		deviation := total - opts.TargetDuration
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation > opts.DurationTolerance {
			errs = append(errs, fmt.Sprintf("totalDuration %d deviates from target %d by more than %d minutes",
				total, opts.TargetDuration, opts.DurationTolerance))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func fieldPopulated(s Section, field string) bool {
	for _, f := range s.PopulatedOptionalFields() {
		if f == field {
			return true
		}
	}
	return false
}
