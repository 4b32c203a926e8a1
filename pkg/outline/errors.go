package outline

import "errors"

var (
	// ErrRequiredSection is returned when an operation would remove a
	// section marked as required.
	ErrRequiredSection = errors.New("section is required and cannot be removed")

	// ErrInvalidPermutation is returned by ReorderSections when the given
	// ids are not exactly a permutation of the document's current ids.
	ErrInvalidPermutation = errors.New("ordered ids are not a permutation of document sections")

	// ErrSectionNotFound is returned when the target section id does not
	// exist in the document.
	ErrSectionNotFound = errors.New("section not found")

	// ErrUnknownSectionType is returned for a type with no registry entry.
	ErrUnknownSectionType = errors.New("unknown section type")

	// ErrFieldNotAvailable is returned by UpdateSection when a field is not
	// declared available for the section's type.
	ErrFieldNotAvailable = errors.New("field not available for section type")

	// ErrInvalidPosition is returned for an insert position outside 1..N+1.
	ErrInvalidPosition = errors.New("position out of range")
)
