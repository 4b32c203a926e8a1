package generation

import "errors"

var (
	// ErrAllCandidatesFailed is the terminal failure of a generation call:
	// every persona's request exhausted its retry.
	ErrAllCandidatesFailed = errors.New("all persona generation requests failed")

	// ErrInvalidOutput marks a provider response that could not be parsed
	// into an outline. Recoverable per persona: the candidate is dropped.
	ErrInvalidOutput = errors.New("provider returned invalid outline output")
)
