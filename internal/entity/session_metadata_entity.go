package entity

// SessionMetadata is the immutable input to outline generation, owned by
// the caller. Category and Topics also drive corpus retrieval.
type SessionMetadata struct {
	Category         string
	DesiredOutcome   string
	Audience         string
	Tone             string
	Topics           []string
	TargetDuration   int // minutes
	ParticipantCount int // hint, 0 when unknown
}
