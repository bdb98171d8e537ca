package models

// OutcomeStatus distinguishes the results of a group formation attempt.
type OutcomeStatus int

const (
	// OutcomeIncompleteNonLeaders means fewer than the quorum of non-leaders are waiting.
	OutcomeIncompleteNonLeaders OutcomeStatus = iota
	// OutcomeIncompleteNoLeader means the non-leaders are there but no leader is.
	OutcomeIncompleteNoLeader
	// OutcomeFormed means a room was created and its members left the pool.
	OutcomeFormed
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeFormed:
		return "ROOM_CREATED"
	case OutcomeIncompleteNonLeaders:
		return "INCOMPLETE_NON_LEADERS"
	case OutcomeIncompleteNoLeader:
		return "INCOMPLETE_NO_LEADER"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the result of a formation attempt. Room is set only when
// Status is OutcomeFormed.
type Outcome struct {
	Status OutcomeStatus
	Room   *Room
}

// Formed reports whether a room was created.
func (o Outcome) Formed() bool {
	return o.Status == OutcomeFormed
}

// Message returns the informational text used by the REST surface.
func (o Outcome) Message() string {
	switch o.Status {
	case OutcomeFormed:
		return "Room created successfully."
	case OutcomeIncompleteNoLeader:
		return "group incomplete (no leader)"
	default:
		return "group incomplete (non-leaders)"
	}
}
