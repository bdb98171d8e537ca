package models

// Credentials is the shared streaming account supplied by a group leader.
// The password is kept sealed; see package secret.
type Credentials struct {
	AccountID      string
	SealedPassword []byte
}

// IsZero reports whether no credentials were supplied.
func (c Credentials) IsZero() bool {
	return c.AccountID == "" && len(c.SealedPassword) == 0
}

// WaitingEntry is one user's intent to share one service.
// It is created on admission and deleted on cancellation or when its group
// completes; a later admission creates a new entry.
type WaitingEntry struct {
	// ID is assigned by the store. IDs increase with insertion order, which
	// makes them the creation order used for fair selection.
	ID int64

	UserID      int64
	ServiceType ServiceType
	Leader      bool

	// Credentials is only set on leader entries.
	Credentials Credentials

	// CreatedAt is the Unix timestamp of admission.
	CreatedAt int64
}

// SharingGroup is a leader plus exactly Quorum(ServiceType) non-leaders.
// It only exists while a room is being formed.
type SharingGroup struct {
	ServiceType ServiceType
	Leader      WaitingEntry
	Members     []WaitingEntry
}

// Entries returns the non-leaders followed by the leader.
func (g *SharingGroup) Entries() []WaitingEntry {
	entries := make([]WaitingEntry, 0, len(g.Members)+1)
	entries = append(entries, g.Members...)
	return append(entries, g.Leader)
}

// EntryIDs returns the waiting entry IDs of every member, leader last.
func (g *SharingGroup) EntryIDs() []int64 {
	entries := g.Entries()
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// UserIDs returns the user IDs of every member, leader last.
func (g *SharingGroup) UserIDs() []int64 {
	entries := g.Entries()
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.UserID
	}
	return ids
}
