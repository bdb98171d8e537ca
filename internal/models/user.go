package models

import "time"

// User represents a registered user in the directory.
// Matching only needs to resolve a username to an ID.
type User struct {
	// ID is the unique identifier for the user (auto-increment).
	ID int64

	// Username is the unique login name used by admission requests.
	Username string

	// DisplayName is the human-readable name shown to room members.
	DisplayName string

	// CreatedAt is the Unix timestamp when the user was registered.
	CreatedAt int64
}

// NewUser creates a new user with the creation timestamp set.
// The ID is assigned by the store.
func NewUser(username, displayName string) *User {
	if displayName == "" {
		displayName = username
	}
	return &User{
		Username:    username,
		DisplayName: displayName,
		CreatedAt:   time.Now().Unix(),
	}
}
