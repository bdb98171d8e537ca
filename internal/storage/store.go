// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/ottshare/internal/models"
)

// UserStore is the user directory.
type UserStore interface {
	// CreateUser inserts a user and populates user.ID.
	// Returns models.ErrUserExists if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername returns models.ErrUserNotFound if absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID returns models.ErrUserNotFound if absent.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// WaitingStore is the waiting pool.
type WaitingStore interface {
	// CreateEntry inserts a waiting entry and populates entry.ID.
	CreateEntry(ctx context.Context, entry *models.WaitingEntry) error

	// DeleteEntry removes one entry. Returns models.ErrEntryNotFound if absent.
	DeleteEntry(ctx context.Context, id int64) error

	// FindEntryIDByUser returns the earliest waiting entry of the user.
	// found is false when the user is not waiting.
	FindEntryIDByUser(ctx context.Context, userID int64) (id int64, found bool, err error)

	// ListEntries returns every waiting entry of a service, oldest first.
	ListEntries(ctx context.Context, serviceType models.ServiceType) ([]models.WaitingEntry, error)
}

// RoomStore holds formed rooms.
type RoomStore interface {
	// GetRoom returns models.ErrRoomNotFound if absent.
	GetRoom(ctx context.Context, id string) (*models.Room, error)

	// ListRoomsByUser returns the rooms a user belongs to, newest first.
	ListRoomsByUser(ctx context.Context, userID int64) ([]*models.Room, error)
}

// MatchTx is the view of the store available inside a formation
// transaction. Everything done through it commits or rolls back together.
type MatchTx interface {
	// ListNonLeaders returns at most limit non-leader entries for the
	// service, oldest first.
	ListNonLeaders(ctx context.Context, serviceType models.ServiceType, limit int) ([]models.WaitingEntry, error)

	// FindLeader returns the oldest leader entry for the service, or nil.
	FindLeader(ctx context.Context, serviceType models.ServiceType) (*models.WaitingEntry, error)

	// DeleteEntries removes all given entries. If any of them is already
	// gone it returns models.ErrConflict.
	DeleteEntries(ctx context.Context, ids []int64) error

	// CreateRoom inserts the room row, populating room.ID and
	// room.CreatedAt when unset. Members are attached separately.
	CreateRoom(ctx context.Context, room *models.Room) error

	// GetRoom reads a room back inside the transaction.
	GetRoom(ctx context.Context, id string) (*models.Room, error)

	// AddRoomMembers records each user as a member of the room.
	AddRoomMembers(ctx context.Context, roomID string, userIDs []int64) error
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	WaitingStore
	RoomStore

	// RunInTx runs fn inside one write transaction. The transaction commits
	// if fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(tx MatchTx) error) error

	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
