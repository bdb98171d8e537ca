package models

import "errors"

// Sentinel errors shared by the store, the matching service and the
// transports. Transports map them to status codes with errors.Is.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("username already registered")
	ErrEntryNotFound = errors.New("waiting entry not found")
	ErrRoomNotFound  = errors.New("room not found")

	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedServiceType means a service tag has no quorum configured.
	// Inside the matcher this is a programming error.
	ErrUnsupportedServiceType = errors.New("unsupported ott service type")

	// ErrConflict is returned when the rows selected for a group changed
	// before they could be deleted. The whole formation is rolled back.
	ErrConflict = errors.New("waiting pool changed during group formation")
)
