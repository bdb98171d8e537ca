package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/ottshare/internal/models"
)

// toConnectError maps domain errors to Connect codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrEntryNotFound),
		errors.Is(err, models.ErrRoomNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrInvalidArgument),
		errors.Is(err, models.ErrUnsupportedServiceType):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, models.ErrUserExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, models.ErrConflict):
		return connect.NewError(connect.CodeAborted, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
