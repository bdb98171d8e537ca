package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/ottshare/internal/matching"
	"github.com/mmynk/ottshare/internal/models"
	"github.com/mmynk/ottshare/pkg/api"
)

// MatchingService implements the Connect MatchingService
type MatchingService struct {
	api.UnimplementedMatchingServiceHandler
	matcher *matching.Service
}

// NewMatchingService creates a new MatchingService backed by the matcher.
func NewMatchingService(matcher *matching.Service) *MatchingService {
	return &MatchingService{matcher: matcher}
}

// Admit adds the user to the waiting pool and tries to form a room.
// Incomplete groups are reported through Status, not as errors.
func (s *MatchingService) Admit(ctx context.Context, req *connect.Request[api.AdmitRequest]) (*connect.Response[api.AdmitResponse], error) {
	slog.Info("Admit request received",
		"username", req.Msg.Username,
		"service_type", req.Msg.ServiceType,
		"leader", req.Msg.Leader,
	)

	serviceType, err := models.ParseServiceType(req.Msg.ServiceType)
	if err != nil {
		return nil, toConnectError(err)
	}

	entry, outcome, err := s.matcher.AdmitAndMatch(ctx, matching.AdmitRequest{
		Username:    req.Msg.Username,
		ServiceType: serviceType,
		Leader:      req.Msg.Leader,
		AccountID:   req.Msg.AccountId,
		Password:    req.Msg.Password,
	})
	if err != nil {
		slog.Error("Admit failed", "username", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.AdmitResponse{
		EntryId: entry.ID,
		Status:  outcome.Status.String(),
		Message: outcome.Message(),
	}
	if outcome.Formed() {
		resp.Room = roomToAPI(outcome.Room)
	}

	return connect.NewResponse(resp), nil
}

// Cancel removes a waiting entry.
func (s *MatchingService) Cancel(ctx context.Context, req *connect.Request[api.CancelRequest]) (*connect.Response[api.CancelResponse], error) {
	slog.Info("Cancel request received", "entry_id", req.Msg.EntryId)

	if err := s.matcher.Cancel(ctx, req.Msg.EntryId); err != nil {
		slog.Error("Cancel failed", "entry_id", req.Msg.EntryId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CancelResponse{}), nil
}

// LookupEntry returns the user's waiting entry ID, or 0 if none.
func (s *MatchingService) LookupEntry(ctx context.Context, req *connect.Request[api.LookupEntryRequest]) (*connect.Response[api.LookupEntryResponse], error) {
	id, found, err := s.matcher.LookupEntryID(ctx, req.Msg.UserId)
	if err != nil {
		slog.Error("LookupEntry failed", "user_id", req.Msg.UserId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.LookupEntryResponse{EntryId: id, Found: found}), nil
}

// GetRoom retrieves a room, including the shared account password.
func (s *MatchingService) GetRoom(ctx context.Context, req *connect.Request[api.GetRoomRequest]) (*connect.Response[api.GetRoomResponse], error) {
	if req.Msg.RoomId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("room_id required"))
	}

	view, err := s.matcher.Room(ctx, req.Msg.RoomId)
	if err != nil {
		slog.Error("GetRoom failed", "room_id", req.Msg.RoomId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetRoomResponse{Room: roomViewToAPI(view)}), nil
}

// ListRooms retrieves every room a user belongs to.
func (s *MatchingService) ListRooms(ctx context.Context, req *connect.Request[api.ListRoomsRequest]) (*connect.Response[api.ListRoomsResponse], error) {
	views, err := s.matcher.RoomsForUser(ctx, req.Msg.UserId)
	if err != nil {
		slog.Error("ListRooms failed", "user_id", req.Msg.UserId, "error", err)
		return nil, toConnectError(err)
	}

	rooms := make([]*api.Room, len(views))
	for i, view := range views {
		rooms[i] = roomViewToAPI(view)
	}

	return connect.NewResponse(&api.ListRoomsResponse{Rooms: rooms}), nil
}

// ListPool returns the waiting entries for one service type.
func (s *MatchingService) ListPool(ctx context.Context, req *connect.Request[api.ListPoolRequest]) (*connect.Response[api.ListPoolResponse], error) {
	serviceType, err := models.ParseServiceType(req.Msg.ServiceType)
	if err != nil {
		return nil, toConnectError(err)
	}

	entries, err := s.matcher.Pool(ctx, serviceType)
	if err != nil {
		slog.Error("ListPool failed", "service_type", serviceType, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.WaitingEntry, len(entries))
	for i := range entries {
		out[i] = entryToAPI(&entries[i])
	}

	return connect.NewResponse(&api.ListPoolResponse{Entries: out}), nil
}
