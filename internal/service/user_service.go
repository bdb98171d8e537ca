package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/ottshare/internal/matching"
	"github.com/mmynk/ottshare/pkg/api"
)

// UserService implements the Connect UserService.
type UserService struct {
	api.UnimplementedUserServiceHandler
	matcher *matching.Service
	logger  *slog.Logger
}

// NewUserService creates a new user directory service.
func NewUserService(matcher *matching.Service, logger *slog.Logger) *UserService {
	return &UserService{matcher: matcher, logger: logger}
}

// RegisterUser adds a user to the directory.
func (s *UserService) RegisterUser(ctx context.Context, req *connect.Request[api.RegisterUserRequest]) (*connect.Response[api.RegisterUserResponse], error) {
	s.logger.Info("RegisterUser request", "username", req.Msg.Username)

	user, err := s.matcher.RegisterUser(ctx, req.Msg.Username, req.Msg.DisplayName)
	if err != nil {
		s.logger.Error("Registration failed", "username", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RegisterUserResponse{User: userToAPI(user)}), nil
}
