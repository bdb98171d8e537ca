package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// MatchingServiceName is the fully-qualified name of the MatchingService service.
	MatchingServiceName = "ottshare.v1.MatchingService"
	// UserServiceName is the fully-qualified name of the UserService service.
	UserServiceName = "ottshare.v1.UserService"
)

const (
	MatchingServiceAdmitProcedure       = "/ottshare.v1.MatchingService/Admit"
	MatchingServiceCancelProcedure      = "/ottshare.v1.MatchingService/Cancel"
	MatchingServiceLookupEntryProcedure = "/ottshare.v1.MatchingService/LookupEntry"
	MatchingServiceGetRoomProcedure     = "/ottshare.v1.MatchingService/GetRoom"
	MatchingServiceListRoomsProcedure   = "/ottshare.v1.MatchingService/ListRooms"
	MatchingServiceListPoolProcedure    = "/ottshare.v1.MatchingService/ListPool"
	UserServiceRegisterUserProcedure    = "/ottshare.v1.UserService/RegisterUser"
)

// MatchingServiceHandler is implemented by the server.
type MatchingServiceHandler interface {
	Admit(context.Context, *connect.Request[AdmitRequest]) (*connect.Response[AdmitResponse], error)
	Cancel(context.Context, *connect.Request[CancelRequest]) (*connect.Response[CancelResponse], error)
	LookupEntry(context.Context, *connect.Request[LookupEntryRequest]) (*connect.Response[LookupEntryResponse], error)
	GetRoom(context.Context, *connect.Request[GetRoomRequest]) (*connect.Response[GetRoomResponse], error)
	ListRooms(context.Context, *connect.Request[ListRoomsRequest]) (*connect.Response[ListRoomsResponse], error)
	ListPool(context.Context, *connect.Request[ListPoolRequest]) (*connect.Response[ListPoolResponse], error)
}

// MatchingServiceClient is a client for ottshare.v1.MatchingService.
type MatchingServiceClient interface {
	Admit(context.Context, *connect.Request[AdmitRequest]) (*connect.Response[AdmitResponse], error)
	Cancel(context.Context, *connect.Request[CancelRequest]) (*connect.Response[CancelResponse], error)
	LookupEntry(context.Context, *connect.Request[LookupEntryRequest]) (*connect.Response[LookupEntryResponse], error)
	GetRoom(context.Context, *connect.Request[GetRoomRequest]) (*connect.Response[GetRoomResponse], error)
	ListRooms(context.Context, *connect.Request[ListRoomsRequest]) (*connect.Response[ListRoomsResponse], error)
	ListPool(context.Context, *connect.Request[ListPoolRequest]) (*connect.Response[ListPoolResponse], error)
}

// NewMatchingServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewMatchingServiceHandler(svc MatchingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	admit := connect.NewUnaryHandler(MatchingServiceAdmitProcedure, svc.Admit, opts...)
	cancel := connect.NewUnaryHandler(MatchingServiceCancelProcedure, svc.Cancel, opts...)
	lookupEntry := connect.NewUnaryHandler(MatchingServiceLookupEntryProcedure, svc.LookupEntry, opts...)
	getRoom := connect.NewUnaryHandler(MatchingServiceGetRoomProcedure, svc.GetRoom, opts...)
	listRooms := connect.NewUnaryHandler(MatchingServiceListRoomsProcedure, svc.ListRooms, opts...)
	listPool := connect.NewUnaryHandler(MatchingServiceListPoolProcedure, svc.ListPool, opts...)

	return "/" + MatchingServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case MatchingServiceAdmitProcedure:
			admit.ServeHTTP(w, r)
		case MatchingServiceCancelProcedure:
			cancel.ServeHTTP(w, r)
		case MatchingServiceLookupEntryProcedure:
			lookupEntry.ServeHTTP(w, r)
		case MatchingServiceGetRoomProcedure:
			getRoom.ServeHTTP(w, r)
		case MatchingServiceListRoomsProcedure:
			listRooms.ServeHTTP(w, r)
		case MatchingServiceListPoolProcedure:
			listPool.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewMatchingServiceClient constructs a client for ottshare.v1.MatchingService.
// baseURL is the scheme and host, for example http://localhost:8080.
func NewMatchingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) MatchingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)

	return &matchingServiceClient{
		admit:       connect.NewClient[AdmitRequest, AdmitResponse](httpClient, baseURL+MatchingServiceAdmitProcedure, opts...),
		cancel:      connect.NewClient[CancelRequest, CancelResponse](httpClient, baseURL+MatchingServiceCancelProcedure, opts...),
		lookupEntry: connect.NewClient[LookupEntryRequest, LookupEntryResponse](httpClient, baseURL+MatchingServiceLookupEntryProcedure, opts...),
		getRoom:     connect.NewClient[GetRoomRequest, GetRoomResponse](httpClient, baseURL+MatchingServiceGetRoomProcedure, opts...),
		listRooms:   connect.NewClient[ListRoomsRequest, ListRoomsResponse](httpClient, baseURL+MatchingServiceListRoomsProcedure, opts...),
		listPool:    connect.NewClient[ListPoolRequest, ListPoolResponse](httpClient, baseURL+MatchingServiceListPoolProcedure, opts...),
	}
}

type matchingServiceClient struct {
	admit       *connect.Client[AdmitRequest, AdmitResponse]
	cancel      *connect.Client[CancelRequest, CancelResponse]
	lookupEntry *connect.Client[LookupEntryRequest, LookupEntryResponse]
	getRoom     *connect.Client[GetRoomRequest, GetRoomResponse]
	listRooms   *connect.Client[ListRoomsRequest, ListRoomsResponse]
	listPool    *connect.Client[ListPoolRequest, ListPoolResponse]
}

func (c *matchingServiceClient) Admit(ctx context.Context, req *connect.Request[AdmitRequest]) (*connect.Response[AdmitResponse], error) {
	return c.admit.CallUnary(ctx, req)
}

func (c *matchingServiceClient) Cancel(ctx context.Context, req *connect.Request[CancelRequest]) (*connect.Response[CancelResponse], error) {
	return c.cancel.CallUnary(ctx, req)
}

func (c *matchingServiceClient) LookupEntry(ctx context.Context, req *connect.Request[LookupEntryRequest]) (*connect.Response[LookupEntryResponse], error) {
	return c.lookupEntry.CallUnary(ctx, req)
}

func (c *matchingServiceClient) GetRoom(ctx context.Context, req *connect.Request[GetRoomRequest]) (*connect.Response[GetRoomResponse], error) {
	return c.getRoom.CallUnary(ctx, req)
}

func (c *matchingServiceClient) ListRooms(ctx context.Context, req *connect.Request[ListRoomsRequest]) (*connect.Response[ListRoomsResponse], error) {
	return c.listRooms.CallUnary(ctx, req)
}

func (c *matchingServiceClient) ListPool(ctx context.Context, req *connect.Request[ListPoolRequest]) (*connect.Response[ListPoolResponse], error) {
	return c.listPool.CallUnary(ctx, req)
}

// UnimplementedMatchingServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedMatchingServiceHandler struct{}

func (UnimplementedMatchingServiceHandler) Admit(context.Context, *connect.Request[AdmitRequest]) (*connect.Response[AdmitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ottshare.v1.MatchingService.Admit is not implemented"))
}

func (UnimplementedMatchingServiceHandler) Cancel(context.Context, *connect.Request[CancelRequest]) (*connect.Response[CancelResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ottshare.v1.MatchingService.Cancel is not implemented"))
}

func (UnimplementedMatchingServiceHandler) LookupEntry(context.Context, *connect.Request[LookupEntryRequest]) (*connect.Response[LookupEntryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ottshare.v1.MatchingService.LookupEntry is not implemented"))
}

func (UnimplementedMatchingServiceHandler) GetRoom(context.Context, *connect.Request[GetRoomRequest]) (*connect.Response[GetRoomResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ottshare.v1.MatchingService.GetRoom is not implemented"))
}

func (UnimplementedMatchingServiceHandler) ListRooms(context.Context, *connect.Request[ListRoomsRequest]) (*connect.Response[ListRoomsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ottshare.v1.MatchingService.ListRooms is not implemented"))
}

func (UnimplementedMatchingServiceHandler) ListPool(context.Context, *connect.Request[ListPoolRequest]) (*connect.Response[ListPoolResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ottshare.v1.MatchingService.ListPool is not implemented"))
}

// UserServiceHandler is implemented by the server.
type UserServiceHandler interface {
	RegisterUser(context.Context, *connect.Request[RegisterUserRequest]) (*connect.Response[RegisterUserResponse], error)
}

// UserServiceClient is a client for ottshare.v1.UserService.
type UserServiceClient interface {
	RegisterUser(context.Context, *connect.Request[RegisterUserRequest]) (*connect.Response[RegisterUserResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service implementation.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	registerUser := connect.NewUnaryHandler(UserServiceRegisterUserProcedure, svc.RegisterUser, opts...)

	return "/" + UserServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case UserServiceRegisterUserProcedure:
			registerUser.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewUserServiceClient constructs a client for ottshare.v1.UserService.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)

	return &userServiceClient{
		registerUser: connect.NewClient[RegisterUserRequest, RegisterUserResponse](httpClient, baseURL+UserServiceRegisterUserProcedure, opts...),
	}
}

type userServiceClient struct {
	registerUser *connect.Client[RegisterUserRequest, RegisterUserResponse]
}

func (c *userServiceClient) RegisterUser(ctx context.Context, req *connect.Request[RegisterUserRequest]) (*connect.Response[RegisterUserResponse], error) {
	return c.registerUser.CallUnary(ctx, req)
}

// UnimplementedUserServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedUserServiceHandler struct{}

func (UnimplementedUserServiceHandler) RegisterUser(context.Context, *connect.Request[RegisterUserRequest]) (*connect.Response[RegisterUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("ottshare.v1.UserService.RegisterUser is not implemented"))
}
