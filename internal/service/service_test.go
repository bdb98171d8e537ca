package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/ottshare/internal/matching"
	"github.com/mmynk/ottshare/internal/middleware"
	"github.com/mmynk/ottshare/internal/secret"
	"github.com/mmynk/ottshare/internal/storage/sqlite"
	"github.com/mmynk/ottshare/pkg/api"
)

// setupTestServer creates a test server with both MatchingService and UserService
func setupTestServer(t *testing.T) (api.MatchingServiceClient, api.UserServiceClient) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	key, err := secret.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	sealer, err := secret.NewSealer(key)
	if err != nil {
		t.Fatalf("failed to create sealer: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	matcher := matching.New(store, sealer, matching.WithLogger(logger))
	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(logger))

	matchingPath, matchingHandler := api.NewMatchingServiceHandler(NewMatchingService(matcher), interceptors)
	userPath, userHandler := api.NewUserServiceHandler(NewUserService(matcher, logger), interceptors)

	mux := http.NewServeMux()
	mux.Handle(matchingPath, matchingHandler)
	mux.Handle(userPath, userHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return api.NewMatchingServiceClient(http.DefaultClient, server.URL),
		api.NewUserServiceClient(http.DefaultClient, server.URL)
}

func registerUsers(t *testing.T, client api.UserServiceClient, usernames ...string) map[string]int64 {
	t.Helper()

	ids := make(map[string]int64, len(usernames))
	for _, name := range usernames {
		resp, err := client.RegisterUser(context.Background(), connect.NewRequest(&api.RegisterUserRequest{Username: name}))
		if err != nil {
			t.Fatalf("RegisterUser(%s) failed: %v", name, err)
		}
		ids[name] = resp.Msg.User.Id
	}
	return ids
}

func TestAdmitFormsRoom(t *testing.T) {
	client, users := setupTestServer(t)
	ctx := context.Background()
	ids := registerUsers(t, users, "leader", "bob", "carol")

	resp, err := client.Admit(ctx, connect.NewRequest(&api.AdmitRequest{
		Username:    "leader",
		ServiceType: "netflix",
		Leader:      true,
		AccountId:   "family@ott.example",
		Password:    "pa55word",
	}))
	if err != nil {
		t.Fatalf("Admit failed: %v", err)
	}
	if resp.Msg.Status != api.StatusIncompleteNonLeaders {
		t.Errorf("expected %s, got %s", api.StatusIncompleteNonLeaders, resp.Msg.Status)
	}
	if resp.Msg.EntryId == 0 {
		t.Error("expected non-zero entry ID")
	}

	_, err = client.Admit(ctx, connect.NewRequest(&api.AdmitRequest{Username: "bob", ServiceType: "NETFLIX"}))
	if err != nil {
		t.Fatalf("Admit failed: %v", err)
	}

	resp, err = client.Admit(ctx, connect.NewRequest(&api.AdmitRequest{Username: "carol", ServiceType: "NETFLIX"}))
	if err != nil {
		t.Fatalf("Admit failed: %v", err)
	}
	if resp.Msg.Status != api.StatusRoomCreated {
		t.Fatalf("expected %s, got %s", api.StatusRoomCreated, resp.Msg.Status)
	}
	if resp.Msg.Message != "Room created successfully." {
		t.Errorf("unexpected message: %q", resp.Msg.Message)
	}
	if resp.Msg.Room == nil || len(resp.Msg.Room.MemberIds) != 3 {
		t.Fatalf("expected room with 3 members, got %+v", resp.Msg.Room)
	}
	if resp.Msg.Room.Password != "" {
		t.Error("Admit response must not expose the password")
	}

	room, err := client.GetRoom(ctx, connect.NewRequest(&api.GetRoomRequest{RoomId: resp.Msg.Room.Id}))
	if err != nil {
		t.Fatalf("GetRoom failed: %v", err)
	}
	if room.Msg.Room.Password != "pa55word" {
		t.Errorf("expected opened password, got %q", room.Msg.Room.Password)
	}
	if room.Msg.Room.LeaderId != ids["leader"] {
		t.Errorf("expected leader %d, got %d", ids["leader"], room.Msg.Room.LeaderId)
	}

	rooms, err := client.ListRooms(ctx, connect.NewRequest(&api.ListRoomsRequest{UserId: ids["bob"]}))
	if err != nil {
		t.Fatalf("ListRooms failed: %v", err)
	}
	if len(rooms.Msg.Rooms) != 1 {
		t.Errorf("expected bob in 1 room, got %d", len(rooms.Msg.Rooms))
	}

	pool, err := client.ListPool(ctx, connect.NewRequest(&api.ListPoolRequest{ServiceType: "NETFLIX"}))
	if err != nil {
		t.Fatalf("ListPool failed: %v", err)
	}
	if len(pool.Msg.Entries) != 0 {
		t.Errorf("expected empty NETFLIX pool, got %d", len(pool.Msg.Entries))
	}
}

func TestAdmitErrors(t *testing.T) {
	client, users := setupTestServer(t)
	registerUsers(t, users, "alice")

	tests := []struct {
		name string
		req  *api.AdmitRequest
		code connect.Code
	}{
		{"unknown user", &api.AdmitRequest{Username: "ghost", ServiceType: "NETFLIX"}, connect.CodeNotFound},
		{"unsupported service", &api.AdmitRequest{Username: "alice", ServiceType: "DISNEY"}, connect.CodeInvalidArgument},
		{"leader without credentials", &api.AdmitRequest{Username: "alice", ServiceType: "WAVVE", Leader: true}, connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Admit(context.Background(), connect.NewRequest(tt.req))
			if err == nil {
				t.Fatal("expected error")
			}
			if code := connect.CodeOf(err); code != tt.code {
				t.Errorf("expected %v, got %v", tt.code, code)
			}
		})
	}
}

func TestCancelAndLookup(t *testing.T) {
	client, users := setupTestServer(t)
	ctx := context.Background()
	ids := registerUsers(t, users, "alice", "bob")

	admitted, err := client.Admit(ctx, connect.NewRequest(&api.AdmitRequest{Username: "alice", ServiceType: "TVING"}))
	if err != nil {
		t.Fatalf("Admit failed: %v", err)
	}

	lookup, err := client.LookupEntry(ctx, connect.NewRequest(&api.LookupEntryRequest{UserId: ids["alice"]}))
	if err != nil {
		t.Fatalf("LookupEntry failed: %v", err)
	}
	if !lookup.Msg.Found || lookup.Msg.EntryId != admitted.Msg.EntryId {
		t.Errorf("expected entry %d, got %+v", admitted.Msg.EntryId, lookup.Msg)
	}

	lookup, err = client.LookupEntry(ctx, connect.NewRequest(&api.LookupEntryRequest{UserId: ids["bob"]}))
	if err != nil {
		t.Fatalf("LookupEntry failed: %v", err)
	}
	if lookup.Msg.Found || lookup.Msg.EntryId != 0 {
		t.Errorf("expected no entry for bob, got %+v", lookup.Msg)
	}

	_, err = client.Cancel(ctx, connect.NewRequest(&api.CancelRequest{EntryId: 999}))
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) || connectErr.Code() != connect.CodeNotFound {
		t.Errorf("expected CodeNotFound, got %v", err)
	}

	if _, err := client.Cancel(ctx, connect.NewRequest(&api.CancelRequest{EntryId: admitted.Msg.EntryId})); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
}

func TestRegisterUserDuplicate(t *testing.T) {
	_, users := setupTestServer(t)
	registerUsers(t, users, "alice")

	_, err := users.RegisterUser(context.Background(), connect.NewRequest(&api.RegisterUserRequest{Username: "alice"}))
	if code := connect.CodeOf(err); code != connect.CodeAlreadyExists {
		t.Errorf("expected CodeAlreadyExists, got %v", code)
	}
}

func TestGetRoomValidation(t *testing.T) {
	client, _ := setupTestServer(t)

	_, err := client.GetRoom(context.Background(), connect.NewRequest(&api.GetRoomRequest{}))
	if code := connect.CodeOf(err); code != connect.CodeInvalidArgument {
		t.Errorf("expected CodeInvalidArgument, got %v", code)
	}

	_, err = client.GetRoom(context.Background(), connect.NewRequest(&api.GetRoomRequest{RoomId: "missing"}))
	if code := connect.CodeOf(err); code != connect.CodeNotFound {
		t.Errorf("expected CodeNotFound, got %v", code)
	}
}
