package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/ottshare/internal/matching"
	"github.com/mmynk/ottshare/internal/models"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for the REST endpoints.
type Handler struct {
	Matcher *matching.Service
	DB      Pinger
	Log     *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(matcher *matching.Service, db Pinger, logger *slog.Logger) *Handler {
	return &Handler{Matcher: matcher, DB: db, Log: logger}
}

// saveRequest is the body of POST /api/waitingUser/save.
type saveRequest struct {
	UserInfo struct {
		Username string `json:"username"`
	} `json:"userInfo"`
	Ott         string `json:"ott"`
	IsLeader    bool   `json:"isLeader"`
	OttID       string `json:"ottId"`
	OttPassword string `json:"ottPassword"`
}

// HandleSave handles POST /api/waitingUser/save.
//
// The user is admitted and a formation attempt follows. Every outcome,
// including an incomplete group, is a 200 with an informational message:
//
//	Room created successfully.
//	group incomplete (non-leaders)
//	group incomplete (no leader)
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var body saveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, fmt.Errorf("%w: malformed body: %v", models.ErrInvalidArgument, err))
		return
	}

	serviceType, err := models.ParseServiceType(body.Ott)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.Log.Info("Saving waiting user", "username", body.UserInfo.Username, "service_type", serviceType)

	_, outcome, err := h.Matcher.AdmitAndMatch(r.Context(), matching.AdmitRequest{
		Username:    body.UserInfo.Username,
		ServiceType: serviceType,
		Leader:      body.IsLeader,
		AccountID:   body.OttID,
		Password:    body.OttPassword,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeText(w, http.StatusOK, outcome.Message())
}

// HandleCancel handles DELETE /api/waitingUser/matchings/{matchingId}.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "matchingId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.Matcher.Cancel(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	writeText(w, http.StatusOK, "User deleted successfully")
}

// ServeEntryID handles GET /api/waitingUser/{userId}.
// The body is the waiting entry ID, or 0 when the user is not waiting.
func (h *Handler) ServeEntryID(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	id, _, err := h.Matcher.LookupEntryID(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, id)
}

type roomResponse struct {
	ID          string  `json:"id"`
	ServiceType string  `json:"ott"`
	LeaderID    int64   `json:"leaderId"`
	MemberIDs   []int64 `json:"memberIds"`
	OttID       string  `json:"ottId"`
	OttPassword string  `json:"ottPassword"`
	CreatedAt   int64   `json:"createdAt"`
}

func toRoomResponse(v *models.RoomView) roomResponse {
	return roomResponse{
		ID:          v.ID,
		ServiceType: string(v.ServiceType),
		LeaderID:    v.LeaderID,
		MemberIDs:   v.MemberIDs,
		OttID:       v.Credentials.AccountID,
		OttPassword: v.Password,
		CreatedAt:   v.CreatedAt,
	}
}

// ServeRoom handles GET /api/rooms/{roomId}.
func (h *Handler) ServeRoom(w http.ResponseWriter, r *http.Request) {
	view, err := h.Matcher.Room(r.Context(), chi.URLParam(r, "roomId"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRoomResponse(view))
}

// ServeUserRooms handles GET /api/users/{userId}/rooms.
func (h *Handler) ServeUserRooms(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		h.writeError(w, err)
		return
	}

	views, err := h.Matcher.RoomsForUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	rooms := make([]roomResponse, len(views))
	for i, v := range views {
		rooms[i] = toRoomResponse(v)
	}
	writeJSON(w, http.StatusOK, rooms)
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// ServeHealth handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected" }
//
// On DB failure: 503 with status "error".
func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		h.Log.Error("health-check: database ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "error",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "connected"})
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be numeric, got %q", models.ErrInvalidArgument, name, raw)
	}
	return id, nil
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrEntryNotFound),
		errors.Is(err, models.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidArgument),
		errors.Is(err, models.ErrUnsupportedServiceType):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUserExists),
		errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Log.Error("request failed", "error", err)
		writeText(w, status, "internal server error")
		return
	}
	h.Log.Warn("request rejected", "status", status, "error", err)
	writeText(w, status, err.Error())
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
