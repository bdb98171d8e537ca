// Package matching admits users into the waiting pool and turns complete
// groups into rooms.
//
// A group for service type t is one leader plus exactly Quorum(t)
// non-leaders. Formation reads, deletes and creates inside a single store
// transaction, so a waiting entry ends up in at most one room.
package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/ottshare/internal/events"
	"github.com/mmynk/ottshare/internal/metrics"
	"github.com/mmynk/ottshare/internal/models"
	"github.com/mmynk/ottshare/internal/secret"
	"github.com/mmynk/ottshare/internal/storage"
)

// Service implements admission, group formation, cancellation and lookups.
type Service struct {
	store     storage.Store
	sealer    *secret.Sealer
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	locks     *typeLocks
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets where room formed events go. Defaults to a no-op.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics sets the collectors. Defaults to an unexported registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a matching Service.
func New(store storage.Store, sealer *secret.Sealer, opts ...Option) *Service {
	s := &Service{
		store:     store,
		sealer:    sealer,
		publisher: events.NopPublisher{},
		logger:    slog.Default(),
		locks:     newTypeLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New(prometheus.NewRegistry())
	}
	return s
}

// AdmitRequest asks for a user to join the waiting pool.
type AdmitRequest struct {
	Username    string
	ServiceType models.ServiceType
	Leader      bool

	// AccountID and Password are the shared account, required iff Leader.
	AccountID string
	Password  string
}

func (r AdmitRequest) validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("%w: username required", models.ErrInvalidArgument)
	}
	if _, err := models.Quorum(r.ServiceType); err != nil {
		return err
	}
	if r.Leader && (r.AccountID == "" || r.Password == "") {
		return fmt.Errorf("%w: leader must supply account id and password", models.ErrInvalidArgument)
	}
	if !r.Leader && (r.AccountID != "" || r.Password != "") {
		return fmt.Errorf("%w: only the leader supplies credentials", models.ErrInvalidArgument)
	}
	return nil
}

// Admit adds one waiting entry for the user. Repeated admissions of the
// same user are not deduplicated.
func (s *Service) Admit(ctx context.Context, req AdmitRequest) (*models.WaitingEntry, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	entry := &models.WaitingEntry{
		UserID:      user.ID,
		ServiceType: req.ServiceType,
		Leader:      req.Leader,
	}
	if req.Leader {
		sealed, err := s.sealer.Seal(req.Password)
		if err != nil {
			return nil, err
		}
		entry.Credentials = models.Credentials{AccountID: req.AccountID, SealedPassword: sealed}
	}

	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.metrics.Admissions.WithLabelValues(string(entry.ServiceType), metrics.Role(entry.Leader)).Inc()
	s.logger.Info("User admitted to waiting pool",
		"entry_id", entry.ID,
		"user_id", user.ID,
		"service_type", entry.ServiceType,
		"leader", entry.Leader,
	)

	return entry, nil
}

// AdmitAndMatch admits the user and immediately tries to form a group for
// the same service type.
func (s *Service) AdmitAndMatch(ctx context.Context, req AdmitRequest) (*models.WaitingEntry, models.Outcome, error) {
	entry, err := s.Admit(ctx, req)
	if err != nil {
		return nil, models.Outcome{}, err
	}

	outcome, err := s.TryFormGroup(ctx, req.ServiceType)
	if err != nil {
		return entry, models.Outcome{}, err
	}
	return entry, outcome, nil
}

// TryFormGroup forms a room for the service type if exactly a quorum of
// non-leaders and a leader are waiting. Otherwise it reports which part is
// missing and leaves the pool untouched.
func (s *Service) TryFormGroup(ctx context.Context, serviceType models.ServiceType) (models.Outcome, error) {
	quorum, err := models.Quorum(serviceType)
	if err != nil {
		return models.Outcome{}, err
	}

	unlock := s.locks.lock(serviceType)
	defer unlock()

	var outcome models.Outcome
	err = s.store.RunInTx(ctx, func(tx storage.MatchTx) error {
		members, err := tx.ListNonLeaders(ctx, serviceType, quorum)
		if err != nil {
			return err
		}
		if len(members) != quorum {
			outcome = models.Outcome{Status: models.OutcomeIncompleteNonLeaders}
			return nil
		}

		leader, err := tx.FindLeader(ctx, serviceType)
		if err != nil {
			return err
		}
		if leader == nil {
			outcome = models.Outcome{Status: models.OutcomeIncompleteNoLeader}
			return nil
		}

		room, err := formRoom(ctx, tx, &models.SharingGroup{
			ServiceType: serviceType,
			Leader:      *leader,
			Members:     members,
		})
		if err != nil {
			return err
		}
		outcome = models.Outcome{Status: models.OutcomeFormed, Room: room}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			s.metrics.Conflicts.WithLabelValues(string(serviceType)).Inc()
		}
		s.logger.Error("Group formation failed", "service_type", serviceType, "error", err)
		return models.Outcome{}, fmt.Errorf("form %s group: %w", serviceType, err)
	}

	s.metrics.Outcomes.WithLabelValues(string(serviceType), outcome.Status.String()).Inc()

	if !outcome.Formed() {
		s.logger.Debug("Group incomplete", "service_type", serviceType, "outcome", outcome.Status)
		return outcome, nil
	}

	s.logger.Info("Room created",
		"room_id", outcome.Room.ID,
		"service_type", serviceType,
		"members", len(outcome.Room.MemberIDs),
	)
	if err := s.publisher.PublishRoomFormed(ctx, events.NewRoomFormed(outcome.Room)); err != nil {
		s.logger.Warn("Failed to publish room event", "room_id", outcome.Room.ID, "error", err)
	}

	return outcome, nil
}

// formRoom drains the group from the pool and persists its room.
func formRoom(ctx context.Context, tx storage.MatchTx, group *models.SharingGroup) (*models.Room, error) {
	if err := tx.DeleteEntries(ctx, group.EntryIDs()); err != nil {
		return nil, err
	}

	room := &models.Room{
		ServiceType: group.ServiceType,
		LeaderID:    group.Leader.UserID,
		Credentials: group.Leader.Credentials,
	}
	if err := tx.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	persisted, err := tx.GetRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	memberIDs := group.UserIDs()
	if err := tx.AddRoomMembers(ctx, persisted.ID, memberIDs); err != nil {
		return nil, err
	}
	persisted.MemberIDs = memberIDs

	return persisted, nil
}

// Cancel removes one waiting entry.
func (s *Service) Cancel(ctx context.Context, entryID int64) error {
	if err := s.store.DeleteEntry(ctx, entryID); err != nil {
		return err
	}

	s.metrics.Cancellations.Inc()
	s.logger.Info("Waiting entry cancelled", "entry_id", entryID)
	return nil
}

// LookupEntryID returns the waiting entry of a user, if any.
func (s *Service) LookupEntryID(ctx context.Context, userID int64) (int64, bool, error) {
	return s.store.FindEntryIDByUser(ctx, userID)
}

// Pool returns the waiting entries of one service type, oldest first.
func (s *Service) Pool(ctx context.Context, serviceType models.ServiceType) ([]models.WaitingEntry, error) {
	if _, err := models.Quorum(serviceType); err != nil {
		return nil, err
	}
	return s.store.ListEntries(ctx, serviceType)
}

// Room returns a room with its shared password opened.
func (s *Service) Room(ctx context.Context, roomID string) (*models.RoomView, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return s.open(room)
}

// RoomsForUser returns the rooms a user belongs to, passwords opened.
func (s *Service) RoomsForUser(ctx context.Context, userID int64) ([]*models.RoomView, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	rooms, err := s.store.ListRoomsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*models.RoomView, len(rooms))
	for i, room := range rooms {
		if views[i], err = s.open(room); err != nil {
			return nil, err
		}
	}
	return views, nil
}

func (s *Service) open(room *models.Room) (*models.RoomView, error) {
	password, err := s.sealer.Open(room.Credentials.SealedPassword)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", room.ID, err)
	}
	return &models.RoomView{Room: *room, Password: password}, nil
}

// RegisterUser adds a user to the directory.
func (s *Service) RegisterUser(ctx context.Context, username, displayName string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username required", models.ErrInvalidArgument)
	}

	user := models.NewUser(username, strings.TrimSpace(displayName))
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}
