package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/ottshare/internal/models"
)

// CreateRoom persists a new room. Members are added with AddRoomMembers.
func (q *queries) CreateRoom(ctx context.Context, room *models.Room) error {
	// Generate IDs if not set
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.CreatedAt == 0 {
		room.CreatedAt = time.Now().Unix()
	}

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO rooms (id, service_type, leader_id, ott_account_id, ott_password, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		room.ID, string(room.ServiceType), room.LeaderID,
		room.Credentials.AccountID, room.Credentials.SealedPassword, room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	return nil
}

// AddRoomMembers attaches users to a room in the given order.
func (q *queries) AddRoomMembers(ctx context.Context, roomID string, userIDs []int64) error {
	for i, userID := range userIDs {
		_, err := q.db.ExecContext(ctx,
			"INSERT INTO room_members (room_id, position, user_id) VALUES (?, ?, ?)",
			roomID, i, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert room member: %w", err)
		}
	}
	return nil
}

// GetRoom retrieves a room by ID, including its members.
func (q *queries) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	room := &models.Room{}
	var serviceType string
	err := q.db.QueryRowContext(ctx,
		`SELECT id, service_type, leader_id, ott_account_id, ott_password, created_at
		 FROM rooms WHERE id = ?`,
		id,
	).Scan(&room.ID, &serviceType, &room.LeaderID,
		&room.Credentials.AccountID, &room.Credentials.SealedPassword, &room.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrRoomNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	room.ServiceType = models.ServiceType(serviceType)

	rows, err := q.db.QueryContext(ctx,
		"SELECT user_id FROM room_members WHERE room_id = ? ORDER BY position",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get room members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan room member: %w", err)
		}
		room.MemberIDs = append(room.MemberIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate room members: %w", err)
	}

	return room, nil
}

// ListRoomsByUser returns every room the user is a member of, newest first.
func (q *queries) ListRoomsByUser(ctx context.Context, userID int64) ([]*models.Room, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT DISTINCT r.id, r.created_at FROM rooms r
		 JOIN room_members m ON m.room_id = r.id
		 WHERE m.user_id = ?
		 ORDER BY r.created_at DESC, r.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	var ids []string
	for rows.Next() {
		var (
			id        string
			createdAt int64
		)
		if err := rows.Scan(&id, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	rooms := make([]*models.Room, 0, len(ids))
	for _, id := range ids {
		room, err := q.GetRoom(ctx, id)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, nil
}
