package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/ottshare/internal/models"
)

const entryColumns = "id, user_id, service_type, is_leader, ott_account_id, ott_password, created_at"

// CreateEntry adds a user to the waiting pool.
func (q *queries) CreateEntry(ctx context.Context, entry *models.WaitingEntry) error {
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO waiting_entries (user_id, service_type, is_leader, ott_account_id, ott_password, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.UserID, string(entry.ServiceType), entry.Leader,
		nullableString(entry.Credentials.AccountID), nullableBytes(entry.Credentials.SealedPassword),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert waiting entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read waiting entry id: %w", err)
	}
	entry.ID = id

	return nil
}

// DeleteEntry removes a single waiting entry.
func (q *queries) DeleteEntry(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM waiting_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete waiting entry: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", models.ErrEntryNotFound, id)
	}

	return nil
}

// DeleteEntries removes a whole group in one statement. Every ID must
// still be present, otherwise nothing should be committed.
func (q *queries) DeleteEntries(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := q.db.ExecContext(ctx,
		"DELETE FROM waiting_entries WHERE id IN ("+placeholders(len(ids))+")",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to delete waiting entries: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows != int64(len(ids)) {
		return fmt.Errorf("%w: deleted %d of %d entries", models.ErrConflict, rows, len(ids))
	}

	return nil
}

// FindEntryIDByUser returns the oldest waiting entry of a user.
func (q *queries) FindEntryIDByUser(ctx context.Context, userID int64) (int64, bool, error) {
	var id int64
	err := q.db.QueryRowContext(ctx,
		"SELECT id FROM waiting_entries WHERE user_id = ? ORDER BY id LIMIT 1",
		userID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to find waiting entry: %w", err)
	}

	return id, true, nil
}

// ListEntries returns the whole pool for one service, oldest first.
func (q *queries) ListEntries(ctx context.Context, serviceType models.ServiceType) ([]models.WaitingEntry, error) {
	return q.listEntries(ctx,
		"SELECT "+entryColumns+" FROM waiting_entries WHERE service_type = ? ORDER BY id",
		string(serviceType),
	)
}

// ListNonLeaders returns up to limit non-leader entries, oldest first.
func (q *queries) ListNonLeaders(ctx context.Context, serviceType models.ServiceType, limit int) ([]models.WaitingEntry, error) {
	return q.listEntries(ctx,
		"SELECT "+entryColumns+" FROM waiting_entries WHERE service_type = ? AND is_leader = 0 ORDER BY id LIMIT ?",
		string(serviceType), limit,
	)
}

// FindLeader returns the oldest leader entry, or nil if no leader is waiting.
func (q *queries) FindLeader(ctx context.Context, serviceType models.ServiceType) (*models.WaitingEntry, error) {
	entries, err := q.listEntries(ctx,
		"SELECT "+entryColumns+" FROM waiting_entries WHERE service_type = ? AND is_leader = 1 ORDER BY id LIMIT 1",
		string(serviceType),
	)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (q *queries) listEntries(ctx context.Context, query string, args ...any) ([]models.WaitingEntry, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query waiting entries: %w", err)
	}
	defer rows.Close()

	var entries []models.WaitingEntry
	for rows.Next() {
		var (
			entry       models.WaitingEntry
			serviceType string
			accountID   sql.NullString
			password    []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&serviceType,
			&entry.Leader,
			&accountID,
			&password,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan waiting entry: %w", err)
		}
		entry.ServiceType = models.ServiceType(serviceType)
		entry.Credentials = models.Credentials{
			AccountID:      accountID.String,
			SealedPassword: password,
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate waiting entries: %w", err)
	}

	return entries, nil
}
