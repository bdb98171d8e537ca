package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Waiting entry IDs are AUTOINCREMENT so they never get reused and keep
// reflecting admission order.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS waiting_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    service_type TEXT NOT NULL,
    is_leader INTEGER NOT NULL DEFAULT 0,
    ott_account_id TEXT,
    ott_password BLOB,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS rooms (
    id TEXT PRIMARY KEY,
    service_type TEXT NOT NULL,
    leader_id INTEGER NOT NULL,
    ott_account_id TEXT NOT NULL,
    ott_password BLOB NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (leader_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS room_members (
    room_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    user_id INTEGER NOT NULL,
    PRIMARY KEY (room_id, position),
    FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_waiting_entries_match ON waiting_entries(service_type, is_leader, id);
CREATE INDEX IF NOT EXISTS idx_waiting_entries_user_id ON waiting_entries(user_id);
CREATE INDEX IF NOT EXISTS idx_room_members_user_id ON room_members(user_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
