package sqlite

import (
	"context"
	"fmt"
)

// The unique index on (room_id, date, time) is the standing no-double-booking
// constraint: concurrent bookings of the same slot cannot both commit.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);

CREATE TABLE IF NOT EXISTS rooms (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	capacity         TEXT NOT NULL,
	floor            TEXT NOT NULL DEFAULT '',
	equipment        TEXT NOT NULL DEFAULT '[]',
	custom_equipment TEXT NOT NULL DEFAULT '[]',
	description      TEXT NOT NULL DEFAULT '',
	creator_name     TEXT NOT NULL DEFAULT '',
	creator_email    TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS reservations (
	id         TEXT PRIMARY KEY,
	room_id    TEXT NOT NULL,
	room_name  TEXT NOT NULL,
	date       TEXT NOT NULL,
	time       TEXT NOT NULL,
	user_name  TEXT NOT NULL,
	user_email TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_slot ON reservations(room_id, date, time);
CREATE INDEX IF NOT EXISTS idx_reservations_room ON reservations(room_id);
`

// Migrate creates the tables and indexes when they do not exist yet.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	if _, err := cp.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
