package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/olivier-loorius/reza-server/internal/persistence"
)

// RoomRepository implements persistence.RoomRepository using SQLite.
type RoomRepository struct {
	pool *ConnectionPool
}

// NewRoomRepository creates a new SQLite room repository.
func NewRoomRepository(pool *ConnectionPool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

// CreateRoom inserts a new room. Equipment lists are stored as JSON text.
func (r *RoomRepository) CreateRoom(ctx context.Context, room persistence.Room) error {
	equipment, err := encodeStrings(room.Equipment)
	if err != nil {
		return err
	}
	customEquipment, err := encodeStrings(room.CustomEquipment)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO rooms (id, name, capacity, floor, equipment, custom_equipment, description, creator_name, creator_email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.pool.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.Capacity,
		room.Floor,
		equipment,
		customEquipment,
		room.Description,
		room.CreatorName,
		room.CreatorEmail,
		room.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// GetRoom retrieves a room by ID.
func (r *RoomRepository) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	query := `
		SELECT id, name, capacity, floor, equipment, custom_equipment, description, creator_name, creator_email, created_at
		FROM rooms
		WHERE id = ?
	`

	room, err := scanRoom(r.pool.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Room{}, persistence.ErrNotFound
		}
		return persistence.Room{}, err
	}

	return room, nil
}

// ListRooms returns all rooms in creation order.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	query := `
		SELECT id, name, capacity, floor, equipment, custom_equipment, description, creator_name, creator_email, created_at
		FROM rooms
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return rooms, nil
}

// DeleteRoom removes a room by ID. Reservations referencing the room are
// left untouched.
func (r *RoomRepository) DeleteRoom(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", id)
	if err != nil {
		return mapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (persistence.Room, error) {
	var room persistence.Room
	var equipment, customEquipment, createdAtStr string

	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Capacity,
		&room.Floor,
		&equipment,
		&customEquipment,
		&room.Description,
		&room.CreatorName,
		&room.CreatorEmail,
		&createdAtStr,
	)
	if err != nil {
		return persistence.Room{}, err
	}

	if room.Equipment, err = decodeStrings(equipment); err != nil {
		return persistence.Room{}, fmt.Errorf("failed to decode equipment: %w", err)
	}
	if room.CustomEquipment, err = decodeStrings(customEquipment); err != nil {
		return persistence.Room{}, fmt.Errorf("failed to decode custom_equipment: %w", err)
	}
	if room.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr); err != nil {
		return persistence.Room{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return room, nil
}

func encodeStrings(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(encoded), nil
}

func decodeStrings(encoded string) ([]string, error) {
	if encoded == "" || encoded == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(encoded), &values); err != nil {
		return nil, err
	}
	return values, nil
}
