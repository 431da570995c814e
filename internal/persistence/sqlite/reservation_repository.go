package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olivier-loorius/reza-server/internal/persistence"
)

// ReservationRepository implements persistence.ReservationRepository using
// SQLite.
type ReservationRepository struct {
	pool *ConnectionPool
}

// NewReservationRepository creates a new SQLite reservation repository.
func NewReservationRepository(pool *ConnectionPool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

// CreateReservations inserts the batch inside one transaction. The unique
// slot index turns a concurrent double-booking into ErrDuplicate, and the
// rollback guarantees no partial batch is ever visible.
func (r *ReservationRepository) CreateReservations(ctx context.Context, reservations []persistence.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	query := `
		INSERT INTO reservations (id, room_id, room_name, date, time, user_name, user_email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, reservation := range reservations {
			_, err := tx.ExecContext(ctx, query,
				reservation.ID,
				reservation.RoomID,
				reservation.RoomName,
				reservation.Date,
				reservation.Time,
				reservation.UserName,
				reservation.UserEmail,
				reservation.CreatedAt.UTC().Format(time.RFC3339Nano),
			)
			if err != nil {
				return mapError(err)
			}
		}
		return nil
	})
}

// ListReservations returns all reservations in creation order.
func (r *ReservationRepository) ListReservations(ctx context.Context) ([]persistence.Reservation, error) {
	query := `
		SELECT id, room_id, room_name, date, time, user_name, user_email, created_at
		FROM reservations
		ORDER BY created_at ASC, date ASC, time ASC, id ASC
	`
	return r.queryReservations(ctx, query)
}

// ListReservationsForRoom returns the reservations held on one room, ordered
// by date then hour.
func (r *ReservationRepository) ListReservationsForRoom(ctx context.Context, roomID string) ([]persistence.Reservation, error) {
	query := `
		SELECT id, room_id, room_name, date, time, user_name, user_email, created_at
		FROM reservations
		WHERE room_id = ?
		ORDER BY date ASC, time ASC, id ASC
	`
	return r.queryReservations(ctx, query, roomID)
}

// DeleteReservation removes a reservation by ID.
func (r *ReservationRepository) DeleteReservation(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
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

func (r *ReservationRepository) queryReservations(ctx context.Context, query string, args ...any) ([]persistence.Reservation, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var reservations []persistence.Reservation
	for rows.Next() {
		var reservation persistence.Reservation
		var createdAtStr string

		err := rows.Scan(
			&reservation.ID,
			&reservation.RoomID,
			&reservation.RoomName,
			&reservation.Date,
			&reservation.Time,
			&reservation.UserName,
			&reservation.UserEmail,
			&createdAtStr,
		)
		if err != nil {
			return nil, mapError(err)
		}

		if reservation.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return reservations, nil
}
