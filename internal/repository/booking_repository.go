package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// BookingRepo persists room bookings.  Reads are plain queries; the
// two mutations (Create, UpdateRoom) run inside a transaction that
// locks the target room row and recounts occupancy under the lock, so
// a room can never end up with more bookings than its capacity even
// when requests race.  All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for callers that need to compose
// their own transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// BookedRoom is the nested room payload returned with a booking
// detail.  It mirrors the rooms table columns that clients need to
// render a reservation.
type BookedRoom struct {
	ID        uint64    `json:"id"`
	HotelID   uint64    `json:"hotel_id"`
	Name      string    `json:"name"`
	Capacity  uint32    `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingDetail is a booking together with the room it points at.  It
// is the shape returned to clients asking for "my booking".
type BookingDetail struct {
	ID   uint64     `json:"id"`
	Room BookedRoom `json:"room"`
}

// FindByUser returns the user's booking along with its room.  When a
// user somehow holds several bookings, the oldest one is returned.
// ErrBookingNotFound is returned when the user has none.
func (r *BookingRepo) FindByUser(ctx context.Context, userID uint64) (*BookingDetail, error) {
	const q = `SELECT b.id, rm.id, rm.hotel_id, rm.name, rm.capacity, rm.created_at, rm.updated_at
	           FROM bookings b
	           JOIN rooms rm ON rm.id = b.room_id
	           WHERE b.user_id = ?
	           ORDER BY b.id
	           LIMIT 1`
	var det BookingDetail
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&det.ID, &det.Room.ID, &det.Room.HotelID, &det.Room.Name, &det.Room.Capacity,
		&det.Room.CreatedAt, &det.Room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &det, nil
}

// CountByRoom returns the number of bookings currently assigned to a
// room.  Zero is returned for unknown rooms; existence is the room
// repository's concern.
func (r *BookingRepo) CountByRoom(ctx context.Context, roomID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE room_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, roomID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// GetByID returns a booking by primary key.  ErrBookingNotFound is
// returned when no row matches.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, room_id, user_id, created_at, updated_at FROM bookings WHERE id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.RoomID, &b.UserID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Create inserts a booking for the given room and user.  The room row
// is locked for the duration of the transaction and occupancy is
// recounted under the lock; ErrRoomFull is returned when the room is
// at capacity and ErrRoomNotFound when the room vanished since the
// caller resolved it.
func (r *BookingRepo) Create(ctx context.Context, roomID, userID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	capacity, err := lockRoomCapacity(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}
	occupancy, err := countByRoomTx(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}
	if occupancy >= int(capacity) {
		return nil, ErrRoomFull
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (room_id, user_id) VALUES (?, ?)`, roomID, userID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	booking, err := getByIDTx(ctx, tx, uint64(id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return booking, nil
}

// UpdateRoom moves an existing booking to another room and bumps its
// updated_at timestamp.  The booking row and the target room row are
// both locked; occupancy of the target room is recounted under the
// lock.  The count includes the booking's own prior row when it
// already sits in the target room, matching the read-path semantics.
func (r *BookingRepo) UpdateRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var currentRoom uint64
	err = tx.QueryRowContext(ctx,
		`SELECT room_id FROM bookings WHERE id = ? FOR UPDATE`, bookingID).Scan(&currentRoom)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	capacity, err := lockRoomCapacity(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}
	occupancy, err := countByRoomTx(ctx, tx, roomID)
	if err != nil {
		return nil, err
	}
	if occupancy >= int(capacity) {
		return nil, ErrRoomFull
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET room_id = ?, updated_at = NOW() WHERE id = ?`,
		roomID, bookingID); err != nil {
		return nil, err
	}
	booking, err := getByIDTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return booking, nil
}

// lockRoomCapacity reads a room's capacity while taking a row lock so
// concurrent booking writes against the same room serialize.
func lockRoomCapacity(ctx context.Context, tx *sql.Tx, roomID uint64) (uint32, error) {
	var capacity uint32
	err := tx.QueryRowContext(ctx,
		`SELECT capacity FROM rooms WHERE id = ? FOR UPDATE`, roomID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrRoomNotFound
		}
		return 0, err
	}
	return capacity, nil
}

func countByRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE room_id = ?`, roomID).Scan(&n)
	return n, err
}

func getByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	const q = `SELECT id, room_id, user_id, created_at, updated_at FROM bookings WHERE id = ?`
	var b model.Booking
	err := tx.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.RoomID, &b.UserID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}
