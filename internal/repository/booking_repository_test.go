package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingRepoMock(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db), mock
}

func TestFindByUser(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "id", "hotel_id", "name", "capacity", "created_at", "updated_at"}).
		AddRow(5, 3, 1, "Suite 301", 2, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT b.id, rm.id, rm.hotel_id, rm.name, rm.capacity")).
		WithArgs(uint64(9)).
		WillReturnRows(rows)

	det, err := repo.FindByUser(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), det.ID)
	assert.Equal(t, uint64(3), det.Room.ID)
	assert.Equal(t, "Suite 301", det.Room.Name)
	assert.Equal(t, uint32(2), det.Room.Capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUser_NotFound(t *testing.T) {
	repo, mock := newBookingRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT b.id, rm.id")).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByUser(context.Background(), 9)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByRoom(t *testing.T) {
	repo, mock := newBookingRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE room_id = ?")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountByRoom(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT capacity FROM rooms WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE room_id = ?")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings (room_id, user_id) VALUES (?, ?)")).
		WithArgs(uint64(3), uint64(9)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, room_id, user_id, created_at, updated_at FROM bookings WHERE id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "user_id", "created_at", "updated_at"}).
			AddRow(7, 3, 9, now, now))
	mock.ExpectCommit()

	b, err := repo.Create(context.Background(), 3, 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), b.ID)
	assert.Equal(t, uint64(3), b.RoomID)
	assert.Equal(t, uint64(9), b.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A room at capacity must refuse the insert and roll the transaction
// back without touching the bookings table.
func TestCreate_RoomFullRollsBack(t *testing.T) {
	repo, mock := newBookingRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT capacity FROM rooms WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE room_id = ?")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 3, 9)
	assert.ErrorIs(t, err, ErrRoomFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RoomVanished(t *testing.T) {
	repo, mock := newBookingRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT capacity FROM rooms WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 3, 9)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoom(t *testing.T) {
	repo, mock := newBookingRepoMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT room_id FROM bookings WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT capacity FROM rooms WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE room_id = ?")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET room_id = ?, updated_at = NOW() WHERE id = ?")).
		WithArgs(uint64(4), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, room_id, user_id, created_at, updated_at FROM bookings WHERE id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "user_id", "created_at", "updated_at"}).
			AddRow(7, 4, 9, now, now))
	mock.ExpectCommit()

	b, err := repo.UpdateRoom(context.Background(), 7, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), b.RoomID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoom_BookingNotFound(t *testing.T) {
	repo, mock := newBookingRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT room_id FROM bookings WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"room_id"}))
	mock.ExpectRollback()

	_, err := repo.UpdateRoom(context.Background(), 7, 4)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoom_TargetFull(t *testing.T) {
	repo, mock := newBookingRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT room_id FROM bookings WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT capacity FROM rooms WHERE id = ? FOR UPDATE")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE room_id = ?")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.UpdateRoom(context.Background(), 7, 4)
	assert.ErrorIs(t, err, ErrRoomFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}
