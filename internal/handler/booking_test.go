package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

// stubBookingAPI returns canned values per operation.
type stubBookingAPI struct {
	detail    *repository.BookingDetail
	detailErr error
	booking   *model.Booking
	err       error
}

func (s *stubBookingAPI) GetByUser(ctx context.Context, userID uint64) (*repository.BookingDetail, error) {
	return s.detail, s.detailErr
}
func (s *stubBookingAPI) Create(ctx context.Context, roomID, userID uint64) (*model.Booking, error) {
	return s.booking, s.err
}
func (s *stubBookingAPI) Update(ctx context.Context, roomID, userID, bookingID uint64) (*model.Booking, error) {
	return s.booking, s.err
}

func newBookingCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(9))
	return c, rec
}

func TestGetBooking(t *testing.T) {
	h := NewBookingHandler(&stubBookingAPI{
		detail: &repository.BookingDetail{ID: 5, Room: repository.BookedRoom{ID: 3, Name: "Suite 301"}},
	})
	c, rec := newBookingCtx(http.MethodGet, "/v1/booking", "")

	require.NoError(t, h.GetBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp repository.BookingDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(5), resp.ID)
	assert.Equal(t, "Suite 301", resp.Room.Name)
}

func TestGetBooking_NotFound(t *testing.T) {
	h := NewBookingHandler(&stubBookingAPI{detailErr: repository.ErrBookingNotFound})
	c, rec := newBookingCtx(http.MethodGet, "/v1/booking", "")

	require.NoError(t, h.GetBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBooking_NoAuth(t *testing.T) {
	h := NewBookingHandler(&stubBookingAPI{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/booking", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no user_id set

	require.NoError(t, h.GetBooking(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBooking(t *testing.T) {
	var published []queue.BookingEvent
	h := NewBookingHandler(&stubBookingAPI{
		booking: &model.Booking{ID: 7, RoomID: 3, UserID: 9},
	})
	h.PublishEvent = func(ctx context.Context, ev queue.BookingEvent) error {
		published = append(published, ev)
		return nil
	}
	c, rec := newBookingCtx(http.MethodPost, "/v1/booking", `{"room_id":3}`)

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]uint64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(7), resp["booking_id"])

	require.Len(t, published, 1)
	assert.Equal(t, queue.ActionCreated, published[0].Action)
	assert.Equal(t, uint64(7), published[0].BookingID)
}

func TestCreateBooking_MissingRoomID(t *testing.T) {
	h := NewBookingHandler(&stubBookingAPI{})
	c, rec := newBookingCtx(http.MethodPost, "/v1/booking", `{}`)

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBooking_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unknown room", repository.ErrRoomNotFound, http.StatusNotFound},
		{"no enrollment", repository.ErrEnrollmentNotFound, http.StatusNotFound},
		{"no ticket", repository.ErrTicketNotFound, http.StatusNotFound},
		{"room full", repository.ErrRoomFull, http.StatusForbidden},
		{"not eligible", service.ErrNotEligible, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewBookingHandler(&stubBookingAPI{err: tc.err})
			c, rec := newBookingCtx(http.MethodPost, "/v1/booking", `{"room_id":3}`)

			require.NoError(t, h.CreateBooking(c))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestUpdateBooking(t *testing.T) {
	var published []queue.BookingEvent
	h := NewBookingHandler(&stubBookingAPI{
		booking: &model.Booking{ID: 7, RoomID: 4, UserID: 9},
	})
	h.PublishEvent = func(ctx context.Context, ev queue.BookingEvent) error {
		published = append(published, ev)
		return nil
	}
	c, rec := newBookingCtx(http.MethodPut, "/v1/booking/7", `{"room_id":4}`)
	c.SetParamNames("bookingId")
	c.SetParamValues("7")

	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]uint64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(7), resp["booking_id"])

	require.Len(t, published, 1)
	assert.Equal(t, queue.ActionRoomChange, published[0].Action)
}

func TestUpdateBooking_NoBookingIsForbidden(t *testing.T) {
	h := NewBookingHandler(&stubBookingAPI{err: service.ErrNoBooking})
	c, rec := newBookingCtx(http.MethodPut, "/v1/booking/7", `{"room_id":4}`)
	c.SetParamNames("bookingId")
	c.SetParamValues("7")

	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// A booking deleted between the service's ownership check and the
// store write surfaces as the store's not-found error; the client
// must see the same 403 as having no booking, not a 500.
func TestUpdateBooking_BookingVanishedMidFlight(t *testing.T) {
	h := NewBookingHandler(&stubBookingAPI{err: repository.ErrBookingNotFound})
	c, rec := newBookingCtx(http.MethodPut, "/v1/booking/7", `{"room_id":4}`)
	c.SetParamNames("bookingId")
	c.SetParamValues("7")

	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateBooking_BadBookingID(t *testing.T) {
	h := NewBookingHandler(&stubBookingAPI{})
	c, rec := newBookingCtx(http.MethodPut, "/v1/booking/abc", `{"room_id":4}`)
	c.SetParamNames("bookingId")
	c.SetParamValues("abc")

	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Publisher failures must never surface to the client.
func TestCreateBooking_PublishFailureIgnored(t *testing.T) {
	h := NewBookingHandler(&stubBookingAPI{
		booking: &model.Booking{ID: 7, RoomID: 3, UserID: 9},
	})
	h.PublishEvent = func(ctx context.Context, ev queue.BookingEvent) error {
		return context.DeadlineExceeded
	}
	c, rec := newBookingCtx(http.MethodPost, "/v1/booking", `{"room_id":3}`)

	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
