package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/queue"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

// BookingAPI is the slice of the booking service the handler needs.
// Declared here so tests can substitute a double.
type BookingAPI interface {
	GetByUser(ctx context.Context, userID uint64) (*repository.BookingDetail, error)
	Create(ctx context.Context, roomID, userID uint64) (*model.Booking, error)
	Update(ctx context.Context, roomID, userID, bookingID uint64) (*model.Booking, error)
}

// BookingHandler exposes the three booking operations over HTTP. All
// methods assume JWT authentication has already run; they return 401
// when the user ID cannot be extracted from the context. Business
// rules live in the service; the handler only parses requests and
// maps service errors to status codes.
type BookingHandler struct {
	Svc BookingAPI
	// PublishEvent, when non-nil, is invoked after a successful
	// mutation. Failures are logged by the publisher and otherwise
	// ignored; a booking must never fail because the broker is down.
	PublishEvent func(ctx context.Context, ev queue.BookingEvent) error
}

// NewBookingHandler constructs a BookingHandler and panics if the
// service is nil.
func NewBookingHandler(svc BookingAPI) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc}
}

type bookingReq struct {
	RoomID uint64 `json:"room_id"`
}

// GetBooking handles GET /v1/booking. It returns the caller's booking
// together with the room it points at, or 404 when the caller has no
// booking.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	detail, err := h.Svc.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateBooking handles POST /v1/booking. The body must contain a
// positive room_id. It responds 201 with the new booking id, 404 when
// the room does not exist, and 403 when the room is full or the
// caller's ticket does not qualify.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body bookingReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	ctx := c.Request().Context()
	booking, err := h.Svc.Create(ctx, body.RoomID, userID)
	if err != nil {
		return bookingError(c, err)
	}
	h.publish(ctx, queue.ActionCreated, booking)
	return c.JSON(http.StatusCreated, echo.Map{"booking_id": booking.ID})
}

// UpdateBooking handles PUT /v1/booking/:bookingId. It moves the
// caller's booking to another room. A caller without a booking, a
// full target room, an ineligible ticket and a booking id that
// belongs to someone else all yield 403; an unknown room yields 404.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body bookingReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	ctx := c.Request().Context()
	booking, err := h.Svc.Update(ctx, body.RoomID, userID, bookingID)
	if err != nil {
		return bookingError(c, err)
	}
	h.publish(ctx, queue.ActionRoomChange, booking)
	return c.JSON(http.StatusOK, echo.Map{"booking_id": booking.ID})
}

// bookingError maps service errors onto the two user-visible status
// codes of the booking flows: 404 for unknown entities, 403 for
// capacity and eligibility rejections.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, repository.ErrEnrollmentNotFound),
		errors.Is(err, repository.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "enrollment not found"})
	case errors.Is(err, repository.ErrRoomFull):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "room is full"})
	case errors.Is(err, service.ErrNotEligible):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "ticket not eligible"})
	case errors.Is(err, service.ErrNoBooking),
		// The booking can vanish between the service's ownership check
		// and the store write; same forbidden class as having none.
		errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no booking to update"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking operation failed"})
}

func (h *BookingHandler) publish(ctx context.Context, action string, b *model.Booking) {
	if h.PublishEvent == nil {
		return
	}
	_ = h.PublishEvent(ctx, queue.BookingEvent{
		Action:     action,
		BookingID:  b.ID,
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
