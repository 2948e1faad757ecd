// Package service contains the booking orchestrator: the one place
// that combines catalog lookups, ticket eligibility and the booking
// store into invariant-preserving operations. Handlers stay thin and
// the repositories stay dumb; everything with a business rule in it
// lives here.
package service

import (
	"context"
	"errors"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// ErrNotEligible is returned when the user's ticket does not entitle
// them to a hotel room (unpaid, remote, or without hotel inclusion).
// Handlers should translate this into an HTTP 403 response.
var ErrNotEligible = errors.New("ticket not eligible for booking")

// ErrNoBooking is returned by the room-change flow when the user has
// no booking to move, or when the booking referenced in the request
// does not belong to them. Both cases are deliberately the same 403
// class: a missing booking means the caller is not authorized for
// this resource, unlike an unknown room which is a plain 404.
var ErrNoBooking = errors.New("no booking to update")

// RoomFinder resolves a room to its capacity and hotel.
type RoomFinder interface {
	FindByID(ctx context.Context, id uint64) (*model.Room, error)
}

// EnrollmentSource resolves a user to their event enrollment.
type EnrollmentSource interface {
	GetByUser(ctx context.Context, userID uint64) (*model.Enrollment, error)
}

// TicketSource resolves an enrollment to its ticket, ticket type
// flags included.
type TicketSource interface {
	FindByEnrollment(ctx context.Context, enrollmentID uint64) (*model.Ticket, error)
}

// BookingStore persists bookings. Implementations must enforce the
// room capacity bound inside their own transaction boundary: Create
// and UpdateRoom return repository.ErrRoomFull rather than oversell.
type BookingStore interface {
	FindByUser(ctx context.Context, userID uint64) (*repository.BookingDetail, error)
	CountByRoom(ctx context.Context, roomID uint64) (int, error)
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	Create(ctx context.Context, roomID, userID uint64) (*model.Booking, error)
	UpdateRoom(ctx context.Context, bookingID, roomID uint64) (*model.Booking, error)
}

// BookingService orchestrates the three booking operations. All
// collaborators are injected as interfaces so tests can substitute
// doubles.
type BookingService struct {
	rooms       RoomFinder
	enrollments EnrollmentSource
	tickets     TicketSource
	store       BookingStore
}

// NewBookingService constructs a BookingService and panics if any
// dependency is nil.
func NewBookingService(rooms RoomFinder, enrollments EnrollmentSource, tickets TicketSource, store BookingStore) *BookingService {
	if rooms == nil || enrollments == nil || tickets == nil || store == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{
		rooms:       rooms,
		enrollments: enrollments,
		tickets:     tickets,
		store:       store,
	}
}

// GetByUser returns the caller's booking with its room.  It has no
// side effects; repository.ErrBookingNotFound passes through when the
// user has none.
func (s *BookingService) GetByUser(ctx context.Context, userID uint64) (*repository.BookingDetail, error) {
	return s.store.FindByUser(ctx, userID)
}

// Create books a room for the user.  Order of checks matters and is
// observable through the error returned: unknown room first, then a
// full room, then an ineligible ticket.  The store recounts occupancy
// under its own lock, so the early capacity check here is a fast
// reject, not the guarantee.
func (s *BookingService) Create(ctx context.Context, roomID, userID uint64) (*model.Booking, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	occupancy, err := s.store.CountByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !HasCapacity(room.Capacity, occupancy) {
		return nil, repository.ErrRoomFull
	}
	if err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, roomID, userID)
}

// Update moves the user's booking to another room.  Eligibility is
// re-evaluated from scratch: a ticket can stop qualifying between the
// original booking and the move (e.g. a cancellation) and a cached
// verdict must never carry over.
func (s *BookingService) Update(ctx context.Context, roomID, userID, bookingID uint64) (*model.Booking, error) {
	if _, err := s.store.FindByUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrNoBooking
		}
		return nil, err
	}
	// The path parameter and the user's booking are cross-checked so
	// a caller cannot rewrite someone else's booking by guessing ids.
	target, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrNoBooking
		}
		return nil, err
	}
	if target.UserID != userID {
		return nil, ErrNoBooking
	}
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	// Counts every occupant of the target room, the caller's own
	// booking included when it already sits there.
	occupancy, err := s.store.CountByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !HasCapacity(room.Capacity, occupancy) {
		return nil, repository.ErrRoomFull
	}
	if err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.UpdateRoom(ctx, bookingID, roomID)
}

// checkEligibility resolves the user's enrollment and ticket and runs
// the eligibility evaluator on the result.
func (s *BookingService) checkEligibility(ctx context.Context, userID uint64) error {
	enrollment, err := s.enrollments.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	ticket, err := s.tickets.FindByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return err
	}
	if EvaluateTicket(ticket) == Denied {
		return ErrNotEligible
	}
	return nil
}
