package model

import "time"

// Ticket status values as stored in the tickets.status column.
const (
	TicketReserved  = "RESERVED"  // chosen but not yet paid
	TicketPaid      = "PAID"      // payment confirmed
	TicketCancelled = "CANCELLED" // withdrawn, never bookable
)

// Enrollment is a user's registration record for the event.  Each user
// has at most one enrollment and each enrollment carries exactly one
// ticket.  Enrollment and ticket state are owned by the upstream
// registration system and are read-only here.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user the enrollment belongs to (unique).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Enrollment struct {
	ID        uint64    // enrollments.id
	UserID    uint64    // enrollments.user_id
	CreatedAt time.Time // enrollments.created_at
	UpdatedAt time.Time // enrollments.updated_at
}

// TicketType describes the category of a ticket: whether the holder
// attends remotely and whether the ticket includes a hotel stay.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – human readable label of the category.
//  IsRemote      – true when the ticket is for remote attendance.
//  IncludesHotel – true when a hotel stay is part of the package.
//  PriceCents    – ticket price in cents.
type TicketType struct {
	ID            uint64 // ticket_types.id
	Name          string // ticket_types.name
	IsRemote      bool   // ticket_types.is_remote
	IncludesHotel bool   // ticket_types.includes_hotel
	PriceCents    uint32 // ticket_types.price_cents
}

// Ticket is the proof of payment and category for an enrollment.  The
// Type field is populated from the joined ticket_types row so callers
// can evaluate eligibility without a second lookup.
//
// Fields:
//  ID           – primary key identifier.
//  EnrollmentID – enrollment the ticket belongs to.
//  TicketTypeID – reference into ticket_types.
//  Status       – one of the Ticket* constants above.
//  Type         – resolved ticket type flags.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Ticket struct {
	ID           uint64     // tickets.id
	EnrollmentID uint64     // tickets.enrollment_id
	TicketTypeID uint64     // tickets.ticket_type_id
	Status       string     // tickets.status
	Type         TicketType // joined ticket_types row
	CreatedAt    time.Time  // tickets.created_at
	UpdatedAt    time.Time  // tickets.updated_at
}
