package domain

import (
	"strings"
	"time"
)

// BookingStatus represents the status of a (court, slot, date) cell
type BookingStatus string

const (
	// StatusAvailable is never persisted: an available cell has no booking row
	StatusAvailable BookingStatus = "available"
	StatusBooked    BookingStatus = "booked"
	StatusClosed    BookingStatus = "closed"
)

// ParseBookingStatus validates a client-supplied status
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case StatusAvailable, StatusBooked, StatusClosed:
		return status, true
	default:
		return "", false
	}
}

// IsPersisted returns true for statuses that are stored as a booking row
func (s BookingStatus) IsPersisted() bool {
	return s == StatusBooked || s == StatusClosed
}

// Attachment is the approval photo reference stored on a booking
type Attachment struct {
	Key          string
	URL          string
	OriginalName string
}

// Booking represents a non-available state of a court slot on a date
type Booking struct {
	ID         int64
	CourtID    int64
	TimeSlotID int64
	Date       time.Time
	Status     BookingStatus
	BookingBy  *string
	Attachment *Attachment

	// Кто последним менял запись
	UserID   string
	UserName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAttachment returns true if the booking references a stored photo
func (b *Booking) HasAttachment() bool {
	return b.Attachment != nil && b.Attachment.Key != ""
}

// AttachmentKey returns the stored photo key or an empty string
func (b *Booking) AttachmentKey() string {
	if !b.HasAttachment() {
		return ""
	}
	return b.Attachment.Key
}

// BookingKey is the unique identity of a booking row
type BookingKey struct {
	CourtID    int64
	TimeSlotID int64
	Date       time.Time
}

// ReconcileAction describes what a status change did to the stored state
type ReconcileAction string

const (
	ActionCreated          ReconcileAction = "created"
	ActionUpdated          ReconcileAction = "updated"
	ActionDeleted          ReconcileAction = "deleted"
	ActionDeleteFailed     ReconcileAction = "delete_failed"
	ActionAlreadyAvailable ReconcileAction = "already_available"
)

// Actor is the authenticated identity performing a mutation
type Actor struct {
	ID       string
	Username string
	IsAdmin  bool
}

// IsAuthenticated returns true if the actor carries an identity
func (a Actor) IsAuthenticated() bool {
	return a.ID != ""
}

// NormalizeDate truncates a timestamp to midnight UTC of its calendar day
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
