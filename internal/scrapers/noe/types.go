package noe

import (
	"errors"
	"fmt"
	"net/url"
)

var LoginFailed = fmt.Errorf("login failed")
var SessionExpired = fmt.Errorf("session expired after re-login")

// ParseError is returned when a response does not match any known shape.
type ParseError struct {
	What string
	// Snippet holds the start of the offending input.
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: unexpected content %q", e.What, e.Snippet)
}

func newParseError(what, input string, limit int) *ParseError {
	return &ParseError{What: what, Snippet: truncate(input, limit)}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

type SlotStatus string

const (
	SLOT_AVAILABLE     SlotStatus = "available"
	SLOT_RESERVED      SlotStatus = "reserved"
	SLOT_RECURRING     SlotStatus = "recurring"
	SLOT_WINDOW_CLOSED SlotStatus = "window_closed"
)

// TimeSlot is a single bookable time unit at one station on one date.
type TimeSlot struct {
	Station Station
	// Date is formatted as YYYY-MM-DD.
	Date string
	// Time is the label the site uses, ex. "6:00am".
	Time   string
	Status SlotStatus
}

// Schedule is one day of slots along with every date the site currently lets you view.
type Schedule struct {
	Slots []TimeSlot
	Dates []string
}

// Reservation is a booking held by the logged in member.
type Reservation struct {
	Id      string
	Station Station
	Date    string
	Time    string
	// CancelParams is the exact form body that cancels this reservation.
	CancelParams url.Values
}

type FailureKind string

const (
	FAILURE_NO_CREDITS      FailureKind = "no_credits"
	FAILURE_DUPLICATE       FailureKind = "duplicate"
	FAILURE_CONCURRENT      FailureKind = "concurrent"
	FAILURE_INVALID         FailureKind = "invalid"
	FAILURE_SESSION_EXPIRED FailureKind = "session_expired"
	FAILURE_NETWORK_ERROR   FailureKind = "network_error"
)

// BookingResult is either a BookingSuccess or a BookingFailure.
type BookingResult interface {
	bookingResult()
	Ok() bool
}

type BookingSuccess struct {
	Message string
}

func (BookingSuccess) bookingResult() {}
func (BookingSuccess) Ok() bool       { return true }

type BookingFailure struct {
	Kind    FailureKind
	Message string
}

func (BookingFailure) bookingResult() {}
func (BookingFailure) Ok() bool       { return false }

// FailureFromError folds an error returned by the client into the booking failure
// vocabulary, for callers that present errors and failures the same way.
func FailureFromError(err error) BookingFailure {
	if errors.Is(err, SessionExpired) || errors.Is(err, LoginFailed) {
		return BookingFailure{
			Kind:    FAILURE_SESSION_EXPIRED,
			Message: err.Error(),
		}
	}
	return BookingFailure{
		Kind:    FAILURE_NETWORK_ERROR,
		Message: err.Error(),
	}
}

type CancelResult struct {
	Success bool
	Message string
}
