package noe

import (
	"strings"

	"noebook-backend/pkg/htmlutil"
)

const (
	title_window_closed = "Reservation window closed"
	title_recurring     = "Reserved for recurring appointment."
	title_reserved_by   = "Reserved by"
	title_reservable    = "Click to reserve"

	class_reserved = "reserved"
	class_gray     = "gray"

	sign_in_required = "Sign In Required"
)

// ClassifySlotStatus derives a slot's status from the title and class attributes of
// its link. Titles are checked before classes since the two can disagree.
func ClassifySlotStatus(title, classes string) SlotStatus {
	reserved := htmlutil.HasClass(classes, class_reserved)
	gray := htmlutil.HasClass(classes, class_gray)

	switch {
	case title == title_window_closed:
		return SLOT_WINDOW_CLOSED
	case title == title_recurring:
		return SLOT_RECURRING
	case strings.HasPrefix(title, title_reserved_by):
		return SLOT_RESERVED
	case title == title_reservable || (!reserved && !gray):
		return SLOT_AVAILABLE
	case reserved:
		return SLOT_RESERVED
	case gray:
		return SLOT_WINDOW_CLOSED
	}
	return SLOT_AVAILABLE
}

var bookingErrors = map[string]BookingFailure{
	"reload": {
		Kind:    FAILURE_NO_CREDITS,
		Message: "No credits remaining, purchase more credits to book.",
	},
	"duplicate": {
		Kind:    FAILURE_DUPLICATE,
		Message: "You already have this slot reserved.",
	},
	"concurrent": {
		Kind:    FAILURE_CONCURRENT,
		Message: "You already have a reservation overlapping this time.",
	},
	"invalid": {
		Kind:    FAILURE_INVALID,
		Message: "The server rejected the reservation as invalid (closed window or unknown time).",
	},
}

// ClassifyBookingResponse interprets the body returned when creating a reservation.
//
// The server answers errors with a bare keyword and success by sending back the
// slot's replacement markup, so any other non-empty body counts as a success.
func ClassifyBookingResponse(raw string) BookingResult {
	text := strings.TrimSpace(raw)
	if failure, ok := bookingErrors[text]; ok {
		return failure
	}
	if text == "" {
		return BookingFailure{
			Kind:    FAILURE_INVALID,
			Message: "Empty response from server, the reservation was probably not made.",
		}
	}
	return BookingSuccess{Message: "Reservation confirmed."}
}

// IsSessionExpired reports whether the server answered with its sign-in page.
func IsSessionExpired(raw string) bool {
	return strings.Contains(raw, sign_in_required)
}
