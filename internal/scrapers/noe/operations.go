package noe

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// GetSchedule returns the slots of every station for date, or for the nearest
// bookable date if date is empty. When the site offers no dates and none was
// requested the schedule is empty.
func (c *Client) GetSchedule(ctx context.Context, date string) (Schedule, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := tracer.Start(ctx, "client:GetSchedule")
	defer span.End()

	body, err := c.post(ctx, report_client_get_schedule, datesForm())
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch available dates")
		return Schedule{}, err
	}
	doc, err := parseDocument(body)
	if err != nil {
		c.tel.ReportBroken(report_client_get_schedule, fmt.Errorf("parse dates: %w", err))
		return Schedule{}, err
	}
	dates := ExtractAvailableDates(doc)

	target := date
	if target == "" && len(dates) > 0 {
		target = dates[0]
	}
	if target == "" {
		c.tel.ReportWarning(report_client_get_schedule, "no available dates")
		return Schedule{Slots: []TimeSlot{}, Dates: dates}, nil
	}
	span.SetAttributes(attribute.String("date", target))

	body, err = c.post(ctx, report_client_get_schedule, scheduleForm(c.locationId, target))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch schedule")
		return Schedule{}, err
	}
	doc, err = parseDocument(body)
	if err != nil {
		c.tel.ReportBroken(report_client_get_schedule, fmt.Errorf("parse schedule: %w", err), target)
		return Schedule{}, err
	}

	slots := ExtractSchedule(doc)
	if len(slots) == 0 {
		c.tel.ReportWarning(report_client_get_schedule, "no slots found", target)
	}

	return Schedule{Slots: slots, Dates: dates}, nil
}

// GetCredits returns the member's remaining credit balance.
func (c *Client) GetCredits(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := tracer.Start(ctx, "client:GetCredits")
	defer span.End()

	body, err := c.post(ctx, report_client_get_credits, creditsForm())
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch credits")
		return 0, err
	}
	credits, err := ExtractCredits(body)
	if err != nil {
		c.tel.ReportBroken(report_client_get_credits, err)
		span.SetStatus(codes.Error, "failed to parse credits")
		return 0, err
	}
	return credits, nil
}

// GetMyBookings returns the member's upcoming reservations.
func (c *Client) GetMyBookings(ctx context.Context) ([]Reservation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := tracer.Start(ctx, "client:GetMyBookings")
	defer span.End()

	return c.getMyBookings(ctx)
}

func (c *Client) getMyBookings(ctx context.Context) ([]Reservation, error) {
	body, err := c.post(ctx, report_client_get_reservations, reservationsForm())
	if err != nil {
		return nil, err
	}
	reservations, err := ExtractReservationsFromString(body, c.time.Now())
	if err != nil {
		c.tel.ReportBroken(report_client_get_reservations, fmt.Errorf("parse: %w", err))
		return nil, err
	}
	c.tel.ReportCount(report_client_get_reservations, int64(len(reservations)))
	return reservations, nil
}

// BookSlot reserves a slot. station is a station name or id. Failures reported by
// the site come back as a BookingFailure, the error is only set when the site
// could not be talked to.
func (c *Client) BookSlot(ctx context.Context, station, date, slotTime string) (BookingResult, error) {
	resolved, ok := ResolveStation(station)
	if !ok {
		return BookingFailure{
			Kind:    FAILURE_INVALID,
			Message: unknownStationMessage(station),
		}, nil
	}
	slotTime = normalizeTime(slotTime)

	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := tracer.Start(ctx, "client:BookSlot")
	defer span.End()
	span.SetAttributes(
		attribute.Int("station", resolved.Id),
		attribute.String("date", date),
		attribute.String("time", slotTime),
	)

	body, err := c.post(ctx, report_client_book, reserveForm(resolved.Id, date, slotTime))
	if err != nil {
		span.SetStatus(codes.Error, "failed to reserve")
		return nil, err
	}

	result := ClassifyBookingResponse(body)
	switch r := result.(type) {
	case BookingSuccess:
		r.Message = fmt.Sprintf("Booked %s on %s at %s.", resolved.Name, date, slotTime)
		return r, nil
	case BookingFailure:
		c.tel.ReportDebug("booking refused", string(r.Kind), resolved.Id, date, slotTime)
	}
	return result, nil
}

// CancelBooking cancels the member's reservation matching station, date and time.
func (c *Client) CancelBooking(ctx context.Context, station, date, slotTime string) (CancelResult, error) {
	resolved, ok := ResolveStation(station)
	if !ok {
		return CancelResult{Message: unknownStationMessage(station)}, nil
	}
	slotTime = normalizeTime(slotTime)

	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, span := tracer.Start(ctx, "client:CancelBooking")
	defer span.End()

	reservations, err := c.getMyBookings(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch reservations")
		return CancelResult{}, err
	}

	var target *Reservation
	for i, r := range reservations {
		if r.Station.Id == resolved.Id && r.Date == date && r.Time == slotTime {
			target = &reservations[i]
			break
		}
	}
	if target == nil {
		return CancelResult{
			Message: fmt.Sprintf(
				"No reservation found for %s on %s at %s (you have %d reservations).",
				resolved.Name, date, slotTime, len(reservations),
			),
		}, nil
	}

	body, err := c.post(ctx, report_client_cancel, target.CancelParams)
	if err != nil {
		span.SetStatus(codes.Error, "failed to cancel")
		return CancelResult{}, err
	}

	// the site answers with the refreshed markup or with nothing at all
	text := strings.TrimSpace(body)
	if text != "" && !strings.HasPrefix(text, "<") {
		snippet := truncate(text, 200)
		c.tel.ReportWarning(report_client_cancel, "unexpected response", target.Id, snippet)
		return CancelResult{
			Message: fmt.Sprintf("Unexpected response while cancelling reservation %s: %s", target.Id, snippet),
		}, nil
	}

	return CancelResult{
		Success: true,
		Message: fmt.Sprintf("Cancelled %s on %s at %s.", resolved.Name, date, slotTime),
	}, nil
}
