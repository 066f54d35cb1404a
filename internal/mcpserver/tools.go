package mcpserver

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"noebook-backend/internal/present"
	"noebook-backend/internal/scrapers/noe"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	report_get_schedule   = "tool.get-schedule"
	report_get_credits    = "tool.get-credits"
	report_get_bookings   = "tool.get-my-bookings"
	report_book_slot      = "tool.book-slot"
	report_cancel_booking = "tool.cancel-booking"
)

var timeRegex = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}\s*(am|pm)$`)

func validDate(date string) bool {
	_, err := time.Parse(time.DateOnly, date)
	return err == nil
}

func validTime(t string) bool {
	return timeRegex.MatchString(strings.TrimSpace(t))
}

// slotArgs reads the station, date and time arguments shared by the booking tools.
func slotArgs(req mcp.CallToolRequest) (station, date, slotTime string, failure *mcp.CallToolResult) {
	station, err := req.RequireString("station")
	if err != nil {
		return "", "", "", mcp.NewToolResultError("station parameter is required")
	}
	date, err = req.RequireString("date")
	if err != nil {
		return "", "", "", mcp.NewToolResultError("date parameter is required")
	}
	if !validDate(date) {
		return "", "", "", mcp.NewToolResultError(fmt.Sprintf("invalid date '%s', expected YYYY-MM-DD", date))
	}
	slotTime, err = req.RequireString("time")
	if err != nil {
		return "", "", "", mcp.NewToolResultError("time parameter is required")
	}
	if !validTime(slotTime) {
		return "", "", "", mcp.NewToolResultError(fmt.Sprintf("invalid time '%s', expected something like 6:00am", slotTime))
	}
	return station, date, slotTime, nil
}

// --- Tool definitions ---

var toolGetSchedule = mcp.NewTool("get_schedule",
	mcp.WithDescription("Show every station's slots for a day along with the dates that can currently be viewed."),
	mcp.WithString("date", mcp.Description("Date (YYYY-MM-DD). Defaults to the first bookable date.")),
)

var toolGetCredits = mcp.NewTool("get_credits",
	mcp.WithDescription("Show the member's remaining booking credits."),
)

var toolGetMyBookings = mcp.NewTool("get_my_bookings",
	mcp.WithDescription("List the member's upcoming reservations."),
)

var toolBookSlot = mcp.NewTool("book_slot",
	mcp.WithDescription("Reserve a slot. Costs one credit."),
	mcp.WithString("station", mcp.Required(), mcp.Description("Station name (e.g. 'Noe 1') or id (e.g. '140')")),
	mcp.WithString("date", mcp.Required(), mcp.Description("Date (YYYY-MM-DD)")),
	mcp.WithString("time", mcp.Required(), mcp.Description("Slot start time (e.g. '6:00am')")),
)

var toolCancelBooking = mcp.NewTool("cancel_booking",
	mcp.WithDescription("Cancel one of the member's reservations."),
	mcp.WithString("station", mcp.Required(), mcp.Description("Station name (e.g. 'Noe 1') or id (e.g. '140')")),
	mcp.WithString("date", mcp.Required(), mcp.Description("Date (YYYY-MM-DD)")),
	mcp.WithString("time", mcp.Required(), mcp.Description("Slot start time (e.g. '6:00am')")),
)

var toolListStations = mcp.NewTool("list_stations",
	mcp.WithDescription("List the stations that can be booked."),
)

// --- Tool handlers ---

func (h *handlers) getSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := strings.TrimSpace(req.GetString("date", ""))
	if date != "" && !validDate(date) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date '%s', expected YYYY-MM-DD", date)), nil
	}

	schedule, err := h.api.GetSchedule(ctx, date)
	if err != nil {
		h.tel.ReportBroken(report_get_schedule, err, date)
		return mcp.NewToolResultError("failed to fetch schedule: " + err.Error()), nil
	}
	return mcp.NewToolResultText(present.ScheduleText(schedule)), nil
}

func (h *handlers) getCredits(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	credits, err := h.api.GetCredits(ctx)
	if err != nil {
		h.tel.ReportBroken(report_get_credits, err)
		return mcp.NewToolResultError("failed to fetch credits: " + err.Error()), nil
	}
	return mcp.NewToolResultText(present.CreditsText(credits)), nil
}

func (h *handlers) getMyBookings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reservations, err := h.api.GetMyBookings(ctx)
	if err != nil {
		h.tel.ReportBroken(report_get_bookings, err)
		return mcp.NewToolResultError("failed to fetch reservations: " + err.Error()), nil
	}
	return mcp.NewToolResultText(present.BookingsText(reservations)), nil
}

func (h *handlers) bookSlot(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	station, date, slotTime, failure := slotArgs(req)
	if failure != nil {
		return failure, nil
	}

	result, err := h.api.BookSlot(ctx, station, date, slotTime)
	if err != nil {
		h.tel.ReportBroken(report_book_slot, err, station, date, slotTime)
		result = noe.FailureFromError(err)
	}

	text := present.BookingResultText(result)
	if !result.Ok() {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (h *handlers) cancelBooking(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	station, date, slotTime, failure := slotArgs(req)
	if failure != nil {
		return failure, nil
	}

	result, err := h.api.CancelBooking(ctx, station, date, slotTime)
	if err != nil {
		h.tel.ReportBroken(report_cancel_booking, err, station, date, slotTime)
		return mcp.NewToolResultError("failed to cancel reservation: " + err.Error()), nil
	}

	text := present.CancelResultText(result)
	if !result.Success {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (h *handlers) listStations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(present.StationsText(noe.Stations())), nil
}
