package mcpserver

import (
	"context"
	"fmt"
	"testing"

	"noebook-backend/internal/components/telemetry"
	"noebook-backend/internal/scrapers/noe"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
)

type call struct {
	method  string
	station string
	date    string
	time    string
}

type stubAPI struct {
	calls []call

	schedule noe.Schedule
	booking  noe.BookingResult
	cancel   noe.CancelResult
	err      error
}

func (s *stubAPI) GetSchedule(ctx context.Context, date string) (noe.Schedule, error) {
	s.calls = append(s.calls, call{method: "GetSchedule", date: date})
	return s.schedule, s.err
}

func (s *stubAPI) GetCredits(ctx context.Context) (int, error) {
	s.calls = append(s.calls, call{method: "GetCredits"})
	return 4, s.err
}

func (s *stubAPI) GetMyBookings(ctx context.Context) ([]noe.Reservation, error) {
	s.calls = append(s.calls, call{method: "GetMyBookings"})
	return nil, s.err
}

func (s *stubAPI) BookSlot(ctx context.Context, station, date, slotTime string) (noe.BookingResult, error) {
	s.calls = append(s.calls, call{method: "BookSlot", station: station, date: date, time: slotTime})
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

func (s *stubAPI) CancelBooking(ctx context.Context, station, date, slotTime string) (noe.CancelResult, error) {
	s.calls = append(s.calls, call{method: "CancelBooking", station: station, date: date, time: slotTime})
	return s.cancel, s.err
}

func newHandlers(api BookingAPI) *handlers {
	return &handlers{api: api, tel: telemetry.SlogAPI{}}
}

func request(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	switch content := res.Content[0].(type) {
	case mcp.TextContent:
		return content.Text
	case *mcp.TextContent:
		return content.Text
	}
	t.Fatalf("unexpected content %#v", res.Content[0])
	return ""
}

func TestNewRegistersTools(t *testing.T) {
	s := New(&stubAPI{}, "test", telemetry.SlogAPI{})
	require.NotNil(t, s)
}

func TestGetSchedule(t *testing.T) {
	api := &stubAPI{schedule: noe.Schedule{Dates: []string{"2026-02-09"}}}
	h := newHandlers(api)

	res, err := h.getSchedule(context.Background(), request(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Contains(t, resultText(t, res), "2026-02-09")
	require.Equal(t, []call{{method: "GetSchedule"}}, api.calls)

	res, err = h.getSchedule(context.Background(), request(map[string]any{"date": "Feb 9"}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Len(t, api.calls, 1)
}

func TestGetCreditsError(t *testing.T) {
	api := &stubAPI{err: fmt.Errorf("client.get-credits: %w", noe.SessionExpired)}
	h := newHandlers(api)

	res, err := h.getCredits(context.Background(), request(nil))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "session expired")
}

func TestBookSlot(t *testing.T) {
	api := &stubAPI{booking: noe.BookingSuccess{Message: "Booked Noe 1 on 2026-02-09 at 6:00am."}}
	h := newHandlers(api)

	res, err := h.bookSlot(context.Background(), request(map[string]any{
		"station": "Noe 1",
		"date":    "2026-02-09",
		"time":    "6:00 AM",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Equal(t, "Booked Noe 1 on 2026-02-09 at 6:00am.", resultText(t, res))
	require.Equal(t, []call{{method: "BookSlot", station: "Noe 1", date: "2026-02-09", time: "6:00 AM"}}, api.calls)
}

func TestBookSlotFailures(t *testing.T) {
	api := &stubAPI{booking: noe.BookingFailure{Kind: noe.FAILURE_NO_CREDITS, Message: "No credits remaining."}}
	h := newHandlers(api)

	res, err := h.bookSlot(context.Background(), request(map[string]any{
		"station": "140",
		"date":    "2026-02-09",
		"time":    "6:00am",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "no_credits")

	api.err = fmt.Errorf("dial tcp: connection refused")
	res, err = h.bookSlot(context.Background(), request(map[string]any{
		"station": "140",
		"date":    "2026-02-09",
		"time":    "6:00am",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "network_error")
}

func TestSlotArgumentValidation(t *testing.T) {
	api := &stubAPI{}
	h := newHandlers(api)

	invalid := []map[string]any{
		{"date": "2026-02-09", "time": "6:00am"},
		{"station": "Noe 1", "time": "6:00am"},
		{"station": "Noe 1", "date": "02/09/2026", "time": "6:00am"},
		{"station": "Noe 1", "date": "2026-02-09"},
		{"station": "Noe 1", "date": "2026-02-09", "time": "six"},
		{"station": "Noe 1", "date": "2026-02-09", "time": "18:00"},
	}
	for _, args := range invalid {
		res, err := h.bookSlot(context.Background(), request(args))
		require.NoError(t, err)
		require.True(t, res.IsError, "%v", args)

		res, err = h.cancelBooking(context.Background(), request(args))
		require.NoError(t, err)
		require.True(t, res.IsError, "%v", args)
	}
	require.Empty(t, api.calls)
}

func TestCancelBooking(t *testing.T) {
	api := &stubAPI{cancel: noe.CancelResult{Success: true, Message: "Cancelled Noe 3 on 2026-02-10 at 6:00am."}}
	h := newHandlers(api)

	args := map[string]any{"station": "Noe 3", "date": "2026-02-10", "time": "6:00am"}
	res, err := h.cancelBooking(context.Background(), request(args))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Equal(t, "Cancelled Noe 3 on 2026-02-10 at 6:00am.", resultText(t, res))

	api.cancel = noe.CancelResult{Message: "No reservation found."}
	res, err = h.cancelBooking(context.Background(), request(args))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "No reservation found.")
}

func TestListStations(t *testing.T) {
	h := newHandlers(&stubAPI{})
	res, err := h.listStations(context.Background(), request(nil))
	require.NoError(t, err)
	text := resultText(t, res)
	for _, s := range noe.Stations() {
		require.Contains(t, text, s.Name)
	}
}
