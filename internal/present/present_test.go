package present

import (
	"bytes"
	"strings"
	"testing"

	"noebook-backend/internal/scrapers/noe"

	"github.com/stretchr/testify/require"
)

func station(t *testing.T, id int) noe.Station {
	s, ok := noe.StationById(id)
	if !ok {
		t.Fatalf("unknown station %d", id)
	}
	return s
}

func TestScheduleText(t *testing.T) {
	schedule := noe.Schedule{
		Slots: []noe.TimeSlot{
			{Station: station(t, 140), Date: "2026-02-09", Time: "6:00am", Status: noe.SLOT_AVAILABLE},
			{Station: station(t, 140), Date: "2026-02-09", Time: "7:00am", Status: noe.SLOT_RESERVED},
			{Station: station(t, 141), Date: "2026-02-09", Time: "6:00am", Status: noe.SLOT_WINDOW_CLOSED},
		},
		Dates: []string{"2026-02-09", "2026-02-10"},
	}

	expected := strings.Join([]string{
		"2026-02-09",
		"  Noe 1 (140)",
		"    6:00am   available",
		"    7:00am   reserved",
		"  Noe 2 (141)",
		"    6:00am   closed",
		"",
		"Bookable dates: 2026-02-09, 2026-02-10",
	}, "\n")
	require.Equal(t, expected, ScheduleText(schedule))
}

func TestScheduleTextEmpty(t *testing.T) {
	require.Equal(t, "No slots found.", ScheduleText(noe.Schedule{}))
	require.Equal(
		t,
		"No slots found.\nBookable dates: 2026-02-10",
		ScheduleText(noe.Schedule{Dates: []string{"2026-02-10"}}),
	)
}

func TestCreditsText(t *testing.T) {
	require.Equal(t, "You have 0 credits.", CreditsText(0))
	require.Equal(t, "You have 1 credit.", CreditsText(1))
	require.Equal(t, "You have 7 credits.", CreditsText(7))
}

func TestBookingsText(t *testing.T) {
	require.Equal(t, "You have no upcoming reservations.", BookingsText(nil))

	out := BookingsText([]noe.Reservation{
		{Id: "128242", Station: station(t, 140), Date: "2026-02-09", Time: "9:00pm"},
	})
	require.Equal(t, "You have 1 upcoming reservations:\n- 2026-02-09 9:00pm Noe 1 (reservation 128242)", out)
}

func TestBookingResultText(t *testing.T) {
	require.Equal(t, "Booked.", BookingResultText(noe.BookingSuccess{Message: "Booked."}))
	require.Equal(
		t,
		"Booking failed (duplicate): already yours",
		BookingResultText(noe.BookingFailure{Kind: noe.FAILURE_DUPLICATE, Message: "already yours"}),
	)
}

func TestCancelResultText(t *testing.T) {
	require.Equal(t, "Cancelled.", CancelResultText(noe.CancelResult{Success: true, Message: "Cancelled."}))
	require.Equal(t, "Cancellation failed: nope", CancelResultText(noe.CancelResult{Message: "nope"}))
}

func TestTables(t *testing.T) {
	var out bytes.Buffer

	StationsTable(&out, noe.Stations())
	for _, s := range noe.Stations() {
		require.Contains(t, out.String(), s.Name)
	}

	out.Reset()
	BookingsTable(&out, []noe.Reservation{
		{Id: "128300", Station: station(t, 142), Date: "2026-02-10", Time: "6:00am"},
	})
	require.Contains(t, out.String(), "128300")
	require.Contains(t, out.String(), "Noe 3")

	out.Reset()
	ScheduleTable(&out, noe.Schedule{
		Slots: []noe.TimeSlot{
			{Station: station(t, 144), Date: "2026-02-10", Time: "5:30pm", Status: noe.SLOT_RECURRING},
		},
		Dates: []string{"2026-02-09", "2026-02-10"},
	})
	require.Contains(t, out.String(), "Cardio")
	require.Contains(t, out.String(), "recurring")
	require.Contains(t, out.String(), "Bookable dates: 2026-02-09, 2026-02-10")

	out.Reset()
	require.NotPanics(t, func() {
		ScheduleTable(&out, noe.Schedule{
			Slots: []noe.TimeSlot{
				{Station: station(t, 140), Date: "2026-02-09", Time: "6:00am", Status: noe.SLOT_AVAILABLE},
				{Station: station(t, 140), Date: "2026-02-09", Time: "7:00am", Status: noe.SLOT_RESERVED},
			},
			Dates: []string{"2026-02-09"},
		})
	})
	require.Contains(t, out.String(), "Noe 1")
}

func TestStationsText(t *testing.T) {
	out := StationsText(noe.Stations())
	require.Contains(t, out, "140: Noe 1 (private_station, 60 min)")
	require.Contains(t, out, "144: Cardio (cardio, 30 min)")
}
