// Package present renders booking results for humans, as plain text for tool
// responses and as tables for the terminal.
package present

import (
	"fmt"
	"io"
	"strings"

	"noebook-backend/internal/scrapers/noe"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func NewTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

var statusLabels = map[noe.SlotStatus]string{
	noe.SLOT_AVAILABLE:     "available",
	noe.SLOT_RESERVED:      "reserved",
	noe.SLOT_RECURRING:     "recurring",
	noe.SLOT_WINDOW_CLOSED: "closed",
}

func statusLabel(s noe.SlotStatus) string {
	label, ok := statusLabels[s]
	if !ok {
		return string(s)
	}
	return label
}

// ScheduleText lists the slots of a schedule grouped by date and station, in the
// order the site returned them.
func ScheduleText(s noe.Schedule) string {
	var b strings.Builder

	if len(s.Slots) == 0 {
		b.WriteString("No slots found.")
	}

	currentDate := ""
	currentStation := -1
	for _, slot := range s.Slots {
		if slot.Date != currentDate {
			if currentDate != "" {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%s\n", slot.Date)
			currentDate = slot.Date
			currentStation = -1
		}
		if slot.Station.Id != currentStation {
			fmt.Fprintf(&b, "  %s (%d)\n", slot.Station.Name, slot.Station.Id)
			currentStation = slot.Station.Id
		}
		fmt.Fprintf(&b, "    %-8s %s\n", slot.Time, statusLabel(slot.Status))
	}

	if len(s.Dates) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Bookable dates: %s", strings.Join(s.Dates, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func ScheduleTable(out io.Writer, s noe.Schedule) {
	t := NewTable(out)
	t.AppendHeader(table.Row{"Date", "Station", "Id", "Time", "Status"})
	for _, slot := range s.Slots {
		t.AppendRow(table.Row{slot.Date, slot.Station.Name, slot.Station.Id, slot.Time, statusLabel(slot.Status)})
	}
	if len(s.Dates) > 0 {
		t.SetCaption("Bookable dates: %s", strings.Join(s.Dates, ", "))
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Date", AutoMerge: true},
		{Name: "Station", AutoMerge: true},
		{Name: "Id", AutoMerge: true, Align: text.AlignRight},
	})
	t.Render()
}

func CreditsText(credits int) string {
	if credits == 1 {
		return "You have 1 credit."
	}
	return fmt.Sprintf("You have %d credits.", credits)
}

func BookingsText(reservations []noe.Reservation) string {
	if len(reservations) == 0 {
		return "You have no upcoming reservations."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "You have %d upcoming reservations:\n", len(reservations))
	for _, r := range reservations {
		fmt.Fprintf(&b, "- %s %s %s (reservation %s)\n", r.Date, r.Time, r.Station.Name, r.Id)
	}
	return strings.TrimRight(b.String(), "\n")
}

func BookingsTable(out io.Writer, reservations []noe.Reservation) {
	t := NewTable(out)
	t.AppendHeader(table.Row{"Reservation", "Date", "Time", "Station"})
	for _, r := range reservations {
		t.AppendRow(table.Row{r.Id, r.Date, r.Time, r.Station.Name})
	}
	t.Render()
}

func StationsTable(out io.Writer, stations []noe.Station) {
	t := NewTable(out)
	t.AppendHeader(table.Row{"Id", "Name", "Type", "Duration"})
	for _, s := range stations {
		t.AppendRow(table.Row{s.Id, s.Name, s.Type, s.Duration.String()})
	}
	t.Render()
}

func StationsText(stations []noe.Station) string {
	lines := make([]string, len(stations))
	for i, s := range stations {
		lines[i] = fmt.Sprintf("%d: %s (%s, %d min)", s.Id, s.Name, s.Type, int(s.Duration.Minutes()))
	}
	return strings.Join(lines, "\n")
}

// BookingResultText renders either shape of a booking result.
func BookingResultText(result noe.BookingResult) string {
	switch r := result.(type) {
	case noe.BookingSuccess:
		return r.Message
	case noe.BookingFailure:
		return fmt.Sprintf("Booking failed (%s): %s", r.Kind, r.Message)
	}
	return "Booking result unknown."
}

func CancelResultText(result noe.CancelResult) string {
	if result.Success {
		return result.Message
	}
	return "Cancellation failed: " + result.Message
}
