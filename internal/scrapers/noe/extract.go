package noe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"noebook-backend/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	slot_selector           = `[id^="res_time_"]`
	credit_counter_selector = "#creditCount, .creditCount"
	cancel_link_selector    = `a[href*="unreserve="]`
	available_date_selector = ".dateAvailable"
)

// res_time_{stationId}_{YYYY-MM-DD}_{time label}
var slotIdRegex = regexp.MustCompile(`^res_time_(\d+)_(\d{4}-\d{2}-\d{2})_(.+)$`)

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var unreserveRegex = regexp.MustCompile(`unreserve=(\d+)`)
var rowTimeRegex = regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2})\s*(am|pm)\b`)
var rowDateRegex = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)

func parseDocument(raw string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(raw))
}

// ExtractSchedule returns one slot per res_time_ element in document order,
// elements naming a station missing from the catalog are skipped.
func ExtractSchedule(doc *goquery.Document) []TimeSlot {
	slots := []TimeSlot{}
	doc.Find(slot_selector).Each(func(_ int, sel *goquery.Selection) {
		groups := slotIdRegex.FindStringSubmatch(sel.AttrOr("id", ""))
		if groups == nil {
			return
		}
		stationId, err := strconv.Atoi(groups[1])
		if err != nil {
			return
		}
		station, ok := StationById(stationId)
		if !ok {
			return
		}

		link := sel.Find("[title]").First()
		if link.Length() == 0 {
			link = sel
		}

		slots = append(slots, TimeSlot{
			Station: station,
			Date:    groups[2],
			Time:    groups[3],
			Status: ClassifySlotStatus(
				link.AttrOr("title", ""),
				link.AttrOr("class", ""),
			),
		})
	})
	return slots
}

// ExtractScheduleFromString is ExtractSchedule on unparsed markup.
func ExtractScheduleFromString(raw string) ([]TimeSlot, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return nil, err
	}
	return ExtractSchedule(doc), nil
}

// ExtractCredits reads the credit balance, the endpoint answers either with a bare
// number or with a fragment containing the credit counter.
func ExtractCredits(raw string) (int, error) {
	text := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}

	doc, err := parseDocument(raw)
	if err == nil {
		counter := doc.Find(credit_counter_selector).First()
		if counter.Length() > 0 {
			n, err := strconv.Atoi(strings.TrimSpace(counter.Text()))
			if err == nil {
				return n, nil
			}
		}
	}

	return 0, newParseError("credits", raw, 100)
}

// ExtractReservations reads the member's reservations from the full reservations page.
//
// Rows only show MM/DD, the year is assumed to be the year of `now`, so a
// reservation in January listed in December gets the wrong year.
func ExtractReservations(doc *goquery.Document, now time.Time) []Reservation {
	reservations := []Reservation{}
	seen := map[string]bool{}

	doc.Find(cancel_link_selector).Each(func(_ int, a *goquery.Selection) {
		groups := unreserveRegex.FindStringSubmatch(a.AttrOr("href", ""))
		if groups == nil {
			return
		}
		id := groups[1]
		if seen[id] {
			return
		}

		row := a.Closest("tr")
		if row.Length() == 0 {
			row = a.Parent()
		}
		text := htmlutil.CleanText(htmlutil.GetText(row.Get(0)))

		reservation, ok := parseReservationRow(text, id, now)
		if !ok {
			return
		}
		seen[id] = true
		reservations = append(reservations, reservation)
	})

	return reservations
}

// ExtractReservationsFromString is ExtractReservations on unparsed markup, the
// ajax variant of the reservations endpoint answers with an empty body which
// yields no reservations.
func ExtractReservationsFromString(raw string, now time.Time) ([]Reservation, error) {
	if strings.TrimSpace(raw) == "" {
		return []Reservation{}, nil
	}
	doc, err := parseDocument(raw)
	if err != nil {
		return nil, err
	}
	return ExtractReservations(doc, now), nil
}

func parseReservationRow(text, id string, now time.Time) (Reservation, bool) {
	timeGroups := rowTimeRegex.FindStringSubmatch(text)
	if timeGroups == nil {
		return Reservation{}, false
	}
	slotTime := normalizeTime(timeGroups[1] + timeGroups[2])

	dateGroups := rowDateRegex.FindStringSubmatch(text)
	if dateGroups == nil {
		return Reservation{}, false
	}
	month, _ := strconv.Atoi(dateGroups[1])
	day, _ := strconv.Atoi(dateGroups[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Reservation{}, false
	}
	date := fmt.Sprintf("%04d-%02d-%02d", now.Year(), month, day)

	var station Station
	found := false
	for _, s := range catalog {
		if strings.Contains(text, s.Name) {
			station = s
			found = true
			break
		}
	}
	if !found {
		return Reservation{}, false
	}

	return Reservation{
		Id:           id,
		Station:      station,
		Date:         date,
		Time:         slotTime,
		CancelParams: cancelForm(id, station.Id),
	}, true
}

// ExtractAvailableDates returns the dates the schedule can be viewed for, the
// first is the nearest bookable day.
func ExtractAvailableDates(doc *goquery.Document) []string {
	dates := []string{}
	doc.Find(available_date_selector).Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.AttrOr("title", ""))
		if isoDateRegex.MatchString(title) {
			dates = append(dates, title)
		}
	})
	return dates
}
