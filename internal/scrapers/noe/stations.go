package noe

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/antzucaro/matchr"
)

type StationType string

const (
	STATION_PRIVATE  StationType = "private_station"
	STATION_OPEN_GYM StationType = "open_gym"
	STATION_CARDIO   StationType = "cardio"
)

// Station is a bookable piece of equipment or room at the location.
type Station struct {
	Id       int
	Name     string
	Type     StationType
	Duration time.Duration
}

// catalog is ordered, reservation rows are matched against station names in this
// order and the first hit wins.
var catalog = []Station{
	{Id: 140, Name: "Noe 1", Type: STATION_PRIVATE, Duration: time.Hour},
	{Id: 141, Name: "Noe 2", Type: STATION_PRIVATE, Duration: time.Hour},
	{Id: 142, Name: "Noe 3", Type: STATION_PRIVATE, Duration: time.Hour},
	{Id: 143, Name: "Open Gym", Type: STATION_OPEN_GYM, Duration: time.Hour},
	{Id: 144, Name: "Cardio", Type: STATION_CARDIO, Duration: 30 * time.Minute},
}

// Stations returns a copy of the station catalog.
func Stations() []Station {
	out := make([]Station, len(catalog))
	copy(out, catalog)
	return out
}

// StationById looks up a station in the catalog.
func StationById(id int) (Station, bool) {
	for _, s := range catalog {
		if s.Id == id {
			return s, true
		}
	}
	return Station{}, false
}

// ResolveStation resolves a user supplied station reference, which is either a
// station name (case-insensitive) or its numeric id.
func ResolveStation(ref string) (Station, bool) {
	ref = strings.TrimSpace(ref)
	for _, s := range catalog {
		if strings.EqualFold(s.Name, ref) {
			return s, true
		}
	}
	id, err := strconv.Atoi(ref)
	if err != nil {
		return Station{}, false
	}
	return StationById(id)
}

func stationNames() []string {
	names := make([]string, len(catalog))
	for i, s := range catalog {
		names[i] = s.Name
	}
	return names
}

// suggestStation returns the catalog name closest to ref, or "" if nothing is
// remotely similar.
func suggestStation(ref string) string {
	best := ""
	var bestScore float64
	for _, s := range catalog {
		score := matchr.JaroWinkler(strings.ToLower(ref), strings.ToLower(s.Name), false)
		if score > bestScore {
			best = s.Name
			bestScore = score
		}
	}
	if bestScore < 0.7 {
		return ""
	}
	return best
}

func unknownStationMessage(ref string) string {
	msg := fmt.Sprintf(
		"Unknown station '%s'. Valid stations: %s.",
		ref,
		strings.Join(stationNames(), ", "),
	)
	if suggestion := suggestStation(ref); suggestion != "" {
		msg += fmt.Sprintf(" Did you mean '%s'?", suggestion)
	}
	return msg
}
