package noe

import (
	"net/url"
	"strconv"
	"strings"
)

// the site recognizes a request purely by which fields are present in the form body

func loginForm(username, password, returnPath string) url.Values {
	return url.Values{
		"userName":  {username},
		"password":  {password},
		"returnURL": {returnPath},
		"loginForm": {"1"},
	}
}

func datesForm() url.Values {
	return url.Values{}
}

func scheduleForm(locationId, date string) url.Values {
	return url.Values{
		"locID":       {locationId},
		"refreshDate": {date},
	}
}

func creditsForm() url.Values {
	return url.Values{
		"checkCredits": {"1"},
		"forMember":    {"1"},
		"loadAjax":     {"1"},
		"layout":       {"none"},
		"ajax":         {"1"},
	}
}

// the ajax variant (with layout/ajax set) always answers with an empty body
func reservationsForm() url.Values {
	return url.Values{
		"getReservations": {"1"},
		"forMember":       {"1"},
	}
}

func reserveForm(stationId int, date, slotTime string) url.Values {
	return url.Values{
		"v2":       {"1"},
		"reserve":  {strconv.Itoa(stationId)},
		"res_date": {date},
		"res_time": {slotTime},
		"loadAjax": {"1"},
		"layout":   {"none"},
	}
}

func cancelForm(reservationId string, stationId int) url.Values {
	return url.Values{
		"v2":         {"1"},
		"unreserve":  {reservationId},
		"resourceID": {strconv.Itoa(stationId)},
		"loadAjax":   {"1"},
		"layout":     {"none"},
	}
}

// normalizeTime converts user input like "09:00 PM" to the site's "9:00pm".
func normalizeTime(t string) string {
	t = strings.ToLower(strings.Join(strings.Fields(t), ""))
	if len(t) > 1 && t[0] == '0' && t[1] >= '0' && t[1] <= '9' {
		t = t[1:]
	}
	return t
}
