package roster

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format used on the wire and in leave maps.
const DateLayout = "2006-01-02"

// Day is one calendar day of the scheduling horizon.
type Day struct {
	Index   int
	Date    string
	Weekday string
}

// InvalidRangeError reports a malformed date range. It is raised before any
// model work happens.
type InvalidRangeError struct {
	Start  string
	End    string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range %q..%q: %s", e.Start, e.End, e.Reason)
}

// ExpandCalendar turns an inclusive start/end date pair into the ordered day
// sequence of the horizon. It has no side effects.
func ExpandCalendar(start, end string) ([]Day, error) {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, &InvalidRangeError{Start: start, End: end, Reason: "start date is not an ISO date"}
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, &InvalidRangeError{Start: start, End: end, Reason: "end date is not an ISO date"}
	}
	if to.Before(from) {
		return nil, &InvalidRangeError{Start: start, End: end, Reason: "end date precedes start date"}
	}
	n := int(to.Sub(from).Hours()/24) + 1
	days := make([]Day, n)
	for i := 0; i < n; i++ {
		d := from.AddDate(0, 0, i)
		days[i] = Day{
			Index:   i,
			Date:    d.Format(DateLayout),
			Weekday: d.Weekday().String(),
		}
	}
	return days, nil
}
