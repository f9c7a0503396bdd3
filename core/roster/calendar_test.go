package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandCalendarWeek(t *testing.T) {
	days, err := ExpandCalendar("2024-07-01", "2024-07-07")
	require.NoError(t, err)
	require.Len(t, days, 7)

	require.Equal(t, 0, days[0].Index)
	require.Equal(t, "2024-07-01", days[0].Date)
	require.Equal(t, "Monday", days[0].Weekday)

	require.Equal(t, 6, days[6].Index)
	require.Equal(t, "2024-07-07", days[6].Date)
	require.Equal(t, "Sunday", days[6].Weekday)
}

func TestExpandCalendarSingleDay(t *testing.T) {
	days, err := ExpandCalendar("2024-07-01", "2024-07-01")
	require.NoError(t, err)
	require.Len(t, days, 1)
}

func TestExpandCalendarCrossesMonth(t *testing.T) {
	days, err := ExpandCalendar("2024-02-28", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, days, 3) // leap year
	require.Equal(t, "2024-02-29", days[1].Date)
}

func TestExpandCalendarErrors(t *testing.T) {
	cases := []struct{ start, end string }{
		{"01/07/2024", "2024-07-07"},
		{"2024-07-01", "07-07-2024"},
		{"2024-07-07", "2024-07-01"},
		{"", "2024-07-07"},
	}
	for _, c := range cases {
		_, err := ExpandCalendar(c.start, c.end)
		require.Error(t, err, "%q..%q", c.start, c.end)
		var rangeErr *InvalidRangeError
		require.True(t, errors.As(err, &rangeErr))
	}
}
