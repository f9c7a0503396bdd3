package roster

// Shift is one of the fixed shift kinds a nurse can hold on a day.
type Shift string

const (
	ShiftAM    Shift = "AM"
	ShiftPM    Shift = "PM"
	ShiftNight Shift = "Night"
	ShiftRest  Shift = "REST"
	ShiftMC    Shift = "MC"
)

// Shifts lists every shift kind in canonical order.
var Shifts = []Shift{ShiftAM, ShiftPM, ShiftNight, ShiftRest, ShiftMC}

// WorkingShifts are the shifts that count towards coverage and hours.
var WorkingShifts = []Shift{ShiftAM, ShiftPM, ShiftNight}

// Hours returns the duration of the shift in hours.
func (s Shift) Hours() int {
	switch s {
	case ShiftAM, ShiftPM:
		return 7
	case ShiftNight:
		return 10
	default:
		return 0
	}
}

// ShiftNames returns the canonical shift names as strings, in order.
func ShiftNames() []string {
	names := make([]string, len(Shifts))
	for i, s := range Shifts {
		names[i] = string(s)
	}
	return names
}

func shiftIndex(s Shift) int {
	for i, k := range Shifts {
		if k == s {
			return i
		}
	}
	return -1
}
