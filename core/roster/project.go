package roster

import "github.com/wardplan/wardplan/core/cp"

// Project reads a solved assignment into the flat roster listing: one entry
// per nurse per day, seniors first, days in horizon order.
func Project(ix *VarIndex, sol *cp.Solution) []Entry {
	entries := make([]Entry, 0, len(ix.nurses)*len(ix.days))
	for _, nurse := range ix.nurses {
		for d, day := range ix.days {
			for _, shift := range Shifts {
				if sol.Value(ix.Work(nurse, d, shift)) {
					entries = append(entries, Entry{Nurse: nurse, Date: day.Date, Shift: shift})
					break
				}
			}
		}
	}
	return entries
}
