package roster

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Request is the caller-facing shape of one scheduling request. Parameters
// whose default is not zero are pointers so an explicit 0 in the body stays
// distinguishable from an absent key.
type Request struct {
	StartDate           string              `json:"start_date"`
	EndDate             string              `json:"end_date"`
	SeniorIDs           []string            `json:"senior_ids"`
	JuniorIDs           []string            `json:"junior_ids"`
	RulesText           string              `json:"rules_text"`
	MinHoursPerWeek     int                 `json:"min_hours_per_week"`
	MaxHoursPerWeek     *int                `json:"max_hours_per_week"`
	MinNursesPerShift   *int                `json:"min_nurses_per_shift"`
	MinSeniorsPerShift  int                 `json:"min_seniors_per_shift"`
	MinAMCoverage       *int                `json:"min_am_coverage"`
	MinSeniorAMCoverage int                 `json:"min_senior_am_coverage"`
	MCPreferences       map[string][]string `json:"mc_preferences,omitempty"`
}

// Validate checks the fields a request cannot do without.
func (r *Request) Validate() error {
	var missing []string
	if r.StartDate == "" {
		missing = append(missing, "start_date")
	}
	if r.EndDate == "" {
		missing = append(missing, "end_date")
	}
	if len(r.SeniorIDs) == 0 && len(r.JuniorIDs) == 0 {
		missing = append(missing, "senior_ids/junior_ids")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ApplyDefaults fills absent numeric parameters with the service defaults:
// unlimited weekly hours, one nurse per shift, 1% AM coverage. A parameter
// the caller set, zero included, is left as given.
func (r *Request) ApplyDefaults() {
	if r.MaxHoursPerWeek == nil {
		r.MaxHoursPerWeek = intp(defaultMaxHoursPerWeek)
	}
	if r.MinNursesPerShift == nil {
		r.MinNursesPerShift = intp(defaultMinNursesPerShift)
	}
	if r.MinAMCoverage == nil {
		r.MinAMCoverage = intp(defaultMinAMCoverage)
	}
}

// Nurses returns every nurse identifier, seniors first. The order is the
// canonical iteration order for variable allocation and projection.
func (r *Request) Nurses() []string {
	out := make([]string, 0, len(r.SeniorIDs)+len(r.JuniorIDs))
	out = append(out, r.SeniorIDs...)
	return append(out, r.JuniorIDs...)
}

// Params extracts the numeric knobs consumed by the model builder, applying
// the defaults for fields the caller left out.
func (r *Request) Params() Params {
	return Params{
		MinHoursPerWeek:        r.MinHoursPerWeek,
		MaxHoursPerWeek:        intOr(r.MaxHoursPerWeek, defaultMaxHoursPerWeek),
		MinNursesPerShift:      intOr(r.MinNursesPerShift, defaultMinNursesPerShift),
		MinSeniorsPerShift:     r.MinSeniorsPerShift,
		MinAMCoveragePct:       intOr(r.MinAMCoverage, defaultMinAMCoverage),
		MinSeniorAMCoveragePct: r.MinSeniorAMCoverage,
	}
}

const (
	defaultMaxHoursPerWeek   = 168
	defaultMinNursesPerShift = 1
	defaultMinAMCoverage     = 1
)

func intp(v int) *int { return &v }

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// Entry is one (nurse, date, shift) assignment. It marshals as the
// three-element array used on the wire.
type Entry struct {
	Nurse string
	Date  string
	Shift Shift
}

// MarshalJSON encodes the entry as [nurse, date, shift].
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{e.Nurse, e.Date, string(e.Shift)})
}

// UnmarshalJSON decodes a [nurse, date, shift] array.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var arr [3]string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	e.Nurse, e.Date, e.Shift = arr[0], arr[1], Shift(arr[2])
	return nil
}

// Response is the wire shape produced for the caller: either a schedule or
// an error message, never both.
type Response struct {
	Schedule []Entry `json:"s,omitempty"`
	Error    string  `json:"error,omitempty"`
}
