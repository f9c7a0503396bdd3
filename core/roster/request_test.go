package roster

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestValidate(t *testing.T) {
	var req Request
	err := req.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "start_date")
	require.Contains(t, err.Error(), "end_date")
	require.Contains(t, err.Error(), "senior_ids/junior_ids")

	req = Request{StartDate: "2024-07-01", EndDate: "2024-07-07", JuniorIDs: []string{"j1"}}
	require.NoError(t, req.Validate())
}

func TestRequestApplyDefaults(t *testing.T) {
	var req Request
	req.ApplyDefaults()
	require.Equal(t, 168, *req.MaxHoursPerWeek)
	require.Equal(t, 1, *req.MinNursesPerShift)
	require.Equal(t, 1, *req.MinAMCoverage)
	require.Equal(t, 0, req.MinHoursPerWeek)
	require.Equal(t, 0, req.MinSeniorsPerShift)

	req = Request{MaxHoursPerWeek: intp(40), MinNursesPerShift: intp(2), MinAMCoverage: intp(30)}
	req.ApplyDefaults()
	require.Equal(t, 40, *req.MaxHoursPerWeek)
	require.Equal(t, 2, *req.MinNursesPerShift)
	require.Equal(t, 30, *req.MinAMCoverage)
}

func TestRequestExplicitZerosSurviveDefaulting(t *testing.T) {
	var req Request
	body := `{"start_date":"2024-07-01","end_date":"2024-07-01",
		"senior_ids":["s1"],"min_nurses_per_shift":0,"min_am_coverage":0}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	req.ApplyDefaults()

	p := req.Params()
	require.Equal(t, 0, p.MinNursesPerShift, "explicit zero must not be remapped")
	require.Equal(t, 0, p.MinAMCoveragePct, "explicit zero must not be remapped")
	require.Equal(t, 168, p.MaxHoursPerWeek, "absent field still defaults")
}

func TestRequestNursesOrder(t *testing.T) {
	req := Request{SeniorIDs: []string{"s1", "s2"}, JuniorIDs: []string{"j1"}}
	require.Equal(t, []string{"s1", "s2", "j1"}, req.Nurses())
}

func TestEntryJSON(t *testing.T) {
	e := Entry{Nurse: "s1", Date: "2024-07-01", Shift: ShiftAM}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	require.JSONEq(t, `["s1","2024-07-01","AM"]`, string(data))

	var back Entry
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, e, back)
}

func TestResponseJSON(t *testing.T) {
	ok := Response{Schedule: []Entry{{Nurse: "s1", Date: "2024-07-01", Shift: ShiftRest}}}
	data, err := json.Marshal(ok)
	require.NoError(t, err)
	require.JSONEq(t, `{"s":[["s1","2024-07-01","REST"]]}`, string(data))

	fail := Response{Error: "No feasible solution found."}
	data, err = json.Marshal(fail)
	require.NoError(t, err)
	require.JSONEq(t, `{"error":"No feasible solution found."}`, string(data))
}
