package llm

import (
	"fmt"
	"strings"

	"github.com/wardplan/wardplan/core/rules"
)

const structuredSystem = `You are a constraint parser for a nurse rostering solver. You convert free-form staffing rules into a closed JSON rule grammar. You output JSON only: no explanations, no markdown, no code.`

const structuredGrammar = `Return exactly one JSON object of the form:
{
  "constraints": [
    {"kind": "...", "scope": "...", "shift": "...", "next_shift": "...", "weekday": "...", "limit": N}
  ]
}

Kinds:
- "max_count": each nurse in scope works shift at most limit times over the horizon.
- "min_count": each nurse in scope works shift at least limit times over the horizon.
- "forbid_follow": if a nurse in scope works shift on a day, they must not work next_shift the following day.
- "require_follow": if a nurse in scope works shift on a day, they must work next_shift the following day.

Fields:
- scope: "all", "seniors" or "juniors". Omit for "all".
- shift, next_shift: one of "AM", "PM", "Night", "REST", "MC", or "WORK" meaning any of AM/PM/Night.
- weekday: optional day-name filter ("Monday".."Sunday") applied to the first day of the pair, or to every counted day for count kinds.
- limit: non-negative integer, required for count kinds only.

Unused fields must be omitted. If a rule cannot be expressed in this grammar, drop it rather than invent fields.`

const fragmentSystem = `You are a senior constraint-programming engineer. You convert natural-language staffing rules into a strictly correct Go constraint fragment that is inserted into an existing boolean roster model. You output only the fragment body: no package clause, no imports, no function header, no comments, no markdown, no prose.`

const fragmentVocabularyDoc = `These symbols are pre-defined; nothing else exists:
  - Work(n, d, s): the boolean literal for nurse n (string id) on day index d working shift s
  - Nurses, Seniors, Juniors: []string of nurse ids
  - NumDays: int, number of days in the horizon; day indexes run 0..NumDays-1
  - DayOfWeek: []string of weekday names per day index (e.g. "Monday")
  - ShiftNames: []string{"AM", "PM", "Night", "REST", "MC"}
  - Sum(lits...): linear expression over literals, with methods AtLeast(n), AtMost(n), Equal(n), Between(lo, hi)
  - M.Add(constraint): add a constraint; the result supports .OnlyEnforceIf(lit)
  - M.AddImplication(a, b): literal a true forces literal b true
  - M.NewBoolVar(name): allocate a helper literal
  - lit.Not(): negate a literal

HARD RULES:
- Iterate nurses with "for _, n := range Nurses" (or Seniors/Juniors) and days with "for d := 0; d < NumDays; d++".
- Never compare date strings; use the day index or DayOfWeek[d].
- Never call .Not() on a Sum.
- Never pass a Sum or a comparison to M.AddImplication; both arguments must be literals. To gate a sum, allocate a helper with M.NewBoolVar, tie it to the sum with two OnlyEnforceIf constraints, then imply the helper.

Example, "no AM the day after a Night":
for _, n := range Nurses {
	for d := 0; d < NumDays-1; d++ {
		M.AddImplication(Work(n, d, "Night"), Work(n, d+1, "AM").Not())
	}
}

Example, "at most 5 Nights per nurse":
for _, n := range Nurses {
	lits := []Lit{}
	for d := 0; d < NumDays; d++ {
		lits = append(lits, Work(n, d, "Night"))
	}
	M.Add(Sum(lits...).AtMost(5))
}

Example, "whoever works Saturday rests Sunday":
for _, n := range Nurses {
	for d := 0; d < NumDays-1; d++ {
		if DayOfWeek[d] == "Saturday" && DayOfWeek[d+1] == "Sunday" {
			cond := M.NewBoolVar(n + "_sat")
			sat := Sum(Work(n, d, "AM"), Work(n, d, "PM"), Work(n, d, "Night"))
			M.Add(sat.AtLeast(1)).OnlyEnforceIf(cond)
			M.Add(sat.Equal(0)).OnlyEnforceIf(cond.Not())
			M.AddImplication(cond, Work(n, d+1, "REST"))
		}
	}
}`

// dayTable renders the horizon so the model can resolve "the first Monday"
// and similar references to day indexes.
func dayTable(days []rules.DayContext) string {
	var b strings.Builder
	for _, d := range days {
		fmt.Fprintf(&b, "  %d: %s (%s)\n", d.Index, d.Date, d.Weekday)
	}
	return b.String()
}

func structuredPrompt(rulesText string, days []rules.DayContext) string {
	return fmt.Sprintf("%s\n\nScheduling horizon, by day index:\n%s\nRules to parse:\n%s\n", structuredGrammar, dayTable(days), rulesText)
}

func fragmentPrompt(rulesText string, days []rules.DayContext) string {
	return fmt.Sprintf("%s\n\nScheduling horizon, by day index:\n%s\nNOW GENERATE the fragment for:\n\"\"\"%s\"\"\"\n", fragmentVocabularyDoc, dayTable(days), rulesText)
}
