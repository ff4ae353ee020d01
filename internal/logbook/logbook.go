// Package logbook captures the minute-by-minute history of a simulated
// EVA and exports it in the tabular eva_log layout.
package logbook

import (
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/astronaut"
)

// #region timeline
// Entry is one logged minute: the activity label and the state after
// that minute completed.
type Entry struct {
	Minute int
	Code   string
	State  astronaut.State
}

// Timeline is the full history of one run, plus the reference tables
// that produced it (needed for the B/MIN/MAX export columns).
type Timeline struct {
	Tables  astronaut.Tables
	Entries []Entry
}

// Append records the state after one more simulated minute.
func (t *Timeline) Append(code string, s astronaut.State) {
	t.Entries = append(t.Entries, Entry{
		Minute: len(t.Entries) + 1,
		Code:   code,
		State:  s,
	})
}

// Minutes returns the number of simulated minutes recorded.
func (t Timeline) Minutes() int {
	return len(t.Entries)
}

// Final returns the last recorded state, if any.
func (t Timeline) Final() (astronaut.State, bool) {
	if len(t.Entries) == 0 {
		return astronaut.State{}, false
	}
	return t.Entries[len(t.Entries)-1].State, true
}

// Sequence renders the per-minute activity labels as one string.
func (t Timeline) Sequence() string {
	out := make([]byte, 0, len(t.Entries))
	for _, e := range t.Entries {
		out = append(out, e.Code...)
	}
	return string(out)
}
// #endregion timeline
