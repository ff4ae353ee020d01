// Package mission turns task-code sequences into simulated EVA
// timelines: parse, fold one minute at a time, summarize.
package mission

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/activity"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/astronaut"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/logbook"
)

// ErrInvalidTaskCode indicates an unrecognized character in a task
// sequence. Surfaced before any simulation step runs: a run either
// simulates fully or aborts before producing a misleading partial log.
var ErrInvalidTaskCode = errors.New("unrecognized task code")

// #region parse
// ParseSequence maps the documented task codes to activity kinds, one
// simulated minute per character. Codes are case-sensitive:
//
//	H = hard work, N = normal work, L = low work,
//	C = cognitive task, R = rest.
//
// Emergency response has no code in this scheme; see InjectEmergency
// or Engine.EmergencyResponse for direct invocation.
func ParseSequence(seq string) ([]activity.Kind, error) {
	kinds := make([]activity.Kind, 0, len(seq))
	for i, r := range seq {
		var k activity.Kind
		switch r {
		case 'H':
			k = activity.WorkHard
		case 'N':
			k = activity.WorkNormal
		case 'L':
			k = activity.WorkLow
		case 'C':
			k = activity.Cognitive
		case 'R':
			k = activity.Rest
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidTaskCode, string(r), i+1)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// ParseLabels maps stored per-minute activity labels back to kinds.
// Unlike ParseSequence this accepts all six labels, including E, so
// runs containing injected emergencies round-trip through storage and
// fixtures.
func ParseLabels(labels string) ([]activity.Kind, error) {
	kinds := make([]activity.Kind, 0, len(labels))
	for i, r := range labels {
		k, ok := activity.KindForCode(string(r))
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidTaskCode, string(r), i+1)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// InjectEmergency returns a copy of kinds with the given 1-based
// minutes replaced by emergency response.
func InjectEmergency(kinds []activity.Kind, minutes []int) ([]activity.Kind, error) {
	out := make([]activity.Kind, len(kinds))
	copy(out, kinds)
	for _, m := range minutes {
		if m < 1 || m > len(out) {
			return nil, fmt.Errorf("emergency minute %d outside sequence of %d minutes", m, len(out))
		}
		out[m-1] = activity.Emergency
	}
	return out, nil
}
// #endregion parse

// #region run
// Run folds the activity sequence over a fresh baseline state, strictly
// sequential: each minute depends on the previous snapshot. Returns the
// full timeline; on error nothing partial is returned.
func Run(eng *activity.Engine, kinds []activity.Kind) (logbook.Timeline, error) {
	tl := logbook.Timeline{Tables: eng.Tables()}
	st := eng.Initial()
	for i, k := range kinds {
		next, err := eng.Apply(st, k)
		if err != nil {
			return logbook.Timeline{}, fmt.Errorf("minute %d: %w", i+1, err)
		}
		st = next
		tl.Append(k.Code(), st)
	}
	return tl, nil
}
// #endregion run

// #region summary
// Summary aggregates a run for display and run-log storage.
type Summary struct {
	Minutes            int      `json:"minutes"`
	PeakHeartRate      float64  `json:"peak_heart_rate"`
	PeakCoreTemp       float64  `json:"peak_core_temp"`
	FinalMuscleFatigue float64  `json:"final_muscle_fatigue"`
	FinalStressIndex   float64  `json:"final_stress_index"`
	ClampedVars        []string `json:"clamped_vars,omitempty"`
}

// Summarize scans the timeline for peaks and for variables that sat on
// a limit boundary at any minute (clamp engaged).
func Summarize(tl logbook.Timeline) Summary {
	sum := Summary{Minutes: tl.Minutes()}

	clamped := make(map[string]bool)
	for _, e := range tl.Entries {
		if e.State.HeartRate > sum.PeakHeartRate {
			sum.PeakHeartRate = e.State.HeartRate
		}
		if e.State.CoreTemp > sum.PeakCoreTemp {
			sum.PeakCoreTemp = e.State.CoreTemp
		}
		for _, v := range astronaut.Vars() {
			lim := tl.Tables.Limits[v]
			val := e.State.Value(v)
			// Resting-at-baseline zeros sit on their lower bound by
			// definition; only report boundary contact away from baseline.
			if (val == lim.Min || val == lim.Max) && val != tl.Tables.Baseline[v] {
				clamped[string(v)] = true
			}
		}
	}
	if final, ok := tl.Final(); ok {
		sum.FinalMuscleFatigue = final.MuscleFatigue
		sum.FinalStressIndex = final.StressIndex
	}

	for v := range clamped {
		sum.ClampedVars = append(sum.ClampedVars, v)
	}
	sort.Strings(sum.ClampedVars)
	return sum
}

// String renders a short one-line description for CLI output.
func (s Summary) String() string {
	clamped := "none"
	if len(s.ClampedVars) > 0 {
		clamped = strings.Join(s.ClampedVars, ",")
	}
	return fmt.Sprintf("%d min | peak HR %.4g bpm | peak core %.4g C | fatigue %.4g | stress %.4g | at limits: %s",
		s.Minutes, s.PeakHeartRate, s.PeakCoreTemp, s.FinalMuscleFatigue, s.FinalStressIndex, clamped)
}
// #endregion summary
