// Package monitor runs post-run invariant checks over a simulated
// timeline. It validates the guarantees the engine is supposed to
// uphold; a failure here means an engine bug, not a bad mission plan.
package monitor

import (
	"fmt"
	"math"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/astronaut"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/logbook"
)

// #region types
// Check is one named invariant verdict. Detail carries the first
// violation found, if any.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Result is the outcome of verifying one timeline.
type Result struct {
	Passed bool
	Checks []Check
}
// #endregion types

// #region verify
// Verify runs every invariant check over the timeline:
//
//	finite_values     every value representable at every minute
//	within_limits     clamp post-condition held at every minute
//	fatigue_monotonic muscle fatigue never decreased, rest included
//	elapsed_increment mission clock advanced by exactly 1 per minute
func Verify(tl logbook.Timeline) Result {
	checks := []Check{
		checkFinite(tl),
		checkWithinLimits(tl),
		checkFatigueMonotonic(tl),
		checkElapsedIncrement(tl),
	}

	res := Result{Passed: true, Checks: checks}
	for _, c := range checks {
		if !c.Passed {
			res.Passed = false
		}
	}
	return res
}

func checkFinite(tl logbook.Timeline) Check {
	c := Check{Name: "finite_values", Passed: true}
	for _, e := range tl.Entries {
		if !e.State.Finite() {
			c.Passed = false
			c.Detail = fmt.Sprintf("non-finite value at minute %d", e.Minute)
			return c
		}
	}
	return c
}

func checkWithinLimits(tl logbook.Timeline) Check {
	c := Check{Name: "within_limits", Passed: true}
	for _, e := range tl.Entries {
		for _, v := range astronaut.Vars() {
			lim := tl.Tables.Limits[v]
			val := e.State.Value(v)
			if val < lim.Min || val > lim.Max {
				c.Passed = false
				c.Detail = fmt.Sprintf("minute %d: %s=%g outside [%g, %g]", e.Minute, v, val, lim.Min, lim.Max)
				return c
			}
		}
	}
	return c
}

func checkFatigueMonotonic(tl logbook.Timeline) Check {
	c := Check{Name: "fatigue_monotonic", Passed: true}
	prev := tl.Tables.Baseline[astronaut.VarMuscleFatigue]
	for _, e := range tl.Entries {
		cur := e.State.MuscleFatigue
		if cur < prev {
			c.Passed = false
			c.Detail = fmt.Sprintf("minute %d: muscle_fatigue fell %g -> %g", e.Minute, prev, cur)
			return c
		}
		prev = cur
	}
	return c
}

func checkElapsedIncrement(tl logbook.Timeline) Check {
	c := Check{Name: "elapsed_increment", Passed: true}
	prev := 0.0
	for _, e := range tl.Entries {
		cur := e.State.MissionElapsedTime
		if math.Abs(cur-(prev+1)) > 1e-9 {
			c.Passed = false
			c.Detail = fmt.Sprintf("minute %d: elapsed time %g, want %g", e.Minute, cur, prev+1)
			return c
		}
		prev = cur
	}
	return c
}
// #endregion verify
