package activity

import (
	"errors"
	"math"
	"testing"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/astronaut"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	model, err := DefaultModel()
	if err != nil {
		t.Fatalf("DefaultModel: %v", err)
	}
	eng, err := NewEngine(model)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng
}

func TestApplyAdvancesClockByOneMinute(t *testing.T) {
	eng := testEngine(t)
	st := eng.Initial()

	for _, k := range Kinds() {
		next, err := eng.Apply(st, k)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if next.MissionElapsedTime != st.MissionElapsedTime+1 {
			t.Fatalf("%s: elapsed %g, want %g", k, next.MissionElapsedTime, st.MissionElapsedTime+1)
		}
	}
}

func TestRestAtBaselineIsFixedPoint(t *testing.T) {
	eng := testEngine(t)
	st := eng.Initial()

	next, err := eng.Rest(st)
	if err != nil {
		t.Fatalf("Rest: %v", err)
	}

	// Physiological and emotional variables sit at the attractor: zero delta.
	for _, v := range []astronaut.Var{
		astronaut.VarHeartRate,
		astronaut.VarRespirationRate,
		astronaut.VarMetabolicRate,
		astronaut.VarCoreTemp,
		astronaut.VarStressIndex,
		astronaut.VarAdrenalineLvl,
		astronaut.VarFear,
		astronaut.VarMuscleFatigue,
	} {
		if next.Value(v) != st.Value(v) {
			t.Fatalf("%s moved at baseline rest: %g -> %g", v, st.Value(v), next.Value(v))
		}
	}
	// The clock still advances per its own rule.
	if next.MissionElapsedTime != 1 {
		t.Fatalf("elapsed %g, want 1", next.MissionElapsedTime)
	}
}

func TestRestRecoversStressAndAdrenaline(t *testing.T) {
	eng := testEngine(t)
	st := eng.Initial()
	st.StressIndex = 0.5
	st.AdrenalineLvl = 0.6

	prevStress, prevAdrenaline := st.StressIndex, st.AdrenalineLvl
	for minute := 1; minute <= 30; minute++ {
		next, err := eng.Rest(st)
		if err != nil {
			t.Fatalf("minute %d: %v", minute, err)
		}
		if next.StressIndex > prevStress || next.AdrenalineLvl > prevAdrenaline {
			t.Fatalf("minute %d: recovery reversed", minute)
		}
		if prevStress > 0 && next.StressIndex >= prevStress {
			t.Fatalf("minute %d: stress did not strictly decrease (%g)", minute, next.StressIndex)
		}
		prevStress, prevAdrenaline = next.StressIndex, next.AdrenalineLvl
		st = next
	}

	// Converged back to baseline within the budget.
	if st.StressIndex != 0 || st.AdrenalineLvl != 0 {
		t.Fatalf("not converged: stress %g, adrenaline %g", st.StressIndex, st.AdrenalineLvl)
	}
}

func TestRestNeverReducesFatigue(t *testing.T) {
	eng := testEngine(t)
	st := eng.Initial()
	st.MuscleFatigue = 0.4

	for minute := 1; minute <= 20; minute++ {
		next, err := eng.Rest(st)
		if err != nil {
			t.Fatalf("minute %d: %v", minute, err)
		}
		if next.MuscleFatigue < st.MuscleFatigue {
			t.Fatalf("minute %d: fatigue fell %g -> %g", minute, st.MuscleFatigue, next.MuscleFatigue)
		}
		st = next
	}
	if st.MuscleFatigue != 0.4 {
		t.Fatalf("rest changed fatigue: %g", st.MuscleFatigue)
	}
}

func TestWorkIntensityOrdering(t *testing.T) {
	eng := testEngine(t)
	base := eng.Initial()

	low, err := eng.WorkLow(base)
	if err != nil {
		t.Fatalf("WorkLow: %v", err)
	}
	normal, err := eng.WorkNormal(base)
	if err != nil {
		t.Fatalf("WorkNormal: %v", err)
	}
	hard, err := eng.WorkHard(base)
	if err != nil {
		t.Fatalf("WorkHard: %v", err)
	}

	for _, probe := range []struct {
		name             string
		low, normal, hard float64
	}{
		{"heart_rate", low.HeartRate, normal.HeartRate, hard.HeartRate},
		{"metabolic_rate", low.MetabolicRate, normal.MetabolicRate, hard.MetabolicRate},
		{"muscle_fatigue", low.MuscleFatigue, normal.MuscleFatigue, hard.MuscleFatigue},
	} {
		if !(probe.low < probe.normal && probe.normal < probe.hard) {
			t.Fatalf("%s ordering violated: low %g, normal %g, hard %g",
				probe.name, probe.low, probe.normal, probe.hard)
		}
		if probe.low <= base.Value(astronaut.Var(probe.name)) {
			t.Fatalf("%s did not rise under low work", probe.name)
		}
	}
}

func TestHardWorkSaturatesMetabolicRate(t *testing.T) {
	eng := testEngine(t)
	limits := eng.Tables().Limits
	st := eng.Initial()

	var atMaxSince int
	for minute := 1; minute <= 20; minute++ {
		next, err := eng.WorkHard(st)
		if err != nil {
			t.Fatalf("minute %d: %v", minute, err)
		}
		for _, v := range astronaut.Vars() {
			lim := limits[v]
			if val := next.Value(v); val < lim.Min || val > lim.Max {
				t.Fatalf("minute %d: %s=%g outside [%g, %g]", minute, v, val, lim.Min, lim.Max)
			}
		}
		if atMaxSince == 0 && next.MetabolicRate == limits[astronaut.VarMetabolicRate].Max {
			atMaxSince = minute
		}
		st = next
	}

	if atMaxSince == 0 || atMaxSince > 15 {
		t.Fatalf("metabolic rate not saturated by minute 15 (first at max: %d)", atMaxSince)
	}
	// Once pinned, the clamp holds it there.
	if st.MetabolicRate != limits[astronaut.VarMetabolicRate].Max {
		t.Fatalf("metabolic rate left the ceiling: %g", st.MetabolicRate)
	}
	// CO2 chases a target above its ceiling, so it pins too.
	if st.BloodCO2Pa != limits[astronaut.VarBloodCO2Pa].Max {
		t.Fatalf("blood CO2 = %g, want pinned at %g", st.BloodCO2Pa, limits[astronaut.VarBloodCO2Pa].Max)
	}
}

func TestCognitiveBelowEmergency(t *testing.T) {
	eng := testEngine(t)
	base := eng.Initial()

	cog, err := eng.WorkCognitive(base)
	if err != nil {
		t.Fatalf("WorkCognitive: %v", err)
	}
	emg, err := eng.EmergencyResponse(base)
	if err != nil {
		t.Fatalf("EmergencyResponse: %v", err)
	}

	// Cognitive work leans on the mind, not the body.
	if cog.CognitiveLoad <= base.CognitiveLoad {
		t.Fatal("cognitive load did not rise under cognitive work")
	}
	if cog.HeartRate >= emg.HeartRate {
		t.Fatalf("cognitive physiological delta (%g) should sit below emergency (%g)", cog.HeartRate, emg.HeartRate)
	}

	// Emergency carries the largest emotional spikes in the model.
	for _, probe := range []struct {
		name     string
		cog, emg float64
	}{
		{"stress_index", cog.StressIndex, emg.StressIndex},
		{"fear", cog.Fear, emg.Fear},
		{"adrenaline_lvl", cog.AdrenalineLvl, emg.AdrenalineLvl},
	} {
		if probe.emg <= probe.cog {
			t.Fatalf("%s: emergency %g should exceed cognitive %g", probe.name, probe.emg, probe.cog)
		}
	}
}

func TestClampInvariantAcrossMixedSequence(t *testing.T) {
	eng := testEngine(t)
	limits := eng.Tables().Limits
	st := eng.Initial()

	sequence := []Kind{
		WorkHard, WorkHard, WorkHard, Emergency, Emergency,
		WorkNormal, WorkNormal, Cognitive, Cognitive, Cognitive,
		Rest, Rest, WorkLow, WorkHard, WorkHard,
		WorkHard, WorkHard, Rest, Emergency, Rest,
	}

	prevFatigue := st.MuscleFatigue
	for i, k := range sequence {
		next, err := eng.Apply(st, k)
		if err != nil {
			t.Fatalf("step %d (%s): %v", i+1, k, err)
		}
		for _, v := range astronaut.Vars() {
			lim := limits[v]
			if val := next.Value(v); val < lim.Min || val > lim.Max {
				t.Fatalf("step %d (%s): %s=%g outside [%g, %g]", i+1, k, v, val, lim.Min, lim.Max)
			}
		}
		if next.MuscleFatigue < prevFatigue {
			t.Fatalf("step %d (%s): fatigue fell %g -> %g", i+1, k, prevFatigue, next.MuscleFatigue)
		}
		prevFatigue = next.MuscleFatigue
		st = next
	}
}

func TestApplyDeterministic(t *testing.T) {
	eng := testEngine(t)
	st := eng.Initial()

	a, err := eng.Apply(st, WorkNormal)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	b, err := eng.Apply(st, WorkNormal)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if a != b {
		t.Fatal("same input produced different snapshots")
	}
}

func TestApplyRejectsNonFiniteState(t *testing.T) {
	eng := testEngine(t)
	st := eng.Initial()
	st.HeartRate = math.NaN()

	if _, err := eng.Apply(st, Rest); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestTowardTarget(t *testing.T) {
	cases := []struct {
		current, target, step, want float64
	}{
		{70, 110, 4, 74},    // rising, step-limited
		{108, 110, 4, 110},  // rising, stops at target
		{110, 70, 5, 105},   // falling, step-limited
		{71, 70, 5, 70},     // falling, stops at target
		{70, 70, 5, 70},     // at target, zero delta
	}
	for _, c := range cases {
		if got := towardTarget(c.current, c.target, c.step); got != c.want {
			t.Fatalf("towardTarget(%g, %g, %g) = %g, want %g", c.current, c.target, c.step, got, c.want)
		}
	}
}

func TestKindCodes(t *testing.T) {
	for _, k := range Kinds() {
		code := k.Code()
		back, ok := KindForCode(code)
		if !ok || back != k {
			t.Fatalf("%s did not round-trip through code %q", k, code)
		}
	}
	if _, ok := KindForCode("X"); ok {
		t.Fatal("unknown code should not resolve")
	}
}
