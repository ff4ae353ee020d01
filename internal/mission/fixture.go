package mission

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/activity"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/astronaut"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/logbook"
)

// #region fixture-types
// Fixture is a self-contained regression artifact: a label sequence and
// the expected final variable values, checked within a tolerance. Label
// strings use the per-minute activity letters (E allowed).
type Fixture struct {
	Description   string             `json:"description"`
	Sequence      string             `json:"sequence"`
	Tolerance     float64            `json:"tolerance"`
	ExpectedFinal map[string]float64 `json:"expected_final"`
}

// FixtureCheck is the comparison result for one expected value.
type FixtureCheck struct {
	Name   string
	Want   float64
	Got    float64
	Passed bool
}
// #endregion fixture-types

// #region fixture-io
// LoadFixture reads a fixture JSON file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.Tolerance <= 0 {
		f.Tolerance = 1e-9
	}
	return f, nil
}

// Save writes the fixture as indented JSON.
func (f Fixture) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// FixtureFromTimeline captures a completed run as a fixture, expecting
// every variable's final value plus mission elapsed time.
func FixtureFromTimeline(description string, tl logbook.Timeline, tolerance float64) (Fixture, error) {
	final, ok := tl.Final()
	if !ok {
		return Fixture{}, fmt.Errorf("cannot build fixture from empty timeline")
	}
	expected := make(map[string]float64, len(astronaut.Vars())+1)
	for _, v := range astronaut.Vars() {
		expected[string(v)] = final.Value(v)
	}
	expected["mission_elapsed_time"] = final.MissionElapsedTime

	if tolerance <= 0 {
		tolerance = 1e-9
	}
	return Fixture{
		Description:   description,
		Sequence:      tl.Sequence(),
		Tolerance:     tolerance,
		ExpectedFinal: expected,
	}, nil
}
// #endregion fixture-io

// #region fixture-verify
// Verify re-simulates the fixture's sequence and compares the final
// state against the expected values. Returns one check per expectation.
func (f Fixture) Verify(eng *activity.Engine) ([]FixtureCheck, error) {
	kinds, err := ParseLabels(f.Sequence)
	if err != nil {
		return nil, err
	}
	tl, err := Run(eng, kinds)
	if err != nil {
		return nil, err
	}
	final, ok := tl.Final()
	if !ok {
		return nil, fmt.Errorf("fixture sequence is empty")
	}

	checks := make([]FixtureCheck, 0, len(f.ExpectedFinal))
	for _, v := range astronaut.Vars() {
		want, ok := f.ExpectedFinal[string(v)]
		if !ok {
			continue
		}
		got := final.Value(v)
		checks = append(checks, FixtureCheck{
			Name:   string(v),
			Want:   want,
			Got:    got,
			Passed: math.Abs(got-want) <= f.Tolerance,
		})
	}
	if want, ok := f.ExpectedFinal["mission_elapsed_time"]; ok {
		got := final.MissionElapsedTime
		checks = append(checks, FixtureCheck{
			Name:   "mission_elapsed_time",
			Want:   want,
			Got:    got,
			Passed: math.Abs(got-want) <= f.Tolerance,
		})
	}
	return checks, nil
}
// #endregion fixture-verify
