package mission

import (
	"path/filepath"
	"testing"
)

func fixtureTimeline(t *testing.T) *Fixture {
	t.Helper()
	eng := testEngine(t)
	kinds, err := ParseLabels("HHHEENNRRR")
	if err != nil {
		t.Fatalf("ParseLabels: %v", err)
	}
	tl, err := Run(eng, kinds)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	f, err := FixtureFromTimeline("hard work with emergencies", tl, 1e-9)
	if err != nil {
		t.Fatalf("FixtureFromTimeline: %v", err)
	}
	return &f
}

func TestFixtureVerifyPasses(t *testing.T) {
	f := fixtureTimeline(t)
	checks, err := f.Verify(testEngine(t))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(checks) != 20 {
		t.Fatalf("got %d checks, want 20", len(checks))
	}
	for _, c := range checks {
		if !c.Passed {
			t.Fatalf("%s: got %g, want %g", c.Name, c.Got, c.Want)
		}
	}
}

func TestFixtureVerifyDetectsDrift(t *testing.T) {
	f := fixtureTimeline(t)
	f.ExpectedFinal["heart_rate"] += 1.0

	checks, err := f.Verify(testEngine(t))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	var failed bool
	for _, c := range checks {
		if c.Name == "heart_rate" && !c.Passed {
			failed = true
		}
	}
	if !failed {
		t.Fatal("tampered expectation was not flagged")
	}
}

func TestFixtureToleranceAbsorbsSmallDrift(t *testing.T) {
	f := fixtureTimeline(t)
	f.ExpectedFinal["heart_rate"] += 0.5
	f.Tolerance = 1.0

	checks, err := f.Verify(testEngine(t))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	for _, c := range checks {
		if !c.Passed {
			t.Fatalf("%s failed inside tolerance: got %g, want %g", c.Name, c.Got, c.Want)
		}
	}
}

func TestFixtureSaveLoadRoundTrip(t *testing.T) {
	f := fixtureTimeline(t)
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if loaded.Sequence != f.Sequence {
		t.Fatalf("sequence %q, want %q", loaded.Sequence, f.Sequence)
	}
	if loaded.Description != f.Description {
		t.Fatalf("description %q, want %q", loaded.Description, f.Description)
	}
	if len(loaded.ExpectedFinal) != len(f.ExpectedFinal) {
		t.Fatalf("expected %d values, got %d", len(f.ExpectedFinal), len(loaded.ExpectedFinal))
	}
	for name, want := range f.ExpectedFinal {
		if got := loaded.ExpectedFinal[name]; got != want {
			t.Fatalf("%s: %g, want %g", name, got, want)
		}
	}
}

func TestLoadFixtureDefaultsTolerance(t *testing.T) {
	f := fixtureTimeline(t)
	f.Tolerance = 0
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if loaded.Tolerance != 1e-9 {
		t.Fatalf("tolerance %g, want default 1e-9", loaded.Tolerance)
	}
}

func TestFixtureFromEmptyTimelineFails(t *testing.T) {
	eng := testEngine(t)
	tl, err := Run(eng, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := FixtureFromTimeline("empty", tl, 1e-9); err == nil {
		t.Fatal("expected error for empty timeline")
	}
}
