// Command replay re-simulates a stored run (or a JSON fixture) and
// verifies the recomputed timeline: stored snapshots must match and
// every engine invariant must hold.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/activity"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/astronaut"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/logbook"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/mission"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/monitor"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/store"
)

const matchTolerance = 1e-9

// #region main
func main() {
	dbPath := flag.String("db", "", "path to run history database (DB mode)")
	runID := flag.String("run", "", "run to replay (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	modelPath := flag.String("model", "", "YAML model override")
	flag.Parse()

	dbMode := *dbPath != "" && *runID != ""
	fixtureMode := *fixturePath != ""
	if dbMode == fixtureMode {
		fmt.Fprintln(os.Stderr, "usage: replay --db eva_runs.db --run <id> [--model model.yaml]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json [--model model.yaml]")
		os.Exit(2)
	}

	eng, err := buildEngine(*modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine: %v\n", err)
		os.Exit(2)
	}

	var exitCode int
	if fixtureMode {
		exitCode = runFixtureMode(eng, *fixturePath)
	} else {
		exitCode = runDBMode(eng, *dbPath, *runID)
	}
	os.Exit(exitCode)
}

func buildEngine(modelPath string) (*activity.Engine, error) {
	model, err := activity.DefaultModel()
	if modelPath != "" {
		model, err = activity.LoadModel(modelPath)
	}
	if err != nil {
		return nil, err
	}
	return activity.NewEngine(model)
}
// #endregion main

// #region db-mode
func runDBMode(eng *activity.Engine, dbPath, runID string) int {
	db, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer db.Close()

	run, err := db.GetRun(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load run: %v\n", err)
		return 2
	}
	stored, err := db.Snapshots(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load snapshots: %v\n", err)
		return 2
	}

	kinds, err := mission.ParseLabels(run.Sequence)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse stored sequence: %v\n", err)
		return 2
	}
	tl, err := mission.Run(eng, kinds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "re-simulate: %v\n", err)
		return 2
	}

	mismatches := compareTimeline(tl, stored)
	verdict := monitor.Verify(tl)

	fmt.Printf("Replayed run %s: %d minutes (%s)\n", run.RunID, tl.Minutes(), run.Sequence)
	for _, m := range mismatches {
		fmt.Printf("  MISMATCH %s\n", m)
	}
	printVerdict(verdict)

	if len(mismatches) > 0 || !verdict.Passed {
		return 1
	}
	fmt.Println("Replay matches stored snapshots; all invariants hold.")
	return 0
}

// compareTimeline diffs a recomputed timeline against stored snapshots.
func compareTimeline(tl logbook.Timeline, stored []store.Snapshot) []string {
	var mismatches []string
	if len(stored) != len(tl.Entries) {
		mismatches = append(mismatches,
			fmt.Sprintf("minute count: stored %d, recomputed %d", len(stored), len(tl.Entries)))
		return mismatches
	}
	for i, snap := range stored {
		entry := tl.Entries[i]
		if snap.Task != entry.Code {
			mismatches = append(mismatches,
				fmt.Sprintf("minute %d: task %s stored, %s recomputed", snap.Minute, snap.Task, entry.Code))
			continue
		}
		for name, want := range snap.Values {
			var got float64
			if name == "mission_elapsed_time" {
				got = entry.State.MissionElapsedTime
			} else {
				got = entry.State.Value(astronaut.Var(name))
			}
			if math.Abs(got-want) > matchTolerance {
				mismatches = append(mismatches,
					fmt.Sprintf("minute %d: %s stored %.6g, recomputed %.6g", snap.Minute, name, want, got))
			}
		}
	}
	return mismatches
}
// #endregion db-mode

// #region fixture-mode
func runFixtureMode(eng *activity.Engine, path string) int {
	fixture, err := mission.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	checks, err := fixture.Verify(eng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify fixture: %v\n", err)
		return 2
	}

	failed := 0
	fmt.Printf("Fixture: %s (%d minutes)\n", fixture.Description, len(fixture.Sequence))
	for _, c := range checks {
		status := "ok"
		if !c.Passed {
			status = "FAIL"
			failed++
		}
		fmt.Printf("  %-20s want %.6g got %.6g  %s\n", c.Name, c.Want, c.Got, status)
	}
	if failed > 0 {
		fmt.Printf("%d of %d checks failed\n", failed, len(checks))
		return 1
	}
	fmt.Printf("All %d checks passed.\n", len(checks))
	return 0
}
// #endregion fixture-mode

func printVerdict(res monitor.Result) {
	for _, c := range res.Checks {
		status := "ok"
		if !c.Passed {
			status = "FAIL: " + c.Detail
		}
		fmt.Printf("  %-18s %s\n", c.Name, status)
	}
}
