// Command fixture-export captures a stored run as a JSON replay
// fixture: its label sequence plus the expected final variable values.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/mission"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/store"
)

// #region main
func main() {
	dbPath := flag.String("db", "", "path to run history database")
	runID := flag.String("run", "", "run to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	tolerance := flag.Float64("tolerance", 1e-9, "comparison tolerance for replay checks")
	description := flag.String("desc", "", "fixture description (defaults to run metadata)")
	flag.Parse()

	if *dbPath == "" || *runID == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db eva_runs.db --run <id> --out fixture.json [--tolerance t] [--desc text]")
		os.Exit(2)
	}

	if err := run(*dbPath, *runID, *outPath, *tolerance, *description); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
// #endregion main

// #region export
func run(dbPath, runID, outPath string, tolerance float64, description string) error {
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	stored, err := db.GetRun(runID)
	if err != nil {
		return err
	}
	snaps, err := db.Snapshots(runID)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("run %s has no snapshots", runID)
	}

	if description == "" {
		description = fmt.Sprintf("run %s (%d minutes, recorded %s)",
			stored.RunID, stored.Minutes, stored.CreatedAt.Format("2006-01-02"))
	}
	if tolerance <= 0 {
		tolerance = 1e-9
	}

	// Expected values come from the stored final snapshot, not a fresh
	// simulation: the fixture pins the behavior at recording time.
	fixture := mission.Fixture{
		Description:   description,
		Sequence:      stored.Sequence,
		Tolerance:     tolerance,
		ExpectedFinal: snaps[len(snaps)-1].Values,
	}
	if err := fixture.Save(outPath); err != nil {
		return err
	}

	fmt.Printf("Exported run %s (%d minutes) to %s\n", stored.RunID, stored.Minutes, outPath)
	return nil
}
// #endregion export
