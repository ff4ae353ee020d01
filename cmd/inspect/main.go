// Command inspect browses the run history database: recent runs, or
// the per-minute vitals of one run.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/store"
)

// #region main
func main() {
	dbPath := flag.String("db", "eva_runs.db", "path to the run history database")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show per-minute detail for one run")
	varName := flag.String("var", "", "restrict detail to one variable")
	jsonOut := flag.Bool("json", false, "output as JSON instead of a table")
	flag.Parse()

	db, err := store.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if *runID != "" {
		err = runDetailMode(db, *runID, *varName, *jsonOut)
	} else {
		err = runListMode(db, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
// #endregion main

// #region list-mode
func runListMode(db *store.Store, last int, jsonOut bool) error {
	runs, err := db.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	if jsonOut {
		return printJSON(runs)
	}

	fmt.Printf("%-36s  %-12s  %7s  %-24s  %s\n", "Run", "Plan", "Minutes", "Sequence", "Time")
	for _, r := range runs {
		plan := r.PlanName
		if plan == "" {
			plan = "-"
		}
		seq := r.Sequence
		if len(seq) > 24 {
			seq = seq[:21] + "..."
		}
		fmt.Printf("%-36s  %-12s  %7d  %-24s  %s\n",
			r.RunID, plan, r.Minutes, seq, r.CreatedAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}
// #endregion list-mode

// #region detail-mode
func runDetailMode(db *store.Store, runID, varName string, jsonOut bool) error {
	snaps, err := db.Snapshots(runID)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("run %s has no snapshots", runID)
	}

	if varName != "" {
		if _, ok := snaps[0].Values[varName]; !ok {
			return fmt.Errorf("unknown variable %q", varName)
		}
	}

	if jsonOut {
		return printJSON(snaps)
	}

	if varName != "" {
		fmt.Printf("%6s  %-4s  %12s\n", "Minute", "Task", varName)
		for _, s := range snaps {
			fmt.Printf("%6d  %-4s  %12.4g\n", s.Minute, s.Task, s.Values[varName])
		}
		return nil
	}

	fmt.Printf("%6s  %-4s  %8s  %8s  %8s  %8s  %8s\n",
		"Minute", "Task", "HR", "Core C", "O2 Sat", "Fatigue", "Stress")
	for _, s := range snaps {
		fmt.Printf("%6d  %-4s  %8.4g  %8.4g  %8.4g  %8.4g  %8.4g\n",
			s.Minute, s.Task,
			s.Values["heart_rate"], s.Values["core_temp"], s.Values["oxygen_saturation"],
			s.Values["muscle_fatigue"], s.Values["stress_index"])
	}
	return nil
}
// #endregion detail-mode

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
