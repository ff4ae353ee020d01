// Command plans manages named mission plans: reusable task sequences
// stored alongside run history.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/mission"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/store"
)

// #region main
func main() {
	dbPath := flag.String("db", "eva_runs.db", "path to the run history database")
	add := flag.String("add", "", "store a plan under this name")
	sequence := flag.String("sequence", "", "task sequence for --add")
	file := flag.String("file", "", "file containing the task sequence for --add")
	list := flag.Bool("list", false, "list stored plans")
	show := flag.String("show", "", "print one stored plan's sequence")
	flag.Parse()

	db, err := store.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	switch {
	case *add != "":
		err = runAdd(db, *add, *sequence, *file)
	case *list:
		err = runList(db)
	case *show != "":
		err = runShow(db, *show)
	default:
		fmt.Fprintln(os.Stderr, "usage: plans --add name (--sequence HNLCR... | --file path)")
		fmt.Fprintln(os.Stderr, "       plans --list | --show name")
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
// #endregion main

// #region commands
func runAdd(db *store.Store, name, sequence, file string) error {
	if (sequence == "") == (file == "") {
		return fmt.Errorf("--add needs exactly one of --sequence or --file")
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read sequence file: %w", err)
		}
		sequence = strings.Join(strings.Fields(string(data)), "")
	}

	// Reject malformed plans at import time, not at simulation time.
	if _, err := mission.ParseSequence(sequence); err != nil {
		return err
	}

	if err := db.AddPlan(name, sequence); err != nil {
		return err
	}
	fmt.Printf("Plan %s stored (%d minutes)\n", name, len(sequence))
	return nil
}

func runList(db *store.Store) error {
	plans, err := db.ListPlans()
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Fprintln(os.Stderr, "no plans stored")
		return nil
	}
	fmt.Printf("%-20s  %7s  %s\n", "Name", "Minutes", "Stored")
	for _, p := range plans {
		fmt.Printf("%-20s  %7d  %s\n", p.Name, len(p.Sequence), p.CreatedAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

func runShow(db *store.Store, name string) error {
	plan, err := db.GetPlan(name)
	if err != nil {
		return err
	}
	fmt.Println(plan.Sequence)
	return nil
}
// #endregion commands
