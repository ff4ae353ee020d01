// Command simulate runs an EVA task sequence through the state engine,
// writes the minute-by-minute CSV log, and records the run in SQLite.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/activity"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/config"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/logbook"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/mission"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/store"
)

// #region main
func main() {
	tasks := flag.String("tasks", "", "task sequence, one letter per minute (H N L C R)")
	tasksFile := flag.String("tasks-file", "", "file containing the task sequence")
	planName := flag.String("plan", "", "run a stored mission plan by name")
	out := flag.String("out", "", "CSV log path (default $EVA_LOG)")
	dbPath := flag.String("db", "", "SQLite path (default $EVA_DB)")
	modelPath := flag.String("model", "", "YAML model override (default $EVA_MODEL or embedded)")
	emergency := flag.String("emergency", "", "comma-separated minutes to replace with emergency response")
	noSave := flag.Bool("no-save", false, "skip persisting the run to SQLite")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *out != "" {
		cfg.LogPath = *out
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *modelPath != "" {
		cfg.ModelPath = *modelPath
	}

	sources := 0
	for _, set := range []bool{*tasks != "", *tasksFile != "", *planName != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		fmt.Fprintln(os.Stderr, "usage: simulate --tasks HNLCR... | --tasks-file path | --plan name")
		fmt.Fprintln(os.Stderr, "       [--out eva_log.csv] [--db eva_runs.db] [--model model.yaml]")
		fmt.Fprintln(os.Stderr, "       [--emergency 15,16] [--no-save]")
		os.Exit(2)
	}

	model, err := loadModel(cfg.ModelPath)
	if err != nil {
		log.Fatalf("load model: %v", err)
	}
	eng, err := activity.NewEngine(model)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	var db *store.Store
	if !*noSave || *planName != "" {
		db, err = store.New(cfg.DBPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer db.Close()
	}

	sequence, err := resolveSequence(db, *tasks, *tasksFile, *planName)
	if err != nil {
		log.Fatalf("%v", err)
	}

	kinds, err := mission.ParseSequence(sequence)
	if err != nil {
		log.Fatalf("parse sequence: %v", err)
	}
	if *emergency != "" {
		minutes, err := parseMinutes(*emergency)
		if err != nil {
			log.Fatalf("parse --emergency: %v", err)
		}
		kinds, err = mission.InjectEmergency(kinds, minutes)
		if err != nil {
			log.Fatalf("inject emergency: %v", err)
		}
	}

	tl, err := mission.Run(eng, kinds)
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}
	summary := mission.Summarize(tl)

	if err := logbook.WriteCSVFile(cfg.LogPath, tl); err != nil {
		log.Fatalf("write log: %v", err)
	}
	fmt.Printf("Simulation complete: %s\n", summary)
	fmt.Printf("Log written to %s\n", cfg.LogPath)

	if !*noSave {
		summaryJSON, err := json.Marshal(summary)
		if err != nil {
			log.Fatalf("marshal summary: %v", err)
		}
		run, err := db.SaveRun(*planName, tl, string(summaryJSON))
		if err != nil {
			log.Fatalf("save run: %v", err)
		}
		fmt.Printf("Run %s saved to %s\n", run.RunID, cfg.DBPath)
	}
}
// #endregion main

// #region helpers
func loadModel(path string) (activity.Model, error) {
	if path != "" {
		return activity.LoadModel(path)
	}
	return activity.DefaultModel()
}

func resolveSequence(db *store.Store, tasks, tasksFile, planName string) (string, error) {
	switch {
	case tasks != "":
		return tasks, nil
	case tasksFile != "":
		data, err := os.ReadFile(tasksFile)
		if err != nil {
			return "", fmt.Errorf("read tasks file: %w", err)
		}
		return strings.Join(strings.Fields(string(data)), ""), nil
	default:
		plan, err := db.GetPlan(planName)
		if err != nil {
			return "", err
		}
		return plan.Sequence, nil
	}
}

func parseMinutes(spec string) ([]int, error) {
	parts := strings.Split(spec, ",")
	minutes := make([]int, 0, len(parts))
	for _, p := range parts {
		m, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad minute %q", p)
		}
		minutes = append(minutes, m)
	}
	return minutes, nil
}
// #endregion helpers
