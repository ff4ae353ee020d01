package logbook

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/astronaut"
)

// #region csv
// WriteCSV exports the timeline in the eva_log layout: one row per
// variable, columns B (baseline), MIN, MAX, then one column per
// simulated minute. A leading task row labels each minute's activity
// and a trailing row tracks mission elapsed time. Numeric cells are
// formatted to 4 significant digits.
func WriteCSV(w io.Writer, t Timeline) error {
	cw := csv.NewWriter(w)

	cols := 4 + len(t.Entries)

	header := make([]string, 0, cols)
	header = append(header, "name", "B", "MIN", "MAX")
	for _, e := range t.Entries {
		header = append(header, strconv.Itoa(e.Minute))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	taskRow := make([]string, 0, cols)
	taskRow = append(taskRow, "task", "B", "MIN", "MAX")
	for _, e := range t.Entries {
		taskRow = append(taskRow, e.Code)
	}
	if err := cw.Write(taskRow); err != nil {
		return fmt.Errorf("write task row: %w", err)
	}

	for _, v := range astronaut.Vars() {
		lim := t.Tables.Limits[v]
		row := make([]string, 0, cols)
		row = append(row, string(v), cell(t.Tables.Baseline[v]), cell(lim.Min), cell(lim.Max))
		for _, e := range t.Entries {
			row = append(row, cell(e.State.Value(v)))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", v, err)
		}
	}

	timeRow := make([]string, 0, cols)
	timeRow = append(timeRow, "mission_elapsed_time", cell(0), cell(0), cell(0))
	for _, e := range t.Entries {
		timeRow = append(timeRow, cell(e.State.MissionElapsedTime))
	}
	if err := cw.Write(timeRow); err != nil {
		return fmt.Errorf("write time row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile exports the timeline to path, replacing any existing file.
func WriteCSVFile(path string, t Timeline) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// cell formats one numeric cell to 4 significant digits.
func cell(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
// #endregion csv
