package activity

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/astronaut"
)

//go:embed model.yaml
var defaultModelYAML []byte

// #region model
// Model bundles the validated reference tables with the per-activity
// transition constants. Loaded once at process start.
type Model struct {
	Tables astronaut.Tables
	Config Config
}

// modelFile mirrors the YAML document layout.
type modelFile struct {
	Baseline   map[astronaut.Var]float64    `yaml:"baseline"`
	Limits     map[astronaut.Var][2]float64 `yaml:"limits"`
	Activities map[Kind]Params              `yaml:"activities"`
}

// DefaultModel parses the embedded parameter tables.
func DefaultModel() (Model, error) {
	return parseModel(defaultModelYAML)
}

// LoadModel reads parameter tables from a YAML file, for tuning runs
// without rebuilding.
func LoadModel(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("read model %s: %w", path, err)
	}
	m, err := parseModel(data)
	if err != nil {
		return Model{}, fmt.Errorf("model %s: %w", path, err)
	}
	return m, nil
}

func parseModel(data []byte) (Model, error) {
	var file modelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Model{}, fmt.Errorf("%w: %v", astronaut.ErrConfig, err)
	}

	tables := astronaut.Tables{
		Baseline: file.Baseline,
		Limits:   make(map[astronaut.Var]astronaut.Range, len(file.Limits)),
	}
	for v, window := range file.Limits {
		tables.Limits[v] = astronaut.Range{Min: window[0], Max: window[1]}
	}
	if err := tables.Validate(); err != nil {
		return Model{}, err
	}

	config := Config(file.Activities)
	if err := config.validate(); err != nil {
		return Model{}, err
	}

	return Model{Tables: tables, Config: config}, nil
}
// #endregion model

// #region config-validation
// validate checks the per-activity constants: every kind present, every
// referenced variable known, steps and loads non-negative, and no
// activity allowed to pull or shed muscle fatigue (fatigue accrues via
// loads only, so monotonicity holds by construction).
func (c Config) validate() error {
	known := make(map[astronaut.Var]bool)
	for _, v := range astronaut.Vars() {
		known[v] = true
	}

	for _, k := range allKinds {
		p, ok := c[k]
		if !ok {
			return fmt.Errorf("%w: activity %s missing", astronaut.ErrConfig, k)
		}
		for table, entries := range map[string]map[astronaut.Var]float64{
			"targets": p.Targets,
			"steps":   p.Steps,
			"loads":   p.Loads,
		} {
			for v, val := range entries {
				if !known[v] {
					return fmt.Errorf("%w: activity %s %s references unknown variable %q", astronaut.ErrConfig, k, table, v)
				}
				if table != "targets" && val < 0 {
					return fmt.Errorf("%w: activity %s %s[%s] is negative", astronaut.ErrConfig, k, table, v)
				}
			}
		}
		if _, ok := p.Steps[astronaut.VarMuscleFatigue]; ok {
			return fmt.Errorf("%w: activity %s pulls muscle_fatigue; fatigue accrues via loads only", astronaut.ErrConfig, k)
		}
	}

	if c[Rest].Loads[astronaut.VarMuscleFatigue] != 0 {
		return fmt.Errorf("%w: rest must not accumulate muscle_fatigue", astronaut.ErrConfig)
	}
	if len(c) != len(allKinds) {
		return fmt.Errorf("%w: %d activities configured, want %d", astronaut.ErrConfig, len(c), len(allKinds))
	}
	return nil
}
// #endregion config-validation
