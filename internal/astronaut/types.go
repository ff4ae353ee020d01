package astronaut

import (
	"errors"
	"fmt"
)

// #region vars
// Var is the name of one tracked physiological or cognitive variable.
// Names double as row labels in exported logs and as keys in the
// baseline/limit reference tables.
type Var string

const (
	// Cardiovascular
	VarHeartRate        Var = "heart_rate"
	VarBloodPressureSys Var = "blood_pressure_sys"
	VarBloodPressureDia Var = "blood_pressure_dia"

	// Respiratory
	VarRespirationRate  Var = "respiration_rate"
	VarOxygenSaturation Var = "oxygen_saturation"
	VarBloodO2Pa        Var = "blood_o2_pa"
	VarBloodCO2Pa       Var = "blood_co2_pa"
	VarN2Saturation     Var = "n2_saturation"

	// Metabolic
	VarMetabolicRate Var = "metabolic_rate"
	VarCoreTemp      Var = "core_temp"
	VarSkinTemp      Var = "skin_temp"
	VarSweatRate     Var = "sweat_rate"
	VarGlucoseLevel  Var = "glucose_level"

	// Cognitive / emotional
	VarMuscleFatigue Var = "muscle_fatigue"
	VarCognitiveLoad Var = "cognitive_load"
	VarStressIndex   Var = "stress_index"
	VarFear          Var = "fear"
	VarAdrenalineLvl Var = "adrenaline_lvl"

	// Environmental exposure
	VarRadiationDose Var = "radiation_dose_mSv"
)

// allVars fixes the canonical variable order used for validation,
// clamping, and log export. MissionElapsedTime is deliberately not a
// Var: it is a monotonic clock, never clamped and never table-driven.
var allVars = []Var{
	VarHeartRate,
	VarBloodPressureSys,
	VarBloodPressureDia,
	VarRespirationRate,
	VarOxygenSaturation,
	VarBloodO2Pa,
	VarBloodCO2Pa,
	VarN2Saturation,
	VarMetabolicRate,
	VarCoreTemp,
	VarSkinTemp,
	VarSweatRate,
	VarGlucoseLevel,
	VarMuscleFatigue,
	VarCognitiveLoad,
	VarStressIndex,
	VarFear,
	VarAdrenalineLvl,
	VarRadiationDose,
}

// Vars returns the canonical ordered list of tracked variables.
func Vars() []Var {
	out := make([]Var, len(allVars))
	copy(out, allVars)
	return out
}
// #endregion vars

// #region tables
// Range is the physiologically plausible [Min, Max] window for one variable.
type Range struct {
	Min float64
	Max float64
}

// Tables holds the two process-wide reference tables: resting baselines
// and clamp limits. Immutable after validation.
type Tables struct {
	Baseline map[Var]float64
	Limits   map[Var]Range
}

// ErrConfig indicates the baseline/limit reference tables are malformed.
var ErrConfig = errors.New("invalid reference tables")

// Validate checks that both tables cover every tracked variable, that
// each limit window is ordered, and that every baseline lies inside its
// own limits. The simulation must not start on tables that fail here.
func (t Tables) Validate() error {
	for _, v := range allVars {
		base, ok := t.Baseline[v]
		if !ok {
			return fmt.Errorf("%w: %s missing from baseline", ErrConfig, v)
		}
		lim, ok := t.Limits[v]
		if !ok {
			return fmt.Errorf("%w: %s missing from limits", ErrConfig, v)
		}
		if lim.Min > lim.Max {
			return fmt.Errorf("%w: %s limit window inverted (%g > %g)", ErrConfig, v, lim.Min, lim.Max)
		}
		if base < lim.Min || base > lim.Max {
			return fmt.Errorf("%w: %s baseline %g outside limits [%g, %g]", ErrConfig, v, base, lim.Min, lim.Max)
		}
	}
	if len(t.Baseline) != len(allVars) {
		return fmt.Errorf("%w: baseline has %d entries, want %d", ErrConfig, len(t.Baseline), len(allVars))
	}
	if len(t.Limits) != len(allVars) {
		return fmt.Errorf("%w: limits has %d entries, want %d", ErrConfig, len(t.Limits), len(allVars))
	}
	return nil
}
// #endregion tables
