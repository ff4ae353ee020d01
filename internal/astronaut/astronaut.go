// Package astronaut models the minute-resolution physiological and
// cognitive state of a single astronaut during EVA.
package astronaut

import "math"

// #region state
// State is one minute-resolution snapshot of the astronaut. It is a
// plain value; activity transitions copy it forward one minute at a
// time. All variables are bounded by the limits table after every step.
type State struct {
	HeartRate        float64 // bpm
	BloodPressureSys float64 // mmHg
	BloodPressureDia float64 // mmHg

	RespirationRate  float64 // breaths/min
	OxygenSaturation float64 // fraction
	BloodO2Pa        float64 // mmHg
	BloodCO2Pa       float64 // mmHg
	N2Saturation     float64 // fraction

	MetabolicRate float64 // W
	CoreTemp      float64 // Celsius
	SkinTemp      float64 // Celsius
	SweatRate     float64 // g/h
	GlucoseLevel  float64 // mg/dL

	MuscleFatigue float64 // 0..1, monotone non-decreasing
	CognitiveLoad float64 // 0..1
	StressIndex   float64 // 0..1
	Fear          float64 // 0..1
	AdrenalineLvl float64 // 0..1

	RadiationDoseMSv float64 // accumulated dose, mSv

	// MissionElapsedTime counts simulated minutes since mission start.
	// It advances by exactly 1 per step and is never clamped.
	MissionElapsedTime float64
}
// #endregion state

// #region constructor
// New validates the reference tables and returns a state initialised at
// baseline with elapsed time zero.
func New(tables Tables) (State, error) {
	if err := tables.Validate(); err != nil {
		return State{}, err
	}
	var s State
	for _, v := range allVars {
		s.SetValue(v, tables.Baseline[v])
	}
	return s, nil
}
// #endregion constructor

// #region accessors
// Value reads one variable by name. Used by the generic clamp and
// export loops; direct field access is preferred elsewhere.
func (s State) Value(v Var) float64 {
	switch v {
	case VarHeartRate:
		return s.HeartRate
	case VarBloodPressureSys:
		return s.BloodPressureSys
	case VarBloodPressureDia:
		return s.BloodPressureDia
	case VarRespirationRate:
		return s.RespirationRate
	case VarOxygenSaturation:
		return s.OxygenSaturation
	case VarBloodO2Pa:
		return s.BloodO2Pa
	case VarBloodCO2Pa:
		return s.BloodCO2Pa
	case VarN2Saturation:
		return s.N2Saturation
	case VarMetabolicRate:
		return s.MetabolicRate
	case VarCoreTemp:
		return s.CoreTemp
	case VarSkinTemp:
		return s.SkinTemp
	case VarSweatRate:
		return s.SweatRate
	case VarGlucoseLevel:
		return s.GlucoseLevel
	case VarMuscleFatigue:
		return s.MuscleFatigue
	case VarCognitiveLoad:
		return s.CognitiveLoad
	case VarStressIndex:
		return s.StressIndex
	case VarFear:
		return s.Fear
	case VarAdrenalineLvl:
		return s.AdrenalineLvl
	case VarRadiationDose:
		return s.RadiationDoseMSv
	}
	return math.NaN()
}

// SetValue writes one variable by name. Only the activity engine and
// the constructor mutate state through this path.
func (s *State) SetValue(v Var, val float64) {
	switch v {
	case VarHeartRate:
		s.HeartRate = val
	case VarBloodPressureSys:
		s.BloodPressureSys = val
	case VarBloodPressureDia:
		s.BloodPressureDia = val
	case VarRespirationRate:
		s.RespirationRate = val
	case VarOxygenSaturation:
		s.OxygenSaturation = val
	case VarBloodO2Pa:
		s.BloodO2Pa = val
	case VarBloodCO2Pa:
		s.BloodCO2Pa = val
	case VarN2Saturation:
		s.N2Saturation = val
	case VarMetabolicRate:
		s.MetabolicRate = val
	case VarCoreTemp:
		s.CoreTemp = val
	case VarSkinTemp:
		s.SkinTemp = val
	case VarSweatRate:
		s.SweatRate = val
	case VarGlucoseLevel:
		s.GlucoseLevel = val
	case VarMuscleFatigue:
		s.MuscleFatigue = val
	case VarCognitiveLoad:
		s.CognitiveLoad = val
	case VarStressIndex:
		s.StressIndex = val
	case VarFear:
		s.Fear = val
	case VarAdrenalineLvl:
		s.AdrenalineLvl = val
	case VarRadiationDose:
		s.RadiationDoseMSv = val
	}
}
// #endregion accessors

// #region clamp
// Clamp forces every variable into its limit window. Mandatory
// post-condition of every one-minute step. MissionElapsedTime is
// exempt.
func (s *State) Clamp(limits map[Var]Range) {
	for _, v := range allVars {
		lim, ok := limits[v]
		if !ok {
			continue
		}
		val := s.Value(v)
		if val < lim.Min {
			s.SetValue(v, lim.Min)
		} else if val > lim.Max {
			s.SetValue(v, lim.Max)
		}
	}
}
// #endregion clamp

// #region finite
// Finite reports whether every variable holds a representable value.
// A false result indicates an upstream bug, not a physiological state.
func (s State) Finite() bool {
	for _, v := range allVars {
		val := s.Value(v)
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return false
		}
	}
	return !math.IsNaN(s.MissionElapsedTime) && !math.IsInf(s.MissionElapsedTime, 0)
}
// #endregion finite
