package activity

import (
	"errors"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/astronaut"
)

// #region kind
// Kind identifies one of the six one-minute activity transitions.
type Kind string

const (
	Rest       Kind = "rest"
	WorkLow    Kind = "work_low"
	WorkNormal Kind = "work_normal"
	WorkHard   Kind = "work_hard"
	Cognitive  Kind = "cognitive"
	Emergency  Kind = "emergency"
)

// allKinds fixes the canonical activity order.
var allKinds = []Kind{Rest, WorkLow, WorkNormal, WorkHard, Cognitive, Emergency}

// Kinds returns the canonical ordered list of activity kinds.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// Code returns the single-letter label used in logs and stored runs.
// Emergency carries the label E in logs even though it has no code in
// the task-sequence input scheme.
func (k Kind) Code() string {
	switch k {
	case Rest:
		return "R"
	case WorkLow:
		return "L"
	case WorkNormal:
		return "N"
	case WorkHard:
		return "H"
	case Cognitive:
		return "C"
	case Emergency:
		return "E"
	}
	return "?"
}

// KindForCode maps a single-letter label back to its Kind. Covers all
// six labels, including E, for stored-run and fixture round trips.
func KindForCode(code string) (Kind, bool) {
	for _, k := range allKinds {
		if k.Code() == code {
			return k, true
		}
	}
	return "", false
}
// #endregion kind

// #region params
// Params holds the tunable per-activity transition constants. The
// qualitative ordering (hard > normal > low deltas, cognitive's
// physiological effect below emergency's) is the behavioral contract;
// the absolute numbers are configuration.
type Params struct {
	// Targets are activity-specific attractor values. A variable with a
	// step but no target is pulled toward its resting baseline.
	Targets map[astronaut.Var]float64 `yaml:"targets"`
	// Steps bound how far each variable moves toward its target in one
	// minute. Movement never overshoots the target.
	Steps map[astronaut.Var]float64 `yaml:"steps"`
	// Loads are additive per-minute accruals (fatigue, stress, dose).
	// All loads are non-negative; bounds come from the final clamp.
	Loads map[astronaut.Var]float64 `yaml:"loads"`
}

// Config maps every activity kind to its transition constants.
type Config map[Kind]Params
// #endregion params

// ErrInvalidState indicates a transition was invoked on a state holding
// a non-finite value.
var ErrInvalidState = errors.New("state outside representable range")
