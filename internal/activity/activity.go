// Package activity implements the six one-minute EVA activity
// transitions over the astronaut state model.
package activity

import (
	"fmt"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/astronaut"
)

// #region engine
// Engine applies activity transitions using a validated model. It is
// stateless between calls: each Apply takes and returns a snapshot.
type Engine struct {
	tables astronaut.Tables
	config Config
}

// NewEngine validates the model and returns an engine bound to it.
func NewEngine(model Model) (*Engine, error) {
	if err := model.Tables.Validate(); err != nil {
		return nil, err
	}
	if err := model.Config.validate(); err != nil {
		return nil, err
	}
	return &Engine{tables: model.Tables, config: model.Config}, nil
}

// Tables exposes the engine's reference tables for logging and export.
func (e *Engine) Tables() astronaut.Tables {
	return e.tables
}

// Initial returns a fresh state at baseline, elapsed time zero.
func (e *Engine) Initial() astronaut.State {
	s, _ := astronaut.New(e.tables) // tables validated in NewEngine
	return s
}
// #endregion engine

// #region apply
// Apply advances the state by exactly one simulated minute of the given
// activity. Deterministic, no side effects beyond the returned snapshot.
//
// Order per step: finite guard, clock tick, pull toward the activity's
// targets (resting baseline where no target is set), additive loads,
// final clamp. The pull never overshoots its target, so rest's recovery
// toward baseline is not undone by the clamp.
func (e *Engine) Apply(s astronaut.State, kind Kind) (astronaut.State, error) {
	if !s.Finite() {
		return astronaut.State{}, fmt.Errorf("%w: %s at t=%g", ErrInvalidState, kind, s.MissionElapsedTime)
	}
	params, ok := e.config[kind]
	if !ok {
		return astronaut.State{}, fmt.Errorf("unknown activity kind %q", kind)
	}

	next := s
	next.MissionElapsedTime++

	for _, v := range astronaut.Vars() {
		step, ok := params.Steps[v]
		if !ok || step == 0 {
			continue
		}
		target, ok := params.Targets[v]
		if !ok {
			target = e.tables.Baseline[v]
		}
		next.SetValue(v, towardTarget(next.Value(v), target, step))
	}

	for _, v := range astronaut.Vars() {
		if load := params.Loads[v]; load > 0 {
			next.SetValue(v, next.Value(v)+load)
		}
	}

	next.Clamp(e.tables.Limits)
	return next, nil
}

// towardTarget moves current toward target by at most step, stopping at
// the target rather than overshooting.
func towardTarget(current, target, step float64) float64 {
	switch {
	case current < target:
		if current+step > target {
			return target
		}
		return current + step
	case current > target:
		if current-step < target {
			return target
		}
		return current - step
	}
	return current
}
// #endregion apply

// #region operations
// Rest advances one minute of in-suit rest: recovery toward baseline.
func (e *Engine) Rest(s astronaut.State) (astronaut.State, error) {
	return e.Apply(s, Rest)
}

// WorkLow advances one minute of light EVA activity.
func (e *Engine) WorkLow(s astronaut.State) (astronaut.State, error) {
	return e.Apply(s, WorkLow)
}

// WorkNormal advances one minute of moderate EVA activity.
func (e *Engine) WorkNormal(s astronaut.State) (astronaut.State, error) {
	return e.Apply(s, WorkNormal)
}

// WorkHard advances one minute of high-intensity EVA exertion.
func (e *Engine) WorkHard(s astronaut.State) (astronaut.State, error) {
	return e.Apply(s, WorkHard)
}

// WorkCognitive advances one minute of a mentally intensive task.
func (e *Engine) WorkCognitive(s astronaut.State) (astronaut.State, error) {
	return e.Apply(s, Cognitive)
}

// EmergencyResponse advances one minute of high-stress emergency
// handling. Emergency has no task-sequence letter; it is invoked
// directly or injected into a parsed sequence.
func (e *Engine) EmergencyResponse(s astronaut.State) (astronaut.State, error) {
	return e.Apply(s, Emergency)
}
// #endregion operations
