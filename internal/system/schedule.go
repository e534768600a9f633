// Package system holds the per-frame update functions and the ordered
// schedule that runs them.
package system

import (
	"fmt"
	"time"

	"github.com/tomz197/hitbox/internal/config"
	"github.com/tomz197/hitbox/internal/input"
	"github.com/tomz197/hitbox/internal/object"
)

// Tick is the read-only context shared by every stage within one frame.
type Tick struct {
	Delta time.Duration
	Input input.Input
}

// Func is a per-frame stage.
type Func func(w *object.World, tick Tick)

// StartupFunc runs once before the first frame.
type StartupFunc func(w *object.World) error

type stage struct {
	name string
	fn   Func
}

type startup struct {
	name string
	fn   StartupFunc
}

// Schedule runs startup functions once, then its stages in declaration order
// every tick.
type Schedule struct {
	startup []startup
	stages  []stage
}

// NewSchedule creates an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// AddStartup appends a function to run once by Startup.
func (s *Schedule) AddStartup(name string, fn StartupFunc) *Schedule {
	s.startup = append(s.startup, startup{name: name, fn: fn})
	return s
}

// AddStage appends a per-frame stage.
func (s *Schedule) AddStage(name string, fn Func) *Schedule {
	s.stages = append(s.stages, stage{name: name, fn: fn})
	return s
}

// Startup runs every startup function in order, stopping at the first error.
func (s *Schedule) Startup(w *object.World) error {
	for _, st := range s.startup {
		if err := st.fn(w); err != nil {
			return fmt.Errorf("startup %s: %w", st.name, err)
		}
	}
	return nil
}

// Tick runs every stage once, in order.
func (s *Schedule) Tick(w *object.World, tick Tick) {
	for _, st := range s.stages {
		st.fn(w, tick)
	}
}

// Stages returns the stage names in run order.
func (s *Schedule) Stages() []string {
	names := make([]string, len(s.stages))
	for i, st := range s.stages {
		names[i] = st.name
	}
	return names
}

// Default wires the prototype: spawn at startup, then input, collision,
// motion and hitbox highlighting every frame.
func Default(t config.Tuning) *Schedule {
	collision := NewCollision()

	return NewSchedule().
		AddStartup("spawn", func(w *object.World) error {
			_, err := object.Spawn(w, t)
			return err
		}).
		AddStage("input", ApplyInput).
		AddStage("collision", collision.Update).
		AddStage("motion", func(w *object.World, tick Tick) {
			Integrate(w, tick, t.Friction)
		}).
		AddStage("hitbox", HighlightHitBoxes)
}
