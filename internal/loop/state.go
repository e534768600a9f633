package loop

import (
	"time"

	"github.com/tomz197/hitbox/internal/config"
	"github.com/tomz197/hitbox/internal/input"
	"github.com/tomz197/hitbox/internal/object"
	"github.com/tomz197/hitbox/internal/system"
)

// State holds everything one frame loop owns: the world, the schedule that
// updates it, and per-frame timing and input.
type State struct {
	World    *object.World
	Schedule *system.Schedule
	Tuning   config.Tuning
	Input    input.Input
	Delta    time.Duration // Frame delta time
	Frames   int           // Frames simulated so far
	Running  bool
}

// NewState creates a state with an empty world and the default schedule.
// Call Startup before the first Tick.
func NewState(t config.Tuning) *State {
	return &State{
		World:    object.NewWorld(),
		Schedule: system.Default(t),
		Tuning:   t,
		Running:  true,
	}
}

// Startup runs the schedule's startup functions.
func (s *State) Startup() error {
	return s.Schedule.Startup(s.World)
}

// Tick advances the world by one frame using the current input and delta.
func (s *State) Tick() {
	s.Schedule.Tick(s.World, system.Tick{Delta: s.Delta, Input: s.Input})
	s.Frames++
}
