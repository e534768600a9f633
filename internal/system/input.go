package system

import (
	"github.com/tomz197/hitbox/internal/input"
	"github.com/tomz197/hitbox/internal/object"
	"github.com/tomz197/hitbox/internal/physics"
)

// Direction combines the held movement keys into an unnormalized direction.
// Opposing keys cancel.
func Direction(in input.Input) physics.Vec2 {
	var dir physics.Vec2
	if in.AnyPressed(input.KeyUp, input.KeyW) {
		dir.Y += 1
	}
	if in.AnyPressed(input.KeyDown, input.KeyS) {
		dir.Y -= 1
	}
	if in.AnyPressed(input.KeyRight, input.KeyD) {
		dir.X += 1
	}
	if in.AnyPressed(input.KeyLeft, input.KeyA) {
		dir.X -= 1
	}
	return dir
}

// ApplyInput adds normalize(direction) * dt * acceleration to the velocity of
// every controllable entity. Speed is not clamped.
func ApplyInput(w *object.World, tick Tick) {
	dir := Direction(tick.Input)
	if dir.IsZero() {
		return
	}

	step := dir.Normalize().Scale(tick.Delta.Seconds())
	for _, e := range w.Controlled() {
		acc, _ := w.Accelerations.Get(e)
		v := w.Velocities.Ptr(e)
		v.Vec2 = v.Add(step.Scale(acc.Value))
	}
}
