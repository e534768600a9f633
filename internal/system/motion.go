package system

import "github.com/tomz197/hitbox/internal/object"

// Integrate adds velocity to translation (unscaled: velocity is a per-frame
// displacement) and then multiplies velocity by 1 - dt*friction.
// Frames longer than 1/friction make the factor negative and flip the
// velocity. Bad friction, kept as-is.
func Integrate(w *object.World, tick Tick, friction float64) {
	factor := 1 - tick.Delta.Seconds()*friction
	for _, e := range w.Moving() {
		t := w.Transforms.Ptr(e)
		v := w.Velocities.Ptr(e)
		t.Translation = t.Translation.Add(v.Vec2)
		v.Vec2 = v.Scale(factor)
	}
}
