package system

import "github.com/tomz197/hitbox/internal/object"

// HighlightHitBoxes colors each hitbox yellow while its sensor detects any
// body, otherwise near-invisible white.
func HighlightHitBoxes(w *object.World, _ Tick) {
	for _, e := range w.HitBoxSensors() {
		sensor, _ := w.Sensors.Get(e)
		sprite := w.Sprites.Ptr(e)
		if len(sensor.Bodies) == 0 {
			sprite.Color = object.SensorIdleColor
		} else {
			sprite.Color = object.SensorActiveColor
		}
	}
}
