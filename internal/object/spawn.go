package object

import (
	"fmt"

	"github.com/tomz197/hitbox/internal/config"
	"github.com/tomz197/hitbox/internal/ecs"
	"github.com/tomz197/hitbox/internal/physics"
)

// Scene names the entities created at startup.
type Scene struct {
	Camera ecs.Entity
	Player ecs.Entity
	Sensor ecs.Entity
	Mob    ecs.Entity
}

// Spawn creates the camera, the player with its sensor, and the mob.
func Spawn(w *World, t config.Tuning) (Scene, error) {
	var s Scene
	s.Camera = SpawnCamera(w, t)

	player, sensor, err := SpawnPlayer(w, t)
	if err != nil {
		return s, err
	}
	s.Player, s.Sensor = player, sensor

	s.Mob = SpawnMob(w, t)
	return s, nil
}

// SpawnCamera creates the top-down orthographic camera at the origin.
func SpawnCamera(w *World, t config.Tuning) ecs.Entity {
	e := w.Spawn()
	w.Cameras.Set(e, Camera{Scale: t.CameraScale})
	w.Transforms.Set(e, Transform{})
	return e
}

// SpawnPlayer creates the controllable sprite with a larger square sensor
// attached as a child.
func SpawnPlayer(w *World, t config.Tuning) (player, sensor ecs.Entity, err error) {
	sensorSize := physics.Splat(t.SensorSize)

	sensor = w.Spawn()
	w.Transforms.Set(sensor, Transform{})
	w.Sprites.Set(sensor, Sprite{Color: SensorIdleColor, Size: sensorSize})
	w.Colliders.Set(sensor, Collider{Shape: physics.SquareOf(sensorSize), Kind: KindSensor})
	w.Sensors.Set(sensor, Sensor{})
	w.HitBoxes.Set(sensor, HitBox{})

	player = w.Spawn()
	w.Controllables.Set(player, Controllable{})
	w.Transforms.Set(player, Transform{})
	w.Sprites.Set(player, Sprite{Color: PlayerColor, Size: physics.Splat(t.PlayerSize)})
	w.Accelerations.Set(player, Acceleration{Value: t.Acceleration})
	w.Velocities.Set(player, Velocity{})

	if err := w.SetParent(sensor, player); err != nil {
		return player, sensor, fmt.Errorf("attach sensor: %w", err)
	}
	return player, sensor, nil
}

// SpawnMob creates a single static mob with a solid square shape.
func SpawnMob(w *World, t config.Tuning) ecs.Entity {
	size := physics.Splat(t.MobSize)

	e := w.Spawn()
	w.Transforms.Set(e, Transform{Translation: physics.Vec2{X: t.MobPos[0], Y: t.MobPos[1]}})
	w.Sprites.Set(e, Sprite{Color: MobColor, Size: size})
	w.Colliders.Set(e, Collider{Shape: physics.SquareOf(size), Kind: KindSolid})
	return e
}
