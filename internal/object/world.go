package object

import (
	"github.com/tomz197/hitbox/internal/ecs"
	"github.com/tomz197/hitbox/internal/physics"
)

// World is the entity table with one store per component kind.
// Systems take the stores they need, so mutable access is partitioned by
// component kind.
type World struct {
	*ecs.World

	Transforms    *ecs.Store[Transform]
	Velocities    *ecs.Store[Velocity]
	Accelerations *ecs.Store[Acceleration]
	Controllables *ecs.Store[Controllable]
	HitBoxes      *ecs.Store[HitBox]
	Sprites       *ecs.Store[Sprite]
	Colliders     *ecs.Store[Collider]
	Sensors       *ecs.Store[Sensor]
	Cameras       *ecs.Store[Camera]
}

// NewWorld creates an empty world with one empty store per component kind.
func NewWorld() *World {
	w := ecs.NewWorld()
	return &World{
		World:         w,
		Transforms:    ecs.NewStore[Transform](),
		Velocities:    ecs.NewStore[Velocity](),
		Accelerations: ecs.NewStore[Acceleration](),
		Controllables: ecs.NewStore[Controllable](),
		HitBoxes:      ecs.NewStore[HitBox](),
		Sprites:       ecs.NewStore[Sprite](),
		Colliders:     ecs.NewStore[Collider](),
		Sensors:       ecs.NewStore[Sensor](),
		Cameras:       ecs.NewStore[Camera](),
	}
}

// GlobalPosition composes the translations of e and all of its ancestors.
// Entities without a Transform contribute no offset.
func (w *World) GlobalPosition(e ecs.Entity) physics.Vec2 {
	var pos physics.Vec2
	for cur, ok := e, true; ok; cur, ok = w.Parent(cur) {
		if t, has := w.Transforms.Get(cur); has {
			pos = pos.Add(t.Translation)
		}
	}
	return pos
}

// Moving returns entities with both a Transform and a Velocity.
func (w *World) Moving() []ecs.Entity {
	return w.filter(w.Velocities.Entities(), w.Transforms.Has)
}

// Controlled returns controllable entities that can accelerate.
func (w *World) Controlled() []ecs.Entity {
	return w.filter(w.Controllables.Entities(), w.Velocities.Has, w.Accelerations.Has)
}

// HitBoxSensors returns hitbox entities with a sensor and a sprite to recolor.
func (w *World) HitBoxSensors() []ecs.Entity {
	return w.filter(w.HitBoxes.Entities(), w.Sensors.Has, w.Sprites.Has)
}

// filter keeps the entities of base that satisfy every capability check.
func (w *World) filter(base []ecs.Entity, has ...func(ecs.Entity) bool) []ecs.Entity {
	result := make([]ecs.Entity, 0, len(base))
next:
	for _, e := range base {
		for _, h := range has {
			if !h(e) {
				continue next
			}
		}
		result = append(result, e)
	}
	return result
}
