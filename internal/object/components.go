// Package object defines the components of the prototype, the world that
// stores them, and the startup spawner.
package object

import (
	"github.com/tomz197/hitbox/internal/draw"
	"github.com/tomz197/hitbox/internal/ecs"
	"github.com/tomz197/hitbox/internal/physics"
)

// Transform is an entity's position relative to its parent (or the world
// for root entities).
type Transform struct {
	Translation physics.Vec2
}

// Velocity is a per-frame displacement, decayed every frame by friction.
type Velocity struct {
	physics.Vec2
}

// Acceleration scales input-driven velocity gain, in units/s².
type Acceleration struct {
	Value float64
}

// Controllable marks entities that receive keyboard acceleration.
type Controllable struct{}

// HitBox marks sensors whose color reflects their overlap state.
type HitBox struct{}

// Sprite is a colored rectangle centered on the entity.
type Sprite struct {
	Color draw.Color
	Size  physics.Vec2
}

// ColliderKind distinguishes overlap-only shapes from solid ones.
type ColliderKind uint8

const (
	// KindSolid shapes take part in collision response.
	KindSolid ColliderKind = iota
	// KindSensor shapes only report overlaps.
	KindSensor
)

func (k ColliderKind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindSensor:
		return "sensor"
	default:
		return "unknown"
	}
}

// Collider attaches a square collision shape to an entity.
type Collider struct {
	Shape physics.Square
	Kind  ColliderKind
}

// Sensor holds the solid bodies currently overlapping a sensor collider.
// Written only by the collision stage.
type Sensor struct {
	Bodies []ecs.Entity
}

// Camera is an orthographic 2D viewport. Scale is world units per view pixel.
type Camera struct {
	Scale float64
}

// Colors used by the prototype.
var (
	PlayerColor       = draw.HSL(200, 0.95, 0.5)
	MobColor          = draw.HSL(9, 0.75, 0.55)
	SensorIdleColor   = draw.HSLA(0, 0, 1, 0.05)
	SensorActiveColor = draw.HSLA(60, 0.5, 0.5, 0.5)
)
