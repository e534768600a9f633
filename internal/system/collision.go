package system

import (
	"slices"

	"github.com/tomz197/hitbox/internal/ecs"
	"github.com/tomz197/hitbox/internal/object"
	"github.com/tomz197/hitbox/internal/physics"
)

// collisionCellSize is the broad-phase cell size in world units.
const collisionCellSize = 4

// Collision refreshes sensor overlap sets and separates solid bodies.
// It keeps its broad-phase buffers between frames.
type Collision struct {
	grid   *physics.SpatialGrid
	bodies []body
}

// body is a solid collider with its world bounds, as indexed in the grid.
type body struct {
	entity ecs.Entity
	box    physics.AABB
}

// NewCollision creates a collision stage.
func NewCollision() *Collision {
	return &Collision{grid: physics.NewSpatialGrid(collisionCellSize)}
}

// Update resolves solid contacts, then recomputes every sensor's overlap set.
func (c *Collision) Update(w *object.World, _ Tick) {
	c.resolveSolids(w)
	c.index(w)
	c.refreshSensors(w)
}

// resolveSolids pushes moving solid bodies out of static solid bodies and
// stops their motion into the contact.
func (c *Collision) resolveSolids(w *object.World) {
	for _, mover := range w.Colliders.Entities() {
		mc, _ := w.Colliders.Get(mover)
		if mc.Kind != object.KindSolid || !w.Velocities.Has(mover) || !w.Transforms.Has(mover) {
			continue
		}

		for _, other := range w.Colliders.Entities() {
			oc, _ := w.Colliders.Get(other)
			if other == mover || oc.Kind != object.KindSolid || w.Velocities.Has(other) {
				continue
			}

			box := mc.Shape.AABB(w.GlobalPosition(mover))
			push, ok := box.Penetration(oc.Shape.AABB(w.GlobalPosition(other)))
			if !ok {
				continue
			}

			t := w.Transforms.Ptr(mover)
			t.Translation = t.Translation.Add(push)

			v := w.Velocities.Ptr(mover)
			if push.X*v.X < 0 {
				v.X = 0
			}
			if push.Y*v.Y < 0 {
				v.Y = 0
			}
		}
	}
}

// index rebuilds the broad-phase grid from all solid colliders.
func (c *Collision) index(w *object.World) {
	c.grid.Clear()
	c.bodies = c.bodies[:0]

	for _, e := range w.Colliders.Entities() {
		col, _ := w.Colliders.Get(e)
		if col.Kind != object.KindSolid {
			continue
		}
		b := body{entity: e, box: col.Shape.AABB(w.GlobalPosition(e))}
		c.grid.Insert(b.box, len(c.bodies))
		c.bodies = append(c.bodies, b)
	}
}

// refreshSensors replaces each sensor's overlap set with the solid bodies its
// shape currently overlaps. A sensor never reports its own ancestors.
func (c *Collision) refreshSensors(w *object.World) {
	for _, e := range w.Sensors.Entities() {
		col, ok := w.Colliders.Get(e)
		if !ok || col.Kind != object.KindSensor {
			continue
		}

		box := col.Shape.AABB(w.GlobalPosition(e))
		s := w.Sensors.Ptr(e)
		s.Bodies = s.Bodies[:0]
		for _, i := range c.grid.Query(box) {
			b := c.bodies[i]
			if b.box.Overlaps(box) && !isAncestor(w, b.entity, e) {
				s.Bodies = append(s.Bodies, b.entity)
			}
		}
		slices.Sort(s.Bodies)
	}
}

// isAncestor reports whether a is e or one of e's ancestors.
func isAncestor(w *object.World, a, e ecs.Entity) bool {
	for cur, ok := e, true; ok; cur, ok = w.Parent(cur) {
		if cur == a {
			return true
		}
	}
	return false
}
