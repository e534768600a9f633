package system

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/hitbox/internal/config"
	"github.com/tomz197/hitbox/internal/ecs"
	"github.com/tomz197/hitbox/internal/input"
	"github.com/tomz197/hitbox/internal/object"
	"github.com/tomz197/hitbox/internal/physics"
)

const frame = 16 * time.Millisecond

func spawnScene(t *testing.T) (*object.World, object.Scene) {
	t.Helper()
	w := object.NewWorld()
	s, err := object.Spawn(w, config.DefaultTuning())
	require.NoError(t, err)
	return w, s
}

func velocity(w *object.World, e ecs.Entity) physics.Vec2 {
	v, _ := w.Velocities.Get(e)
	return v.Vec2
}

// integrate runs the motion step with the default friction, as the
// default schedule does.
func integrate(w *object.World, tick Tick) {
	Integrate(w, tick, config.DefaultTuning().Friction)
}

func position(w *object.World, e ecs.Entity) physics.Vec2 {
	tr, _ := w.Transforms.Get(e)
	return tr.Translation
}

func TestApplyInputZeroDirectionLeavesVelocity(t *testing.T) {
	tests := []struct {
		name string
		in   input.Input
	}{
		{"no keys", input.Input{}},
		{"up and down", input.Pressed(input.KeyUp, input.KeyDown)},
		{"w and s", input.Pressed(input.KeyW, input.KeyS)},
		{"left and d", input.Pressed(input.KeyLeft, input.KeyD)},
		{"all eight", input.Pressed(input.KeyW, input.KeyA, input.KeyS, input.KeyD,
			input.KeyUp, input.KeyDown, input.KeyLeft, input.KeyRight)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, s := spawnScene(t)
			w.Velocities.Set(s.Player, object.Velocity{Vec2: physics.Vec2{X: 0.3, Y: -0.1}})

			ApplyInput(w, Tick{Delta: frame, Input: tt.in})
			assert.Equal(t, physics.Vec2{X: 0.3, Y: -0.1}, velocity(w, s.Player))
		})
	}
}

func TestApplyInputImpulseMagnitude(t *testing.T) {
	tests := []struct {
		name string
		in   input.Input
		dir  physics.Vec2
	}{
		{"w", input.Pressed(input.KeyW), physics.Vec2{Y: 1}},
		{"up arrow", input.Pressed(input.KeyUp), physics.Vec2{Y: 1}},
		{"s", input.Pressed(input.KeyS), physics.Vec2{Y: -1}},
		{"right arrow", input.Pressed(input.KeyRight), physics.Vec2{X: 1}},
		{"a", input.Pressed(input.KeyA), physics.Vec2{X: -1}},
		{"diagonal", input.Pressed(input.KeyW, input.KeyD), physics.Vec2{X: 1, Y: 1}},
		{"same axis twice", input.Pressed(input.KeyW, input.KeyUp), physics.Vec2{Y: 1}},
		{"diagonal mixed keys", input.Pressed(input.KeyDown, input.KeyA), physics.Vec2{X: -1, Y: -1}},
	}

	dt := 50 * time.Millisecond
	want := dt.Seconds() * 0.4

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, s := spawnScene(t)
			ApplyInput(w, Tick{Delta: dt, Input: tt.in})

			got := velocity(w, s.Player)
			assert.InDelta(t, want, got.Length(), 1e-12, "diagonal must not be faster")
			unit := tt.dir.Normalize()
			assert.InDelta(t, unit.X*want, got.X, 1e-12)
			assert.InDelta(t, unit.Y*want, got.Y, 1e-12)
		})
	}
}

func TestApplyInputIsAdditive(t *testing.T) {
	w, s := spawnScene(t)
	w.Velocities.Set(s.Player, object.Velocity{Vec2: physics.Vec2{X: 5}})

	for i := 0; i < 3; i++ {
		ApplyInput(w, Tick{Delta: 100 * time.Millisecond, Input: input.Pressed(input.KeyD)})
	}
	assert.InDelta(t, 5+3*0.1*0.4, velocity(w, s.Player).X, 1e-12)
}

func TestApplyInputDrivesEveryControllable(t *testing.T) {
	w, s := spawnScene(t)
	second := w.Spawn()
	w.Controllables.Set(second, object.Controllable{})
	w.Velocities.Set(second, object.Velocity{})
	w.Accelerations.Set(second, object.Acceleration{Value: 2})

	ApplyInput(w, Tick{Delta: time.Second, Input: input.Pressed(input.KeyRight)})
	assert.InDelta(t, 0.4, velocity(w, s.Player).X, 1e-12)
	assert.InDelta(t, 2.0, velocity(w, second).X, 1e-12)
}

func TestIntegrateOrder(t *testing.T) {
	w, s := spawnScene(t)
	w.Transforms.Set(s.Player, object.Transform{Translation: physics.Vec2{X: 2, Y: 1}})
	w.Velocities.Set(s.Player, object.Velocity{Vec2: physics.Vec2{X: 1}})

	integrate(w, Tick{Delta: 50 * time.Millisecond})

	// Position uses the pre-decay velocity
	assert.InDelta(t, 3.0, position(w, s.Player).X, 1e-12)
	assert.InDelta(t, 1.0, position(w, s.Player).Y, 1e-12)
	assert.InDelta(t, 0.5, velocity(w, s.Player).X, 1e-12)
	assert.Zero(t, velocity(w, s.Player).Y)
}

func TestIntegrateZeroDeltaKeepsVelocity(t *testing.T) {
	w, s := spawnScene(t)
	w.Velocities.Set(s.Player, object.Velocity{Vec2: physics.Vec2{X: 0.25, Y: -0.75}})

	integrate(w, Tick{})
	assert.Equal(t, physics.Vec2{X: 0.25, Y: -0.75}, velocity(w, s.Player))
	assert.Equal(t, physics.Vec2{X: 0.25, Y: -0.75}, position(w, s.Player))
}

// Frames longer than 100ms flip the velocity. This pins the existing
// behavior; it is not what friction should do.
func TestIntegrateLongFrameInvertsVelocity(t *testing.T) {
	w, s := spawnScene(t)
	w.Velocities.Set(s.Player, object.Velocity{Vec2: physics.Vec2{X: 1, Y: -2}})

	integrate(w, Tick{Delta: 200 * time.Millisecond})

	got := velocity(w, s.Player)
	assert.InDelta(t, -1.0, got.X, 1e-12)
	assert.InDelta(t, 2.0, got.Y, 1e-12)
}

func TestIntegrateSkipsStaticEntities(t *testing.T) {
	w, s := spawnScene(t)
	integrate(w, Tick{Delta: frame})
	assert.Equal(t, physics.Vec2{X: 3}, position(w, s.Mob))
}

func TestHighlightHitBoxes(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5} {
		w, s := spawnScene(t)
		bodies := make([]ecs.Entity, n)
		for i := range bodies {
			bodies[i] = w.Spawn()
		}
		w.Sensors.Set(s.Sensor, object.Sensor{Bodies: bodies})

		HighlightHitBoxes(w, Tick{})

		sprite, _ := w.Sprites.Get(s.Sensor)
		if n == 0 {
			assert.Equal(t, object.SensorIdleColor, sprite.Color, "bodies=%d", n)
		} else {
			assert.Equal(t, object.SensorActiveColor, sprite.Color, "bodies=%d", n)
		}
		sensor, _ := w.Sensors.Get(s.Sensor)
		assert.Len(t, sensor.Bodies, n, "highlighter must not touch the overlap set")
	}
}

func TestCollisionRefreshesSensor(t *testing.T) {
	w, s := spawnScene(t)
	c := NewCollision()

	c.Update(w, Tick{})
	sensor, _ := w.Sensors.Get(s.Sensor)
	assert.Empty(t, sensor.Bodies)

	// Sensor spans 3x3 around the player; mob spans [2.5, 3.5]
	w.Transforms.Set(s.Player, object.Transform{Translation: physics.Vec2{X: 1.2}})
	c.Update(w, Tick{})
	sensor, _ = w.Sensors.Get(s.Sensor)
	assert.Equal(t, []ecs.Entity{s.Mob}, sensor.Bodies)

	w.Transforms.Set(s.Player, object.Transform{Translation: physics.Vec2{X: -1}})
	c.Update(w, Tick{})
	sensor, _ = w.Sensors.Get(s.Sensor)
	assert.Empty(t, sensor.Bodies)
}

func TestCollisionIgnoresOwnCarrier(t *testing.T) {
	w, s := spawnScene(t)
	w.Colliders.Set(s.Player, object.Collider{Shape: physics.SquareOf(physics.Splat(1)), Kind: object.KindSolid})

	NewCollision().Update(w, Tick{})
	sensor, _ := w.Sensors.Get(s.Sensor)
	assert.Empty(t, sensor.Bodies)
}

func TestCollisionPushesSolidMover(t *testing.T) {
	w, s := spawnScene(t)
	w.Colliders.Set(s.Player, object.Collider{Shape: physics.SquareOf(physics.Splat(1)), Kind: object.KindSolid})
	w.Transforms.Set(s.Player, object.Transform{Translation: physics.Vec2{X: 2.2}})
	w.Velocities.Set(s.Player, object.Velocity{Vec2: physics.Vec2{X: 0.3, Y: 0.1}})

	NewCollision().Update(w, Tick{})

	assert.InDelta(t, 2.0, position(w, s.Player).X, 1e-9)
	assert.Zero(t, velocity(w, s.Player).X, "motion into the mob stops")
	assert.Equal(t, 0.1, velocity(w, s.Player).Y)
	assert.Equal(t, physics.Vec2{X: 3}, position(w, s.Mob), "static body does not move")
}

func TestDefaultScheduleOrder(t *testing.T) {
	sched := Default(config.DefaultTuning())
	assert.Equal(t, []string{"input", "collision", "motion", "hitbox"}, sched.Stages())
}

func TestScheduleRunsInOrder(t *testing.T) {
	var calls []string
	sched := NewSchedule().
		AddStartup("first", func(*object.World) error { calls = append(calls, "startup"); return nil }).
		AddStage("a", func(*object.World, Tick) { calls = append(calls, "a") }).
		AddStage("b", func(*object.World, Tick) { calls = append(calls, "b") })

	w := object.NewWorld()
	require.NoError(t, sched.Startup(w))
	sched.Tick(w, Tick{})
	sched.Tick(w, Tick{})
	assert.Equal(t, []string{"startup", "a", "b", "a", "b"}, calls)
}

func TestScheduleStartupError(t *testing.T) {
	boom := errors.New("boom")
	sched := NewSchedule().
		AddStartup("bad", func(*object.World) error { return boom }).
		AddStartup("never", func(*object.World) error { t.Fatal("ran after failure"); return nil })

	err := sched.Startup(object.NewWorld())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "startup bad")
}

func TestDefaultScheduleEndToEnd(t *testing.T) {
	w := object.NewWorld()
	sched := Default(config.DefaultTuning())
	require.NoError(t, sched.Startup(w))
	require.Len(t, w.Controlled(), 1)
	player := w.Controlled()[0]
	sensor := w.HitBoxSensors()[0]

	// Hold right until the sensor reaches the mob
	right := Tick{Delta: frame, Input: input.Pressed(input.KeyRight)}
	for i := 0; i < 600; i++ {
		sched.Tick(w, right)
		s, _ := w.Sensors.Get(sensor)
		if len(s.Bodies) > 0 {
			break
		}
	}

	assert.Greater(t, position(w, player).X, 1.0)
	sprite, _ := w.Sprites.Get(sensor)
	assert.Equal(t, object.SensorActiveColor, sprite.Color)
}

func TestDefaultScheduleMotion(t *testing.T) {
	tests := []struct {
		name    string
		delta   time.Duration
		wantPos float64
		wantVel float64
	}{
		{"decay", 50 * time.Millisecond, 1, 0.5},
		{"zero delta", 0, 1, 1},
		{"long frame inverts", 200 * time.Millisecond, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := object.NewWorld()
			sched := Default(config.DefaultTuning())
			require.NoError(t, sched.Startup(w))
			player := w.Controlled()[0]
			w.Velocities.Set(player, object.Velocity{Vec2: physics.Vec2{X: 1}})

			sched.Tick(w, Tick{Delta: tt.delta})

			assert.InDelta(t, tt.wantPos, position(w, player).X, 1e-12)
			assert.InDelta(t, tt.wantVel, velocity(w, player).X, 1e-12)
		})
	}
}
