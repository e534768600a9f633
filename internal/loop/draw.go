package loop

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/tomz197/hitbox/internal/draw"
	"github.com/tomz197/hitbox/internal/ecs"
	"github.com/tomz197/hitbox/internal/object"
)

// drawFrame clears the screen, draws every sprite through the camera, and
// overlays the status line.
func drawFrame(state *State, out *draw.ChunkWriter, canvas *draw.Canvas) error {
	draw.ClearScreen(out)
	canvas.Clear()

	drawSprites(state, canvas)
	canvas.Render(out)
	drawHUD(state, out, canvas)

	if err := out.Flush(); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// drawSprites paints sprites parents-first so attached children (the sensor)
// are composited over their carrier.
func drawSprites(state *State, canvas *draw.Canvas) {
	w := state.World
	cams := w.Cameras.Entities()
	if len(cams) == 0 {
		return
	}
	cam, _ := w.Cameras.Get(cams[0])
	camPos := w.GlobalPosition(cams[0])
	view := object.View{Width: canvas.LogicalWidth(), Height: canvas.LogicalHeight()}

	entities := make([]ecs.Entity, 0, w.Sprites.Len())
	for _, e := range w.Entities() {
		if w.Sprites.Has(e) {
			entities = append(entities, e)
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return depth(w, entities[i]) < depth(w, entities[j])
	})

	for _, e := range entities {
		sprite, _ := w.Sprites.Get(e)
		tl, br := cam.ViewRect(w.GlobalPosition(e), sprite.Size, camPos, view)
		canvas.FillRect(tl, br, sprite.Color)
	}
}

func depth(w *object.World, e ecs.Entity) int {
	d := 0
	for p, ok := w.Parent(e); ok; p, ok = w.Parent(p) {
		d++
	}
	return d
}

// drawHUD writes a one-line status on the last terminal row.
func drawHUD(state *State, out *draw.ChunkWriter, canvas *draw.Canvas) {
	rows, cols := canvas.TerminalHeight(), canvas.TerminalWidth()
	if rows < 1 || cols < 1 {
		return
	}

	out.WriteAt(1, rows, truncate(hudLine(state), cols))
}

// truncate cuts s to at most cols runes.
func truncate(s string, cols int) string {
	if utf8.RuneCountInString(s) <= cols {
		return s
	}
	return string([]rune(s)[:cols])
}

// hudLine describes the first controllable entity and its hitbox.
func hudLine(state *State) string {
	w := state.World
	controlled := w.Controlled()
	if len(controlled) == 0 {
		return hudHelp
	}
	player := controlled[0]

	pos := w.GlobalPosition(player)
	vel, _ := w.Velocities.Get(player)

	overlaps := 0
	for _, c := range w.Children(player) {
		if s, ok := w.Sensors.Get(c); ok && w.HitBoxes.Has(c) {
			overlaps += len(s.Bodies)
		}
	}

	return fmt.Sprintf("pos %6.2f,%6.2f  speed %5.3f  hitbox %d  %s",
		pos.X, pos.Y, vel.Length(), overlaps, hudHelp)
}
