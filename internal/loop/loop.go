// Package loop provides the frame loop that drives one world on a terminal.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/hitbox/internal/config"
	"github.com/tomz197/hitbox/internal/draw"
	"github.com/tomz197/hitbox/internal/input"
)

// Options configures Run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // nil means the local terminal
	Tuning       *config.Tuning    // nil means config.DefaultTuning
	Logger       *log.Logger       // nil discards logs
	SessionID    string            // attached to log lines
	MaxFrames    int               // stop after this many frames; 0 runs until quit
}

// Run starts the frame loop with the standard Input → Update → Draw cycle.
// It returns when the player quits, the reader is exhausted, ctx is
// cancelled, or MaxFrames is reached.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	tuning := config.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	if err := tuning.Validate(); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.SessionID != "" {
		logger = logger.With("session", opts.SessionID)
	}

	state := NewState(tuning)
	if err := state.Startup(); err != nil {
		return fmt.Errorf("spawn world: %w", err)
	}
	logger.Debug("world spawned", "entities", state.World.Len())

	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	canvas := draw.NewScaledCanvas(termWidth, termHeight, tuning.ViewWidth, tuning.ViewHeight)
	out := draw.NewChunkWriter(w)
	// Stops the reader goroutine once the loop returns, even if the client keeps typing
	streamCtx, stopStream := context.WithCancel(ctx)
	defer stopStream()
	stream := input.StartStream(streamCtx, r)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	frameTime := time.Second / time.Duration(tuning.TargetFPS)
	lastTime := time.Now()

	for state.Running {
		if ctx.Err() != nil {
			logger.Debug("context done", "err", ctx.Err())
			break
		}

		frameStart := time.Now()
		state.Delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		processInput(state, stream)
		if !state.Running {
			break
		}

		// ===== UPDATE PHASE =====
		if err := updateScreen(canvas, sizeFunc); err != nil {
			return err
		}
		state.Tick()

		// ===== DRAW PHASE =====
		if err := drawFrame(state, out, canvas); err != nil {
			return err
		}

		if opts.MaxFrames > 0 && state.Frames >= opts.MaxFrames {
			break
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	logger.Info("session ended", "frames", state.Frames)
	return nil
}

// processInput reads all pending input and stops the loop on quit or when
// the input stream is closed.
func processInput(state *State, stream *input.Stream) {
	state.Input = input.ReadInput(stream)
	if state.Input.Quit || state.Input.Closed {
		state.Running = false
	}
}

// updateScreen checks for terminal resize and updates canvas scaling.
func updateScreen(canvas *draw.Canvas, sizeFunc draw.TermSizeFunc) error {
	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	canvas.Resize(termWidth, termHeight)
	return nil
}
