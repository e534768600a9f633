package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/hitbox/internal/config"
	"github.com/tomz197/hitbox/internal/logx"
	"github.com/tomz197/hitbox/internal/loop"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The terminal is the render surface, so logs only go to HITBOX_LOG_FILE
	logger, closer, err := logx.FromEnv("game", io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	tuning, err := config.TuningFromEnv()
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	logger.Info("starting", "fps", tuning.TargetFPS)
	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Tuning: &tuning,
		Logger: logger,
	})
}
