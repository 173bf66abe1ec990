// Package main is the entry point for the tavern-dice roller.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/tavern-dice/internal/config"
	"github.com/Faultbox/tavern-dice/internal/game"
	"github.com/Faultbox/tavern-dice/internal/logger"
	"github.com/Faultbox/tavern-dice/internal/roll"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Tavern Dice ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create dice tray", zap.Error(err))
		os.Exit(1)
	}
	defer g.Close()

	res, err := g.Roll(ctx, cfg.Roll.Notation)
	if err != nil {
		logger.Error("roll failed", zap.Error(err))
		g.Close()
		logger.Sync()
		os.Exit(1)
	}

	printResult(os.Stdout, res)
}

func printResult(w io.Writer, res roll.Result) {
	fmt.Fprintf(w, "Total: %d\n", res.Total)
	fmt.Fprintf(w, "Individual: %s\n", res.String())
	switch {
	case res.Critical:
		fmt.Fprintln(w, "Critical!")
	case res.Fumble:
		fmt.Fprintln(w, "Fumble!")
	}
}
