package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docportal/internal/config"
	"git.home.luguber.info/inful/docportal/internal/logfields"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"docportal.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Serve struct {
	} `cmd:"" help:"Serve the documentation portal"`

	Validate struct {
	} `cmd:"" help:"Validate the configuration file and per-version docs configs"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "serve":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", logfields.Error(err))
			os.Exit(1)
		}
		signalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := runServe(signalCtx, CLI.Config, cfg); err != nil {
			slog.Error("Server failed", logfields.Error(err))
			os.Exit(1)
		}

	case "validate":
		if err := runValidate(CLI.Config); err != nil {
			slog.Error("Validation failed", logfields.Error(err))
			os.Exit(1)
		}
		fmt.Println("Configuration is valid")

	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Failed to initialize configuration", logfields.Error(err))
			os.Exit(1)
		}
		fmt.Printf("Created configuration file: %s\n", CLI.Config)

	default:
		_ = ctx.PrintUsage(false)
		os.Exit(1)
	}
}
