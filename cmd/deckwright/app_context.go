package main

import (
	"os"

	"golang.org/x/term"

	"github.com/avelinec/deckwright/internal/config"
	"github.com/avelinec/deckwright/internal/logger"
)

// appContext bundles the parsed configuration and the process logger for
// command runners.
type appContext struct {
	cfg *config.Config
	log *logger.Logger
}

func newAppContext(flags *rootFlags) (*appContext, error) {
	var cfg *config.Config
	if flags.configPath != "" {
		parsed, err := config.ParseConfig(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = parsed
	} else {
		cfg = config.Default()
	}

	level := cfg.LogLevel
	if flags.verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: term.IsTerminal(int(os.Stderr.Fd())),
	})
	if err != nil {
		return nil, err
	}

	return &appContext{cfg: cfg, log: log}, nil
}
