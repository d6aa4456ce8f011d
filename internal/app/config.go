package app

import (
	"errors"
	"fmt"
)

// Command names accepted on the command line.
const (
	CommandResolve  = "resolve"
	CommandValidate = "validate"
	CommandLineage  = "lineage"
	CommandDiff     = "diff"
	CommandWatch    = "watch"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command   string
	Targets   []string
	Overrides []string

	ConfigDir string
	Format    string
	Lenient   bool

	LogFormat string
	LogLevel  string
	HTTPPort  int
}

// NewConfig validates the raw CLI configuration and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigDir == "" {
		return nil, errors.New("ConfigDir is a required configuration field and cannot be empty")
	}

	switch cfg.Command {
	case CommandResolve, CommandLineage:
		if len(cfg.Targets) != 1 {
			return nil, fmt.Errorf("%s takes exactly one document name, got %d", cfg.Command, len(cfg.Targets))
		}
	case CommandValidate:
		// Zero targets means validate every document in the store.
	case CommandDiff:
		if len(cfg.Targets) != 2 {
			return nil, fmt.Errorf("diff takes exactly two document names, got %d", len(cfg.Targets))
		}
	case CommandWatch:
		if len(cfg.Targets) != 1 {
			return nil, fmt.Errorf("watch takes exactly one document name, got %d", len(cfg.Targets))
		}
	case "":
		return nil, errors.New("no command given")
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	if len(cfg.Overrides) > 0 {
		switch cfg.Command {
		case CommandResolve, CommandValidate, CommandWatch:
		default:
			return nil, fmt.Errorf("%s does not accept overrides", cfg.Command)
		}
	}

	return &cfg, nil
}
