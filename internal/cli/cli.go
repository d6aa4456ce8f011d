package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lenslab/lensconf/internal/app"
	"github.com/lenslab/lensconf/internal/merge"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("lensconf", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
lensconf - layered training-manifest engine for lensless imaging pipelines.

Usage:
  lensconf [options] COMMAND [NAME...] [KEY=VALUE...]

Commands:
  resolve NAME    Print the effective configuration of a document.
  validate [NAME] Validate one document, or every document when none given.
  lineage NAME    Print a document's merge order, first writer first.
  diff A B        Print the structural difference between two documents.
  watch NAME      Re-resolve a document whenever a manifest changes.

Overrides:
  KEY=VALUE       Replace an existing leaf (e.g. training.batch_size=4).
  +KEY=VALUE      Add a leaf that does not exist yet.
  ~KEY            Delete an existing leaf.

Options:
`)
		flagSet.PrintDefaults()
	}

	configDirFlag := flagSet.String("config-dir", "configs", "Path to the manifest file or directory.")
	cFlag := flagSet.String("c", "", "Path to the manifest file or directory (shorthand).")
	formatFlag := flagSet.String("format", "yaml", "Output format for resolve. Options: 'yaml' or 'json'.")
	lenientFlag := flagSet.Bool("lenient", false, "Warn instead of failing on unknown option groups.")
	var setFlags stringList
	flagSet.Var(&setFlags, "set", "Override in KEY=VALUE form. May be repeated.")
	httpPortFlag := flagSet.Int("http-port", 0, "Port for the watch-mode HTTP server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	command := flagSet.Arg(0)
	var targets []string
	overrides := []string(setFlags)
	for _, arg := range flagSet.Args()[1:] {
		if merge.IsOverride(arg) {
			overrides = append(overrides, arg)
		} else {
			targets = append(targets, arg)
		}
	}

	configDir := *configDirFlag
	if *cFlag != "" {
		configDir = *cFlag
	}

	format := strings.ToLower(*formatFlag)
	if format != "yaml" && format != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid format: must be 'yaml' or 'json'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Command:   command,
		Targets:   targets,
		Overrides: overrides,
		ConfigDir: configDir,
		Format:    format,
		Lenient:   *lenientFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		HTTPPort:  *httpPortFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "command", command, "targets", targets)
	return config, false, nil
}
