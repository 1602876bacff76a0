package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/voglerr/eventplan/internal/app"
	"github.com/voglerr/eventplan/internal/resolve"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("eventplan", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
eventplan - plans a serverless event pipeline from a declarative definition.

Usage:
  eventplan [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to a single .hcl pipeline definition or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the pipeline definition file or directory.")
	cFlag := flagSet.String("c", "", "Path to the pipeline definition file or directory (shorthand).")
	formatFlag := flagSet.String("format", "json", "Plan output format. Options: 'json' or 'yaml'.")
	accountFlag := flagSet.String("account", "", "Account ID for the identity context.")
	regionFlag := flagSet.String("region", "", "Region for the identity context.")
	partitionFlag := flagSet.String("partition", "aws", "Partition for the identity context.")
	resolveIdentityFlag := flagSet.Bool("resolve-identity", false, "Resolve account/region/partition via STS instead of flags.")
	validateOnlyFlag := flagSet.Bool("validate-only", false, "Validate the definition and exit without assembling a plan.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Definition path determined.", "path", path)

	if path == "" {
		slog.Debug("No definition path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	format := strings.ToLower(*formatFlag)
	if format != "json" && format != "yaml" {
		return nil, false, &ExitError{Code: 2, Message: "invalid format: must be 'json' or 'yaml'"}
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
		ConfigPath: path,
		Format:     format,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		Identity: resolve.Identity{
			Partition: *partitionFlag,
			Region:    *regionFlag,
			AccountID: *accountFlag,
		},
		ResolveIdentity: *resolveIdentityFlag,
		ValidateOnly:    *validateOnlyFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
