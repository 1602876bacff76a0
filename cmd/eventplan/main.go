package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/voglerr/eventplan/internal/app"
	"github.com/voglerr/eventplan/internal/cli"
	"github.com/voglerr/eventplan/internal/hcl"
	"github.com/voglerr/eventplan/internal/validate"
)

// main is the entrypoint for the eventplan application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		var fieldErrs validate.Errors
		if errors.As(err, &fieldErrs) {
			// Already reported field by field through the logger.
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, logW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// A programming defect deeper in the stack (a node without a builder, an
	// unencodable attribute) surfaces as a panic; recover it into a clean
	// error message instead of a raw stack trace.
	defer recoverToError(&err)

	// Instantiate the concrete HCL loader to pass to the app.
	loader := hcl.NewLoader()
	planApp := app.New(outW, logW, appConfig, loader)

	return planApp.Run(context.Background())
}

// recoverToError converts a panic into an error assigned to the caller's
// named return value.
func recoverToError(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("a critical internal error occurred: %v", r)
	}
}
