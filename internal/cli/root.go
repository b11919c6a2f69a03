// Package cli implements the cobra-based CLI commands for foamcut.
//
// Each subcommand (cut, check, ports, config) is defined in its own file
// within this package. This file defines the root command that serves as
// the parent for all subcommands and handles global flags.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/foamcut/internal/config"
	"github.com/shinji-kodama/foamcut/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, all output uses structured JSON format for machine consumption.
	// When false (default), output uses human-readable text format.
	jsonOutput bool

	// verbose enables detailed logging output for debugging.
	// When true, additional information about operations is printed to stderr.
	verbose bool

	// configPath points at the YAML configuration file. Empty means
	// foamcut.yaml in the working directory, if present.
	configPath string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action. It only provides
// help text and global flags; actual functionality is provided by
// subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		// Use is the one-line usage pattern shown in help output.
		Use:   "foamcut",
		Short: "Toolpath converter for the CUT 1610S foam cutter",
		Long: `foamcut converts polyline toolpaths into machine instructions for a
CNC foam cutter.

Jobs are checked against the machine's workspace before anything is
encoded. Valid jobs are streamed to the cutter over a serial line as
plotter commands, or saved as a timestamped G-code job file.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: $"+config.EnvConfig+" or ./"+config.DefaultFileName+" if present)")

	rootCmd.AddCommand(NewCutCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewPortsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// Errors returned by commands are translated into a CLIError by
// toCLIError, whose code becomes the process exit status.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		cliErr := toCLIError(err)
		printError(cliErr.Message, cliErr.Err)
		os.Exit(int(cliErr.Code))
	}
}

// toCLIError maps an error to the CLIError that describes it. Errors that
// already carry an exit code are returned unchanged; domain errors get the
// code of their kind; anything else is a general error.
func toCLIError(err error) *model.CLIError {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var (
		geomErr   *model.GeometryError
		violation *model.BoundaryViolation
		emitErr   *model.EmitError
	)
	switch {
	case errors.As(err, &geomErr):
		return model.NewCLIError(model.ExitGeometryError, err.Error())
	case errors.As(err, &violation):
		return model.NewCLIError(model.ExitBoundaryViolation, err.Error())
	case errors.Is(err, model.ErrEmptyJob):
		return model.NewCLIError(model.ExitEmptyJob, "nothing to cut: the job has no points")
	case errors.As(err, &emitErr) && emitErr.Kind == model.EmitSinkUnavailable:
		return model.WrapCLIError(model.ExitSinkUnavailable,
			fmt.Sprintf("failed to emit job to %s", emitErr.Sink), emitErr.Err)
	case errors.Is(err, model.ErrDeclined):
		return model.NewCLIError(model.ExitUserCancelled, "operation cancelled by user")
	case errors.Is(err, context.Canceled):
		return model.NewCLIError(model.ExitUserCancelled, "interrupted")
	default:
		return model.NewCLIError(model.ExitGeneralError, err.Error())
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
// This is used throughout the CLI for debug/trace output that helps
// users understand what operations are being performed.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig reads .env, then the configuration selected by --config or
// FOAMCUT_CONFIG.
func loadConfig() (*config.Config, error) {
	if err := config.LoadEnvFile(config.DefaultEnvFile); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "invalid environment file", err)
	}

	path := configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	VerboseLog("Loaded configuration (workspace %s, sink %s)", cfg.Workspace.Bounds(), cfg.Sink)
	return cfg, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
