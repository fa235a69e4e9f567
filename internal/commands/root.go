// Package commands contains all CLI command definitions.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"boxgen/internal/config"
	"boxgen/internal/driver"
	"boxgen/internal/logger"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boxgen",
		Short: "Generate reference-counted GObject boxed types from YAML schemas",
		Long: `boxgen reads a YAML description of a value type and writes a C header
and a C++ implementation of a reference-counted GObject boxed type with
constructor, setters, deep copy, ref/unref and optional marshaling to an
external SDK model class.

Settings come from BOXGEN_* environment variables and an optional
.boxgen.yaml file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newGenerateCmd(), newCheckCmd())

	return rootCmd
}

// Run executes the CLI with the given arguments and returns the process
// exit code. Errors are printed to stderr with their details and hints.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "error: %v\n", err)

	for _, detail := range errors.GetAllDetails(err) {
		fmt.Fprintf(stderr, "error: %s\n", detail)
	}

	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(stderr, "hint: %s\n", hint)
	}

	return 1
}

// newDriver resolves configuration from the working directory and builds the
// driver for one command.
func newDriver(cmd *cobra.Command) (*driver.Driver, func(), error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, errors.Wrap(err, "resolving working directory")
	}

	cfg, err := config.Load(config.New(wd))
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	sync := func() { _ = log.Sync() }

	return driver.New(cfg.Generator, log, cmd.InOrStdin()), sync, nil
}
