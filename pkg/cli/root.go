// Package cli implements the sqltree command tree.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sqltree/internal/config"
	"sqltree/internal/sqltree/treedoc"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

// run executes one invocation and returns its exit code. A tree mismatch from
// `equal` has already been reported by the command, so it only sets the code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNotEqual):
		return 1
	}

	output, _ := rootCmd.PersistentFlags().GetString("output")
	if output == "json" {
		_ = printJSON(stdout, map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

// env is the per-invocation state resolved in PersistentPreRunE.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	loader *treedoc.Loader
}

func newRootCmd() *cobra.Command {
	var (
		output   string
		logLevel string
		envFile  string
	)
	e := &env{}

	rootCmd := &cobra.Command{
		Use:           "sqltree",
		Short:         "Inspect SQL expression trees with temporal table references",
		Long:          "Format, compare and deduplicate SQL expression tree documents (YAML or JSON).",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}

			// Apply precedence: flag > env > default
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			// Keep the flag in sync so getOutputFormat sees env-provided values.
			if err := cmd.Root().PersistentFlags().Set("output", cfg.Output); err != nil {
				return err
			}

			e.cfg = cfg
			e.logger = newLogger(cmd.ErrOrStderr(), cfg)
			for _, w := range cfg.Warnings {
				e.logger.Warn(w)
			}
			e.loader = treedoc.NewLoader(e.logger, cfg.LoadConcurrency)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional KEY=VALUE file read before the environment")

	rootCmd.AddCommand(newFormatCmd(e))
	rootCmd.AddCommand(newChildrenCmd(e))
	rootCmd.AddCommand(newHashCmd(e))
	rootCmd.AddCommand(newEqualCmd(e))
	rootCmd.AddCommand(newDedupCmd(e))
	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// errNotEqual makes `sqltree equal` exit non-zero when the trees differ.
var errNotEqual = errors.New("trees are not structurally equal")

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
