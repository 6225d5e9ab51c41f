package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/spendlog/internal/config"
	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/export"
	"github.com/MrJamesThe3rd/spendlog/internal/importer"
	"github.com/MrJamesThe3rd/spendlog/internal/storage"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

const (
	ExitOK         = 0
	ExitError      = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitCorrupt    = 4
)

var errUsage = errors.New("invalid input")

// usageError marks bad command line input so it exits like a validation error.
func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

type rootFlags struct {
	configPath string
	backend    string
	data       string
	logLevel   string
}

// app carries what the commands share for one invocation.
type app struct {
	flags  rootFlags
	stderr io.Writer
	cfg    *config.Config

	expenses *expense.Service
	exports  *export.Service
	imports  *importer.Service
}

func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	cmd := &cobra.Command{
		Use:           "spendlog",
		Short:         "Record, filter and summarise personal expenses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&a.flags.configPath, "config", "", "Path to a YAML config file (optional)")
	cmd.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "Storage backend: csv|jsonl|sqlite|postgres")
	cmd.PersistentFlags().StringVar(&a.flags.data, "data", "", "Data file for the csv, jsonl and sqlite backends")
	cmd.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug|info|warn|error")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.configure(cmd)
	}

	cmd.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
		newEditCmd(a),
		newReportCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "spendlog %s\n", Version)
		},
	})

	return cmd
}

// configure resolves the configuration (env, then file, then flags) and
// installs the logger.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Storage.Backend = a.flags.backend
	}

	if flags.Changed("data") {
		cfg.Storage.Data = a.flags.data
	}

	if flags.Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: invalid config: %w", errUsage, err)
	}

	level, _ := cfg.LogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level})))

	a.cfg = cfg

	return nil
}

// withStore opens the configured storage around fn.
func (a *app) withStore(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		repo, closeFn, err := storage.Open(ctx, a.cfg)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}

		defer func() {
			if cerr := closeFn(); cerr != nil && err == nil {
				err = fmt.Errorf("closing storage: %w", cerr)
			}
		}()

		a.expenses = expense.NewService(repo)
		if err := a.expenses.Open(ctx); err != nil {
			return err
		}

		a.exports = export.NewService(a.expenses)
		a.imports = importer.NewService()

		return fn(ctx, cmd, args)
	}
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintln(stderr, "error:", err)

	return ExitCode(err)
}

func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, expense.ErrCorruptData):
		return ExitCorrupt
	case errors.Is(err, expense.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, errUsage), errors.Is(err, importer.ErrInvalidInput), expense.IsValidationError(err):
		return ExitValidation
	default:
		return ExitError
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}

		return nil
	}
}
