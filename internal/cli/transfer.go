package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/spendlog/internal/export"
	"github.com/MrJamesThe3rd/spendlog/internal/importer"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		f    filterFlags
		kind string
	)

	cmd := &cobra.Command{
		Use:   "export <path|->",
		Short: "Write expenses or a category breakdown as CSV",
		Example: `  spendlog export expenses.csv
  spendlog export - --kind breakdown --from 2024-01-01 --to 2024-12-31`,
		Args: exactArgs(1),
		RunE: a.withStore(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			k, err := export.ParseKind(kind)
			if err != nil {
				return usageError("%v", err)
			}

			filter, err := f.build(time.Now())
			if err != nil {
				return err
			}

			if err := a.exports.Export(ctx, filter, k, args[0], cmd.OutOrStdout()); err != nil {
				return err
			}

			if args[0] != "-" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s export to %s\n", k, args[0])
			}

			return nil
		}),
	}

	f.register(cmd.Flags())
	cmd.Flags().StringVar(&kind, "kind", string(export.KindRecords), "What to export: records|breakdown")

	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <path|->",
		Short: "Add the expenses of a CSV export or line JSON file; all or nothing",
		Args:  exactArgs(1),
		RunE: a.withStore(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			f := importer.Format(format)
			if format == "" {
				f = importer.FormatFor(args[0])
			}

			var r io.Reader = cmd.InOrStdin()

			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening import file: %w", err)
				}
				defer file.Close()

				r = file
			}

			rows, err := a.imports.Import(f, r)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}

			created, err := a.expenses.ImportRows(ctx, rows)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses\n", len(created))

			return nil
		}),
	}

	cmd.Flags().StringVar(&format, "format", "", "Input format: csv|jsonl (default: from the file extension)")

	return cmd
}
