package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
)

func newAddCmd(a *app) *cobra.Command {
	var p expense.CreateParams

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Example: `  spendlog add --amount 10.00 --category Food --date 2024-01-05
  spendlog add --amount 3.20 --category coffee --note "flat white"`,
		Args: exactArgs(0),
		RunE: a.withStore(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			p.Date = expense.ResolveDate(p.Date, time.Now())

			e, err := a.expenses.Create(ctx, p)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added expense #%d: %s %s %s\n",
				e.ID, expense.FormatDate(e.Date), e.Category, expense.FormatAmount(e.Amount))

			return nil
		}),
	}

	cmd.Flags().StringVar(&p.Amount, "amount", "", "Amount, e.g. 12.50 (required)")
	cmd.Flags().StringVar(&p.Category, "category", "", "Category (required)")
	cmd.Flags().StringVar(&p.Date, "date", "today", "Date as YYYY-MM-DD, today or yesterday")
	cmd.Flags().StringVar(&p.Note, "note", "", "Free text note")

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, optionally filtered",
		Args:  exactArgs(0),
		RunE: a.withStore(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			filter, err := f.build(time.Now())
			if err != nil {
				return err
			}

			printExpenses(cmd.OutOrStdout(), a.expenses.List(ctx, filter))

			return nil
		}),
	}

	f.register(cmd.Flags())

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense by id",
		Args:  exactArgs(1),
		RunE: a.withStore(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			if err := a.expenses.Delete(ctx, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense #%d\n", id)

			return nil
		}),
	}
}

func newEditCmd(a *app) *cobra.Command {
	var p expense.CreateParams

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an expense; omitted fields keep their value",
		Args:  exactArgs(1),
		RunE: a.withStore(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			if p == (expense.CreateParams{}) {
				return usageError("nothing to change: pass --amount, --category, --date or --note")
			}

			p.Date = expense.ResolveDate(p.Date, time.Now())

			e, err := a.expenses.Update(ctx, id, p)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated expense #%d: %s %s %s\n",
				e.ID, expense.FormatDate(e.Date), e.Category, expense.FormatAmount(e.Amount))

			return nil
		}),
	}

	cmd.Flags().StringVar(&p.Amount, "amount", "", "New amount")
	cmd.Flags().StringVar(&p.Category, "category", "", "New category")
	cmd.Flags().StringVar(&p.Date, "date", "", "New date as YYYY-MM-DD, today or yesterday")
	cmd.Flags().StringVar(&p.Note, "note", "", "New note")

	return cmd
}

func parseIDArg(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, usageError("invalid id %q: must be a positive integer", s)
	}

	return id, nil
}
