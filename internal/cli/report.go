package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/export"
	"github.com/MrJamesThe3rd/spendlog/internal/report"
)

type reportFlags struct {
	csv     bool
	entries bool
}

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries: monthly, weekly, yearly, range totals and category breakdowns",
	}

	cmd.AddCommand(
		newPeriodReportCmd(a, "monthly <year> <month>", "Summary of one month (month as number or name)", 2, monthlyPeriod),
		newPeriodReportCmd(a, "weekly <year> <week>", "Summary of one ISO week", 2, weeklyPeriod),
		newPeriodReportCmd(a, "yearly <year>", "Summary of one year", 1, yearlyPeriod),
		newRangeCmd(a),
		newBreakdownCmd(a),
		newCategoriesCmd(a),
	)

	return cmd
}

type periodFunc func(args []string) (string, report.Period, error)

func monthlyPeriod(args []string) (string, report.Period, error) {
	year, err := parseYear(args[0])
	if err != nil {
		return "", report.Period{}, err
	}

	month, err := report.ParseMonth(args[1])
	if err != nil {
		return "", report.Period{}, usageError("%v", err)
	}

	return fmt.Sprintf("%s %d", month, year), report.MonthPeriod(year, month), nil
}

func weeklyPeriod(args []string) (string, report.Period, error) {
	year, err := parseYear(args[0])
	if err != nil {
		return "", report.Period{}, err
	}

	week, err := strconv.Atoi(args[1])
	if err != nil || week < 1 || week > isoWeeks(year) {
		return "", report.Period{}, usageError("invalid week %q: must be between 1 and %d", args[1], isoWeeks(year))
	}

	return fmt.Sprintf("Week %d of %d", week, year), report.WeekPeriod(year, week), nil
}

func yearlyPeriod(args []string) (string, report.Period, error) {
	year, err := parseYear(args[0])
	if err != nil {
		return "", report.Period{}, err
	}

	return fmt.Sprintf("Year %d", year), report.YearPeriod(year), nil
}

func newPeriodReportCmd(a *app, use, short string, nargs int, period periodFunc) *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactArgs(nargs),
		RunE: a.withStore(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			title, p, err := period(args)
			if err != nil {
				return err
			}

			s := report.Summarize(a.expenses.Snapshot(), p)

			if f.csv {
				return export.WriteCSV(cmd.OutOrStdout(), export.SummaryRows(s))
			}

			printSummary(cmd.OutOrStdout(), title, s, f.entries)

			return nil
		}),
	}

	cmd.Flags().BoolVar(&f.csv, "csv", false, "Write the summary as CSV (category,count,total)")
	cmd.Flags().BoolVar(&f.entries, "entries", false, "Also list the entries, newest first")

	return cmd
}

func newRangeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "range <from> <to>",
		Short: "Total spent between two dates, inclusive",
		Args:  exactArgs(2),
		RunE: a.withStore(func(_ context.Context, cmd *cobra.Command, args []string) error {
			now := time.Now()

			from, err := expense.ParseDate(expense.ResolveDate(args[0], now))
			if err != nil {
				return err
			}

			to, err := expense.ParseDate(expense.ResolveDate(args[1], now))
			if err != nil {
				return err
			}

			total := report.RangeTotal(a.expenses.Snapshot(), from, to)
			fmt.Fprintf(cmd.OutOrStdout(), "Total %s: %s\n", report.DayRange(from, to), expense.FormatAmount(total))

			return nil
		}),
	}
}

func newBreakdownCmd(a *app) *cobra.Command {
	var (
		f   filterFlags
		csv bool
	)

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Total and share per category",
		Args:  exactArgs(0),
		RunE: a.withStore(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			filter, err := f.build(time.Now())
			if err != nil {
				return err
			}

			lines := report.Breakdown(a.expenses.List(ctx, filter))

			if csv {
				return export.WriteCSV(cmd.OutOrStdout(), export.BreakdownRows(lines))
			}

			printBreakdown(cmd.OutOrStdout(), lines)

			return nil
		}),
	}

	f.register(cmd.Flags())
	cmd.Flags().BoolVar(&csv, "csv", false, "Write the breakdown as CSV (category,total,percentage)")

	return cmd
}

func newCategoriesCmd(a *app) *cobra.Command {
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Entries grouped by category",
		Args:  exactArgs(0),
		RunE: a.withStore(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			filter, err := f.build(time.Now())
			if err != nil {
				return err
			}

			printGroups(cmd.OutOrStdout(), report.GroupByCategory(a.expenses.List(ctx, filter)))

			return nil
		}),
	}

	f.register(cmd.Flags())

	return cmd
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil || year < 1 || year > 9999 {
		return 0, usageError("invalid year %q", s)
	}

	return year, nil
}

// isoWeeks counts the ISO weeks of year; December 28th is always in the last one.
func isoWeeks(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}
