package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/report"
	"github.com/MrJamesThe3rd/spendlog/internal/storage/fsutil"
)

// Kind selects the table an export produces.
type Kind string

const (
	KindRecords   Kind = "records"
	KindBreakdown Kind = "breakdown"
)

// ParseKind maps a user supplied name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindRecords, KindBreakdown:
		return k, nil
	case "":
		return KindRecords, nil
	default:
		return "", fmt.Errorf("unknown export kind %q (want records or breakdown)", s)
	}
}

// Service handles the export of expenses to CSV.
type Service struct {
	expenses *expense.Service
}

// NewService creates a new export Service.
func NewService(expenses *expense.Service) *Service {
	return &Service{expenses: expenses}
}

// Rows builds the table of the given kind from the expenses matching the filter.
func (s *Service) Rows(ctx context.Context, filter expense.ListFilter, kind Kind) ([][]string, error) {
	records := s.expenses.List(ctx, filter)

	switch kind {
	case KindRecords:
		return RecordRows(records), nil
	case KindBreakdown:
		return BreakdownRows(report.Breakdown(records)), nil
	default:
		return nil, fmt.Errorf("unknown export kind %q", kind)
	}
}

// Export writes the table to path, or to stdout when path is "-".
func (s *Service) Export(ctx context.Context, filter expense.ListFilter, kind Kind, path string, stdout io.Writer) error {
	rows, err := s.Rows(ctx, filter, kind)
	if err != nil {
		return err
	}

	if path == "-" {
		return WriteCSV(stdout, rows)
	}

	return s.WriteFile(path, rows)
}

// WriteFile replaces path with the CSV rows, so readers never see a partial file.
func (s *Service) WriteFile(path string, rows [][]string) error {
	return fsutil.WriteAtomic(path, func(w io.Writer) error {
		return WriteCSV(w, rows)
	})
}

// Text renders a plain listing of the records, one per line.
func (s *Service) Text(records []expense.Expense) string {
	var sb strings.Builder

	var total int64

	for _, e := range records {
		line := fmt.Sprintf("* #%d | %s | %s | %s", e.ID, expense.FormatDate(e.Date), e.Category, expense.FormatAmount(e.Amount))
		if e.Note != "" {
			line += " | " + e.Note
		}

		sb.WriteString(line + "\n")

		total += e.Amount
	}

	fmt.Fprintf(&sb, "%d entries, total %s\n", len(records), expense.FormatAmount(total))

	return sb.String()
}
