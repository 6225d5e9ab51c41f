package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/storage/jsonl"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatCSV:   NewCSVParser(),
			FormatJSONL: ImporterFunc(jsonl.Decode),
		},
	}
}

// ImporterFunc adapts a plain decode function to an Importer.
type ImporterFunc func(r io.Reader) ([]expense.Row, error)

func (f ImporterFunc) Parse(r io.Reader) ([]expense.Row, error) {
	return f(r)
}

func (s *Service) Import(format Format, r io.Reader) ([]expense.Row, error) {
	importer, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("%w: unknown import format: %s", ErrInvalidInput, format)
	}

	rows, err := importer.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return rows, nil
}

// FormatFor guesses the format from a file name, defaulting to CSV.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".json", ".txt":
		return FormatJSONL
	default:
		return FormatCSV
	}
}
