// Package importer reads expense rows back from exported or hand-made files.
package importer

import (
	"errors"
	"io"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

var (
	ErrNoHeader = errors.New("no recognised header")
	// ErrInvalidInput wraps every failure to read an import file.
	ErrInvalidInput = errors.New("invalid import file")
)

type Importer interface {
	Parse(r io.Reader) ([]expense.Row, error)
}
