package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	enc "github.com/MrJamesThe3rd/spendlog/internal/encoding"
	"github.com/MrJamesThe3rd/spendlog/internal/expense"
)

// CSVParser reads records exports and similar spreadsheets. It detects the
// charset, the delimiter (comma or semicolon) and the column layout.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(r io.Reader) ([]expense.Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)
	comma := sniffDelimiter(br)

	slog.Debug("parsing csv import", "charset", utf8r.Charset, "delimiter", string(comma))

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	profile, cols, err := detectProfile(header)
	if err != nil {
		return nil, err
	}

	var rows []expense.Row

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		row := expense.Row{
			ID:       cellValue(rec, cols.id),
			Date:     cellValue(rec, cols.date),
			Category: cellValue(rec, cols.category),
			Amount:   cellValue(rec, cols.amount),
			Note:     cellValue(rec, cols.note),
		}

		if profile.DayFirst {
			row.Date = isoDate(row.Date)
		}

		if comma == ';' {
			if row.Amount, err = europeanAmount(row.Amount); err != nil {
				return nil, fmt.Errorf("row %d: %w", len(rows)+1, err)
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// detectProfile matches the header against the known layouts.
func detectProfile(header []string) (*Profile, columns, error) {
	names := make(map[string]int, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, dup := names[name]; name != "" && !dup {
			names[name] = i
		}
	}

	for i := range profiles {
		if cols, ok := profiles[i].match(names); ok {
			return &profiles[i], cols, nil
		}
	}

	return nil, columns{}, fmt.Errorf("%w: need date, category and amount columns, got %v", ErrNoHeader, header)
}

// sniffDelimiter picks ';' when the first line has more semicolons than commas.
func sniffDelimiter(br *bufio.Reader) rune {
	buf, _ := br.Peek(br.Size())

	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		buf = buf[:i]
	}

	if bytes.Count(buf, []byte{';'}) > bytes.Count(buf, []byte{','}) {
		return ';'
	}

	return ','
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
