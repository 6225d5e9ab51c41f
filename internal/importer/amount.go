package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
)

// europeanAmount rewrites "1.234,56" as "1234.56". A value whose last
// separator is a point is only accepted when it has no comma, since "1,234.56"
// cannot be read as a decimal comma amount.
func europeanAmount(s string) (string, error) {
	comma := strings.LastIndex(s, ",")
	if comma < 0 {
		return s, nil
	}

	if strings.LastIndex(s, ".") > comma {
		return "", fmt.Errorf("%w: %q mixes separators in a semicolon separated file", expense.ErrInvalidAmount, s)
	}

	clean := strings.ReplaceAll(s, ".", "")

	return strings.ReplaceAll(clean, ",", "."), nil
}

// isoDate rewrites day-first dates ("30-01-2026", "30/01/2026") as YYYY-MM-DD.
// Anything else is returned unchanged for the validator to judge.
func isoDate(s string) string {
	for _, layout := range []string{"02-01-2006", "02/01/2006", "02.01.2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly)
		}
	}

	return s
}
