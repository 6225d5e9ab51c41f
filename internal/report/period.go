package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is an inclusive range of calendar days.
type Period struct {
	From time.Time
	To   time.Time
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && !t.After(p.To)
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.From.Format(time.DateOnly), p.To.Format(time.DateOnly))
}

func DayRange(from, to time.Time) Period {
	return Period{From: day(from), To: day(to)}
}

// MonthPeriod covers the first through the last day of the month.
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{From: start, To: start.AddDate(0, 1, -1)}
}

// WeekPeriod covers Monday through Sunday of the given ISO week.
func WeekPeriod(year, week int) Period {
	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)

	offset := int(jan4.Weekday())
	if offset == 0 {
		offset = 7
	}

	monday := jan4.AddDate(0, 0, 1-offset+(week-1)*7)

	return Period{From: monday, To: monday.AddDate(0, 0, 6)}
}

func YearPeriod(year int) Period {
	return Period{
		From: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// ParseMonth accepts a month number (1-12), an English month name or an
// unambiguous prefix of one ("jan", "Sept").
func ParseMonth(s string) (time.Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("invalid month: empty")
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("invalid month %d: must be between 1 and 12", n)
		}

		return time.Month(n), nil
	}

	var found time.Month

	for m := time.January; m <= time.December; m++ {
		if !strings.HasPrefix(strings.ToLower(m.String()), s) {
			continue
		}

		if found != 0 {
			return 0, fmt.Errorf("ambiguous month %q", s)
		}

		found = m
	}

	if found == 0 {
		return 0, fmt.Errorf("invalid month %q", s)
	}

	return found, nil
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
