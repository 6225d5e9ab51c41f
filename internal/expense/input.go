package expense

import (
	"strings"
	"time"
)

// ResolveDate turns the relative words "today" and "yesterday" into a
// YYYY-MM-DD date relative to now. Other input is returned unchanged.
func ResolveDate(s string, now time.Time) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return now.Format(time.DateOnly)
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(time.DateOnly)
	default:
		return s
	}
}
