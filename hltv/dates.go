package hltv

import (
	"fmt"
	"strings"
	"time"
)

var monthNumbers = map[string]string{
	"Jan": "1", "Feb": "2", "Mar": "3", "Apr": "4",
	"May": "5", "Jun": "6", "Jul": "7", "Aug": "8",
	"Sep": "9", "Oct": "10", "Nov": "11", "Dec": "12",
}

// normalizeDate converts ["Apr", "4th"] into "4-4". The day part drops its
// ordinal suffix.
func normalizeDate(parts []string) (string, bool) {
	if len(parts) < 2 {
		return "", false
	}
	month, ok := monthNumbers[parts[0]]
	if !ok {
		return "", false
	}
	day := parts[1]
	if len(day) > 2 {
		day = day[:len(day)-2]
	}
	return day + "-" + month, true
}

// rankingPath returns the date path of the most recent ranking update,
// published every Monday: "2024/april/01".
func rankingPath(now time.Time) string {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -daysSinceMonday)
	return fmt.Sprintf("%d/%s/%02d",
		monday.Year(), strings.ToLower(monday.Month().String()), monday.Day())
}
