// Package format holds the shared display formatting used by responses and
// exports. Everything here is a pure function over its inputs.
package format

import (
	"strconv"
	"strings"
	"time"
)

const (
	inputLayout   = "2006-01-02"
	displayLayout = "02 Jan 2006"
)

// InputDate renders a timestamp as YYYY-MM-DD, the format the API accepts
// and the key used when bucketing expenses by day.
func InputDate(t time.Time) string {
	return t.Format(inputLayout)
}

// DisplayDate renders a timestamp the way the UI shows it, e.g. "05 Mar 2024".
func DisplayDate(t time.Time) string {
	return t.Format(displayLayout)
}

// ParseInputDate parses a YYYY-MM-DD string into a UTC midnight timestamp.
func ParseInputDate(s string) (time.Time, error) {
	return time.ParseInLocation(inputLayout, strings.TrimSpace(s), time.UTC)
}

// Amount renders a monetary amount with two decimals, e.g. "10.00".
func Amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// MonthRange returns the inclusive first and last day of a calendar month,
// both at UTC midnight.
func MonthRange(year, month int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return first, last
}

// DaysInMonth returns the number of calendar days in a month.
func DaysInMonth(year, month int) int {
	_, last := MonthRange(year, month)
	return last.Day()
}

// CSVField quotes a single CSV field. Every field is quoted regardless of
// content, with embedded quotes doubled.
func CSVField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// CSVLine joins fields into one CSV record with every field quoted.
func CSVLine(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = CSVField(f)
	}
	return strings.Join(quoted, ",")
}

// CSVDocument joins records into a document terminated by a newline.
func CSVDocument(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
