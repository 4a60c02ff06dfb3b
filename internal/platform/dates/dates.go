package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

const Layout = "2006-01-02"

var layouts = []string{
	Layout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// Day truncates t to midnight UTC of its calendar date. Calendar dates are
// compared as UTC midnights throughout the module.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse resolves a user supplied date such as "2024-01-03", "today" or
// "last friday" relative to now. An empty input means today.
func Parse(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "today") {
		return Day(now), nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, input); err == nil {
			return Day(t), nil
		}
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	result, err := w.Parse(input, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", input, err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q", input)
	}
	return Day(result.Time), nil
}
