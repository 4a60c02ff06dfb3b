package dates_test

import (
	"testing"
	"time"

	"focusflow/internal/platform/dates"
)

func TestParseFixedLayouts(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	want := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"2024-01-03", "2024-01-03 08:15:00", "2024/01/03", "01/03/2024"} {
		got, err := dates.Parse(input, now)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parse %q = %s, want %s", input, got, want)
		}
	}
}

func TestParseEmptyAndToday(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	for _, input := range []string{"", "today", " Today "} {
		got, err := dates.Parse(input, now)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if !got.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("parse %q = %s", input, got)
		}
	}
}

func TestParseNaturalLanguage(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	got, err := dates.Parse("yesterday", now)
	if err != nil {
		t.Fatalf("parse yesterday: %v", err)
	}
	if !got.Equal(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("yesterday = %s", got)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	t.Parallel()
	if _, err := dates.Parse("qwerty", time.Now()); err == nil {
		t.Fatalf("garbage date should fail")
	}
}

func TestDayDropsClockAndZone(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("IST", 5*3600+1800)
	got := dates.Day(time.Date(2024, 3, 1, 23, 59, 0, 0, loc))
	if !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day %s", got)
	}
}
