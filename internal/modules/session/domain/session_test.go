package domain_test

import (
	"testing"
	"time"

	"focusflow/internal/modules/session/domain"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.TimeOfDay{
		"09:30":    {Hour: 9, Minute: 30},
		"23:30:15": {Hour: 23, Minute: 30, Second: 15},
		"3:05 PM":  {Hour: 15, Minute: 5},
	}
	for raw, want := range cases {
		got, err := domain.ParseTimeOfDay(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q = %+v, want %+v", raw, got, want)
		}
	}
	if _, err := domain.ParseTimeOfDay("25:99"); err == nil {
		t.Fatalf("out of range time should fail")
	}
	if got := (domain.TimeOfDay{Hour: 7, Minute: 5}).String(); got != "07:05:00" {
		t.Fatalf("unexpected format %s", got)
	}
}

func TestFinishComputesHoursAcrossMidnight(t *testing.T) {
	t.Parallel()
	planned := domain.TimeOfDay{Hour: 1}
	active := domain.ActiveSession{
		ID:             "a-1",
		Subject:        "DSA",
		Topic:          "Graphs",
		StartedAt:      time.Date(2024, 1, 3, 23, 30, 0, 0, time.UTC),
		PlannedEndTime: &planned,
		StartMood:      "Calm",
	}
	s := active.Finish(time.Date(2024, 1, 4, 0, 45, 30, 500, time.UTC), "Tired", 8, "late night")
	if !s.Date.Equal(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date should be the start date, got %s", s.Date)
	}
	if s.Hours != 1.26 {
		t.Fatalf("expected 1.26 hours, got %v", s.Hours)
	}
	if s.StartTime.String() != "23:30:00" || s.EndTime.String() != "00:45:30" {
		t.Fatalf("unexpected times %s-%s", s.StartTime, s.EndTime)
	}
	if s.PlannedEndTime == nil || *s.PlannedEndTime != planned {
		t.Fatalf("planned end should carry over")
	}
	if s.StartMood != "Calm" || s.EndMood != "Tired" || s.Productivity != 8 || s.Notes != "late night" {
		t.Fatalf("unexpected session %+v", s)
	}
	if s.Timestamp.Nanosecond() != 0 {
		t.Fatalf("timestamp should be truncated to seconds")
	}
}

func TestFinishNeverNegative(t *testing.T) {
	t.Parallel()
	active := domain.ActiveSession{ID: "a", StartedAt: time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)}
	s := active.Finish(time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), "", 5, "")
	if s.Hours != 0 {
		t.Fatalf("expected zero hours for clock skew, got %v", s.Hours)
	}
	if !(domain.ActiveSession{}).IsZero() || active.IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}
