package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names of the session log, in file order.
const (
	ColDate           = "Date"
	ColSubject        = "Subject"
	ColTopic          = "Topic"
	ColStartTime      = "Start Time"
	ColEndTime        = "End Time"
	ColPlannedEndTime = "Planned End Time"
	ColHours          = "Hours"
	ColProductivity   = "Productivity"
	ColStartMood      = "Start Mood"
	ColEndMood        = "End Mood"
	ColNotes          = "Notes"
	ColTimestamp      = "Timestamp"

	// ColLegacyMood is the single mood column written before start and end
	// moods were tracked separately. It is read as the start mood.
	ColLegacyMood = "Mood"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

var Header = []string{
	ColDate, ColSubject, ColTopic, ColStartTime, ColEndTime, ColPlannedEndTime,
	ColHours, ColProductivity, ColStartMood, ColEndMood, ColNotes, ColTimestamp,
}

// TimeOfDay is a wall clock reading without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "15:04", "15:04:05" and "3:04 PM".
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"15:04:05", "15:04", "3:04 PM", "3:04PM"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", raw)
}

func TimeOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Offset is the duration since midnight.
func (t TimeOfDay) Offset() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute + time.Duration(t.Second)*time.Second
}

// Session is one logged row. Hours is authoritative for every aggregate;
// the time fields are informational and may be nil in older logs.
type Session struct {
	Date           time.Time
	Subject        string
	Topic          string
	StartTime      *TimeOfDay
	EndTime        *TimeOfDay
	PlannedEndTime *TimeOfDay
	Hours          float64
	Productivity   int
	StartMood      string
	EndMood        string
	Notes          string
	Timestamp      time.Time
}

// Log is the parsed history plus counters for rows that needed lenient handling.
type Log struct {
	Sessions []Session
	// Defaulted counts kept rows where a malformed field fell back to absent or zero.
	Defaulted int
	// Skipped counts rows dropped entirely: negative hours, unreadable date or
	// an undecodable record.
	Skipped int
}

// ActiveSession is an in-progress session. It exists only in the caller's
// memory between Start and Stop.
type ActiveSession struct {
	ID             string
	Subject        string
	Topic          string
	StartedAt      time.Time
	PlannedEndTime *TimeOfDay
	StartMood      string
}

func (a ActiveSession) IsZero() bool {
	return a.ID == ""
}

// Finish closes the session at endedAt. Elapsed time is rounded to
// hundredths of an hour and never negative.
func (a ActiveSession) Finish(endedAt time.Time, endMood string, productivity int, notes string) Session {
	hours := endedAt.Sub(a.StartedAt).Hours()
	if hours < 0 {
		hours = 0
	}
	start := TimeOf(a.StartedAt)
	end := TimeOf(endedAt)
	y, m, d := a.StartedAt.Date()
	return Session{
		Date:           time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Subject:        a.Subject,
		Topic:          a.Topic,
		StartTime:      &start,
		EndTime:        &end,
		PlannedEndTime: a.PlannedEndTime,
		Hours:          math.Round(hours*100) / 100,
		Productivity:   productivity,
		StartMood:      a.StartMood,
		EndMood:        endMood,
		Notes:          notes,
		Timestamp:      endedAt.Truncate(time.Second),
	}
}

func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// Filter narrows an indexed session query. Zero values match everything.
type Filter struct {
	Subject string
	From    time.Time
	To      time.Time
	Limit   int
}
