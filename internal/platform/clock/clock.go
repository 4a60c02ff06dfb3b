package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall time; study dates and hours of day are
// meaningful only in the user's own time zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
