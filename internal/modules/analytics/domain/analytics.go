package domain

import (
	"math"
	"sort"
	"time"
)

// NoData marks aggregates that are undefined for an empty history.
const NoData = "N/A"

// RollingWindowDays is the span of the "last week" totals, today included.
const RollingWindowDays = 7

// Session is the part of a logged session the aggregations read. Start and
// End are offsets from midnight and are nil when the log does not carry them.
type Session struct {
	Date         time.Time
	Subject      string
	Hours        float64
	Productivity int
	StartMood    string
	Start        *time.Duration
	End          *time.Duration
}

type DayTotal struct {
	Date  time.Time
	Hours float64
}

type SubjectTotal struct {
	Subject string
	Hours   float64
	// Share is the fraction of all logged hours, 0 when nothing was logged.
	Share float64
}

type HourProductivity struct {
	Hour     int
	Mean     float64
	Sessions int
}

type MoodProductivity struct {
	Mood     string
	Mean     float64
	Sessions int
}

type Recommendation struct {
	Best  string
	Worst string
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func validProductivity(p int) bool {
	return p >= 1 && p <= 10
}

func TotalHours(sessions []Session) float64 {
	total := 0.0
	for _, s := range sessions {
		total += s.Hours
	}
	return total
}

// DailyTotals sums hours per calendar date, ascending by date.
func DailyTotals(sessions []Session) []DayTotal {
	byDay := map[time.Time]float64{}
	for _, s := range sessions {
		byDay[day(s.Date)] += s.Hours
	}
	out := make([]DayTotal, 0, len(byDay))
	for d, h := range byDay {
		out = append(out, DayTotal{Date: d, Hours: h})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// CumulativeTotals is the running sum of DailyTotals.
func CumulativeTotals(sessions []Session) []DayTotal {
	out := DailyTotals(sessions)
	running := 0.0
	for i := range out {
		running += out[i].Hours
		out[i].Hours = running
	}
	return out
}

// HourlyDistribution counts, per hour of day, the sessions that overlap it.
// A session covers every whole hour from the floor of its start through its
// end instant. An end before the start crosses midnight.
func HourlyDistribution(sessions []Session) [24]int {
	var buckets [24]int
	for _, s := range sessions {
		if s.Start == nil || s.End == nil {
			continue
		}
		start, end := *s.Start, *s.End
		if end < start {
			end += 24 * time.Hour
		}
		for h := start.Truncate(time.Hour); h <= end; h += time.Hour {
			buckets[int(h/time.Hour)%24]++
		}
	}
	return buckets
}

// SubjectTotals sums hours per subject, sorted by subject.
func SubjectTotals(sessions []Session) []SubjectTotal {
	bySubject := map[string]float64{}
	total := 0.0
	for _, s := range sessions {
		bySubject[s.Subject] += s.Hours
		total += s.Hours
	}
	out := make([]SubjectTotal, 0, len(bySubject))
	for subject, hours := range bySubject {
		share := 0.0
		if total > 0 {
			share = hours / total
		}
		out = append(out, SubjectTotal{Subject: subject, Hours: hours, Share: share})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out
}

// BestSubject is the subject with the most hours, NoData when there are no
// sessions. Ties go to the alphabetically first subject.
func BestSubject(sessions []Session) string {
	best, bestHours := NoData, math.Inf(-1)
	for _, st := range SubjectTotals(sessions) {
		if st.Hours > bestHours {
			best, bestHours = st.Subject, st.Hours
		}
	}
	return best
}

// ProductivityByHour averages productivity per start hour, ascending by hour.
// Sessions without a start time or a 1..10 score are ignored.
func ProductivityByHour(sessions []Session) []HourProductivity {
	var sums, counts [24]int
	for _, s := range sessions {
		if s.Start == nil || !validProductivity(s.Productivity) {
			continue
		}
		h := int(*s.Start/time.Hour) % 24
		sums[h] += s.Productivity
		counts[h]++
	}
	out := []HourProductivity{}
	for h := 0; h < 24; h++ {
		if counts[h] == 0 {
			continue
		}
		out = append(out, HourProductivity{
			Hour:     h,
			Mean:     round1(float64(sums[h]) / float64(counts[h])),
			Sessions: counts[h],
		})
	}
	return out
}

// PeakHour returns the hour with the highest mean; the earliest wins ties.
func PeakHour(byHour []HourProductivity) (int, bool) {
	if len(byHour) == 0 {
		return 0, false
	}
	peak := byHour[0]
	for _, h := range byHour[1:] {
		if h.Mean > peak.Mean {
			peak = h
		}
	}
	return peak.Hour, true
}

// ProductivityByMood averages productivity per start mood, highest first.
// Equal means are ordered by mood name.
func ProductivityByMood(sessions []Session) []MoodProductivity {
	sums := map[string]int{}
	counts := map[string]int{}
	for _, s := range sessions {
		if s.StartMood == "" || !validProductivity(s.Productivity) {
			continue
		}
		sums[s.StartMood] += s.Productivity
		counts[s.StartMood]++
	}
	out := make([]MoodProductivity, 0, len(counts))
	for mood, n := range counts {
		out = append(out, MoodProductivity{Mood: mood, Mean: round1(float64(sums[mood]) / float64(n)), Sessions: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Mood < out[j].Mood
	})
	return out
}

// Recommend picks the best and worst moods. It needs at least two groups.
func Recommend(byMood []MoodProductivity) (Recommendation, bool) {
	if len(byMood) < 2 {
		return Recommendation{}, false
	}
	return Recommendation{Best: byMood[0].Mood, Worst: byMood[len(byMood)-1].Mood}, true
}

// Streak counts consecutive study days ending today. It is 0 when today has
// no session.
func Streak(sessions []Session, today time.Time) int {
	studied := map[time.Time]bool{}
	for _, s := range sessions {
		studied[day(s.Date)] = true
	}
	streak := 0
	for d := day(today); studied[d]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// RollingTotal sums hours dated within the last days calendar days,
// today included.
func RollingTotal(sessions []Session, today time.Time, days int) float64 {
	return TotalHours(Within(sessions, today, days))
}

// Within keeps the sessions dated in the rolling window ending today.
func Within(sessions []Session, today time.Time, days int) []Session {
	end := day(today)
	start := end.AddDate(0, 0, -(days - 1))
	out := []Session{}
	for _, s := range sessions {
		if d := day(s.Date); !d.Before(start) && !d.After(end) {
			out = append(out, s)
		}
	}
	return out
}
