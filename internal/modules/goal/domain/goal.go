package domain

import (
	"fmt"
	"strings"
)

const (
	ColSubject     = "Subject"
	ColTargetHours = "TargetHours"
)

var Header = []string{ColSubject, ColTargetHours}

type Goal struct {
	Subject     string
	TargetHours float64
}

// DefaultGoals is the built-in weekly target set, in display order.
func DefaultGoals() []Goal {
	return []Goal{
		{Subject: "DSA", TargetHours: 10},
		{Subject: "Development", TargetHours: 8},
		{Subject: "DS", TargetHours: 6},
		{Subject: "GATE", TargetHours: 12},
	}
}

type Progress struct {
	Subject string
	Target  float64
	Actual  float64
	// Percent is Actual/Target as a percentage, capped at 100. A zero target
	// gives 0.
	Percent float64
}

// ComputeProgress pairs every goal with its logged hours. Subjects without
// hours count as 0; logged subjects without a goal are left out.
func ComputeProgress(goals []Goal, actuals map[string]float64) []Progress {
	out := make([]Progress, 0, len(goals))
	for _, g := range goals {
		actual := actuals[g.Subject]
		percent := 0.0
		if g.TargetHours > 0 {
			percent = actual / g.TargetHours * 100
		}
		if percent > 100 {
			percent = 100
		}
		if percent < 0 {
			percent = 0
		}
		out = append(out, Progress{Subject: g.Subject, Target: g.TargetHours, Actual: actual, Percent: percent})
	}
	return out
}

func Validate(goals []Goal) error {
	seen := map[string]bool{}
	for _, g := range goals {
		subject := strings.TrimSpace(g.Subject)
		if subject == "" {
			return fmt.Errorf("goal subject is required")
		}
		if g.TargetHours < 0 {
			return fmt.Errorf("target for %s must not be negative", subject)
		}
		if seen[subject] {
			return fmt.Errorf("duplicate goal for %s", subject)
		}
		seen[subject] = true
	}
	return nil
}

// Upsert replaces the target of an existing subject or appends a new goal.
func Upsert(goals []Goal, goal Goal) []Goal {
	out := append([]Goal(nil), goals...)
	for i := range out {
		if out[i].Subject == goal.Subject {
			out[i].TargetHours = goal.TargetHours
			return out
		}
	}
	return append(out, goal)
}

// Remove drops the goal for subject and reports whether it existed.
func Remove(goals []Goal, subject string) ([]Goal, bool) {
	out := make([]Goal, 0, len(goals))
	found := false
	for _, g := range goals {
		if g.Subject == subject {
			found = true
			continue
		}
		out = append(out, g)
	}
	return out, found
}
