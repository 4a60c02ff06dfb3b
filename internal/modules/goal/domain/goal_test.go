package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusflow/internal/modules/goal/domain"
)

func TestComputeProgress(t *testing.T) {
	t.Parallel()
	goals := []domain.Goal{
		{Subject: "DSA", TargetHours: 10},
		{Subject: "Dev", TargetHours: 0},
		{Subject: "GATE", TargetHours: 10},
		{Subject: "DS", TargetHours: 8},
	}
	actuals := map[string]float64{"DSA": 12, "Dev": 5, "DS": 2, "Unplanned": 4}

	progress := domain.ComputeProgress(goals, actuals)
	require.Len(t, progress, 4)

	assert.Equal(t, "DSA", progress[0].Subject)
	assert.InDelta(t, 100.0, progress[0].Percent, 1e-9)
	assert.InDelta(t, 12.0, progress[0].Actual, 1e-9)

	assert.Zero(t, progress[1].Percent)
	assert.InDelta(t, 5.0, progress[1].Actual, 1e-9)

	assert.Zero(t, progress[2].Actual)
	assert.Zero(t, progress[2].Percent)

	assert.InDelta(t, 25.0, progress[3].Percent, 1e-9)
}

func TestComputeProgressNoGoals(t *testing.T) {
	t.Parallel()
	assert.Empty(t, domain.ComputeProgress(nil, map[string]float64{"DSA": 1}))
}

func TestDefaultGoals(t *testing.T) {
	t.Parallel()
	goals := domain.DefaultGoals()
	assert.Equal(t, []domain.Goal{
		{Subject: "DSA", TargetHours: 10},
		{Subject: "Development", TargetHours: 8},
		{Subject: "DS", TargetHours: 6},
		{Subject: "GATE", TargetHours: 12},
	}, goals)

	goals[0].TargetHours = 99
	assert.InDelta(t, 10.0, domain.DefaultGoals()[0].TargetHours, 1e-9)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		goals []domain.Goal
		ok    bool
	}{
		{name: "defaults", goals: domain.DefaultGoals(), ok: true},
		{name: "empty", goals: nil, ok: true},
		{name: "zero target", goals: []domain.Goal{{Subject: "DSA"}}, ok: true},
		{name: "negative", goals: []domain.Goal{{Subject: "DSA", TargetHours: -1}}},
		{name: "duplicate", goals: []domain.Goal{{Subject: "DSA", TargetHours: 1}, {Subject: "DSA", TargetHours: 2}}},
		{name: "blank subject", goals: []domain.Goal{{Subject: "  ", TargetHours: 1}}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := domain.Validate(tc.goals)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUpsertAndRemove(t *testing.T) {
	t.Parallel()
	goals := domain.Upsert(domain.DefaultGoals(), domain.Goal{Subject: "DS", TargetHours: 9})
	require.Len(t, goals, 4)
	assert.InDelta(t, 9.0, goals[2].TargetHours, 1e-9)

	goals = domain.Upsert(goals, domain.Goal{Subject: "Math", TargetHours: 3})
	require.Len(t, goals, 5)
	assert.Equal(t, "Math", goals[4].Subject)

	goals, found := domain.Remove(goals, "DSA")
	assert.True(t, found)
	assert.Len(t, goals, 4)
	_, found = domain.Remove(goals, "DSA")
	assert.False(t, found)
}
