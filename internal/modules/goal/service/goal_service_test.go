package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goalout "focusflow/internal/modules/goal/adapter/out"
	"focusflow/internal/modules/goal/domain"
	"focusflow/internal/modules/goal/service"
	"focusflow/internal/platform/clock"
	apperrors "focusflow/internal/platform/errors"
	"focusflow/internal/platform/logging"
)

type fakeActuals struct {
	totals  map[string]float64
	windows []string
	days    []time.Time
}

func (f *fakeActuals) BySubject(_ context.Context, today time.Time, window string) (map[string]float64, error) {
	f.windows = append(f.windows, window)
	f.days = append(f.days, today)
	return f.totals, nil
}

func newService(t *testing.T, actuals *fakeActuals) (*service.GoalService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goals.csv")
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	return service.NewGoalService(clock.Fixed(now), goalout.NewCSVGoalStore(path), actuals, logging.Discard()), path
}

func TestLoadGoalsPersistsDefaults(t *testing.T) {
	t.Parallel()
	svc, path := newService(t, &fakeActuals{})
	ctx := context.Background()

	goals, err := svc.LoadGoals(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoals(), goals)

	stored, err := goalout.NewCSVGoalStore(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoals(), stored)
}

func TestSaveGoalsRejectsInvalid(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, &fakeActuals{})
	ctx := context.Background()

	err := svc.SaveGoals(ctx, []domain.Goal{{Subject: "DSA", TargetHours: 1}, {Subject: " DSA ", TargetHours: 2}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	err = svc.SaveGoals(ctx, []domain.Goal{{Subject: "DSA", TargetHours: -2}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSetRemoveAndReset(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, &fakeActuals{})
	ctx := context.Background()

	goals, err := svc.SetGoal(ctx, domain.Goal{Subject: "Math", TargetHours: 3})
	require.NoError(t, err)
	require.Len(t, goals, 5)

	goals, err = svc.RemoveGoal(ctx, "GATE")
	require.NoError(t, err)
	require.Len(t, goals, 4)

	_, err = svc.RemoveGoal(ctx, "GATE")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	loaded, err := svc.LoadGoals(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Math", loaded[3].Subject)

	reset, err := svc.ResetToDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoals(), reset)
	loaded, err = svc.LoadGoals(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoals(), loaded)
}

func TestSavingEmptyGoalsFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, &fakeActuals{})
	ctx := context.Background()

	require.NoError(t, svc.SaveGoals(ctx, nil))
	goals, err := svc.LoadGoals(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoals(), goals)
}

func TestProgress(t *testing.T) {
	t.Parallel()
	actuals := &fakeActuals{totals: map[string]float64{"DSA": 12, "GATE": 3, "Other": 9}}
	svc, _ := newService(t, actuals)

	progress, err := svc.Progress(context.Background(), time.Time{}, "week")
	require.NoError(t, err)
	require.Len(t, progress, 4)
	assert.InDelta(t, 100.0, progress[0].Percent, 1e-9)
	assert.Zero(t, progress[1].Actual)
	assert.InDelta(t, 25.0, progress[3].Percent, 1e-9)
	assert.Equal(t, []string{"week"}, actuals.windows)
	assert.True(t, actuals.days[0].Equal(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)))
}
