package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goalout "focusflow/internal/modules/goal/adapter/out"
	"focusflow/internal/modules/goal/domain"
)

func TestCSVGoalStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "goals.csv")
	store := goalout.NewCSVGoalStore(path)
	ctx := context.Background()

	goals := []domain.Goal{{Subject: "Systems, Design", TargetHours: 4.5}, {Subject: "DSA", TargetHours: 0}}
	require.NoError(t, store.Save(ctx, goals))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, goals, loaded)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Subject,TargetHours\n\"Systems, Design\",4.5\nDSA,0\n", string(raw))
}

func TestCSVGoalStoreAbsentAndHeaderOnly(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	goals, err := goalout.NewCSVGoalStore(filepath.Join(dir, "missing.csv")).Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, goals)

	headerOnly := filepath.Join(dir, "goals.csv")
	require.NoError(t, os.WriteFile(headerOnly, []byte("Subject,TargetHours\n"), 0o644))
	goals, err = goalout.NewCSVGoalStore(headerOnly).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestCSVGoalStoreLenientTargets(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "goals.csv")
	require.NoError(t, os.WriteFile(path, []byte("TargetHours,Subject\nten,DSA\n-3,GATE\n5,\n7, DS \n"), 0o644))

	goals, err := goalout.NewCSVGoalStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Goal{
		{Subject: "DSA", TargetHours: 0},
		{Subject: "GATE", TargetHours: 0},
		{Subject: "DS", TargetHours: 7},
	}, goals)
}

func TestCSVGoalStoreRepeatedSubjectLastRowWins(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "goals.csv")
	require.NoError(t, os.WriteFile(path, []byte("Subject,TargetHours\nDSA,10\nGATE,12\nDSA,4\n"), 0o644))

	goals, err := goalout.NewCSVGoalStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Goal{
		{Subject: "DSA", TargetHours: 4},
		{Subject: "GATE", TargetHours: 12},
	}, goals)
	assert.Len(t, domain.ComputeProgress(goals, map[string]float64{"DSA": 2}), 2)
}
