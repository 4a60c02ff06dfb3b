package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsout "focusflow/internal/modules/analytics/adapter/out"
	"focusflow/internal/modules/analytics/domain"
	"focusflow/internal/platform/markdown"
)

func sampleReport() domain.Report {
	today := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	start := 9 * time.Hour
	end := 11 * time.Hour
	sessions := []domain.Session{
		{Date: today, Subject: "DSA", Hours: 2, Productivity: 8, StartMood: "Calm", Start: &start, End: &end},
		{Date: today.AddDate(0, 0, -1), Subject: "GATE", Hours: 1.25, Productivity: 5, StartMood: "Tired"},
	}
	return domain.BuildReport(sessions, today, time.Date(2024, 6, 14, 20, 0, 0, 0, time.UTC))
}

func TestMarkdownReportWriterDefaultTemplate(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "reports")
	writer := analyticsout.NewMarkdownReportWriter(dir, "")

	path, err := writer.Write(context.Background(), sampleReport())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-06-14-weekly-report.md"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var meta map[string]any
	body, err := markdown.SplitFrontmatter(string(raw), &meta)
	require.NoError(t, err)
	assert.Equal(t, "weekly-report", meta["type"])
	assert.Equal(t, "2024-06-08", meta["from"])
	assert.Equal(t, "DSA", meta["best_subject"])

	assert.Contains(t, body, "# Weekly study report: 2024-06-08 to 2024-06-14")
	assert.Contains(t, body, "- Hours this week: 3.25")
	assert.Contains(t, body, "- DSA: 2h")
	assert.Contains(t, body, "- Peak productivity hour: 09:00")
	assert.Contains(t, body, "Best starting mood: Calm. Worst: Tired.")
}

func TestMarkdownReportWriterKeepsNotesOutsideBlock(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writer := analyticsout.NewMarkdownReportWriter(dir, "")
	ctx := context.Background()

	path, err := writer.Write(ctx, sampleReport())
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(raw, []byte("\nMy reflections for the week.\n")...), 0o644))

	_, err = writer.Write(ctx, sampleReport())
	require.NoError(t, err)
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "My reflections for the week.")
	assert.Equal(t, 1, strings.Count(content, "# Weekly study report"))
	assert.Equal(t, 2, strings.Count(content, "---\n"))
}

func TestMarkdownReportWriterCustomTemplate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "template.mustache")
	require.NoError(t, os.WriteFile(tmpl, []byte("{{week_hours}} hours, streak {{streak}}{{#subjects}} [{{{subject}}}]{{/subjects}}\n"), 0o644))

	path, err := analyticsout.NewMarkdownReportWriter(dir, tmpl).Write(context.Background(), sampleReport())
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "3.25 hours, streak 2 [DSA] [GATE]")
}

func TestMarkdownReportWriterMissingTemplate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := analyticsout.NewMarkdownReportWriter(dir, filepath.Join(dir, "missing.mustache")).Write(context.Background(), sampleReport())
	assert.Error(t, err)
}

func TestMarkdownReportWriterEmptyHistory(t *testing.T) {
	t.Parallel()
	today := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	path, err := analyticsout.NewMarkdownReportWriter(t.TempDir(), "").Write(context.Background(), domain.BuildReport(nil, today, today))
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "No sessions logged this week.")
	assert.Contains(t, string(raw), "Not enough mood data for a recommendation.")
	assert.Contains(t, string(raw), "Best subject overall: N/A")
}
