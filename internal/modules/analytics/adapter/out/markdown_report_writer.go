package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbroglie/mustache"
	"github.com/dustin/go-humanize"

	"focusflow/internal/modules/analytics/domain"
	analyticsout "focusflow/internal/modules/analytics/port/out"
	"focusflow/internal/platform/markdown"
	"focusflow/internal/platform/slug"
)

const (
	reportStart = "<!-- focusflow:report:start -->"
	reportEnd   = "<!-- focusflow:report:end -->"
	dateLayout  = "2006-01-02"
)

// DefaultReportTemplate renders the managed part of a weekly report.
const DefaultReportTemplate = `# Weekly study report: {{from}} to {{to}}

- Hours this week: {{week_hours}}
- Sessions this week: {{week_sessions}}
- Current streak: {{streak}} day(s)
- Best subject overall: {{{best_subject}}}
{{#peak_hour}}
- Peak productivity hour: {{peak_hour}}
{{/peak_hour}}

## Subjects this week

{{#subjects}}
- {{{subject}}}: {{hours}}h ({{share}}%)
{{/subjects}}
{{^subjects}}
No sessions logged this week.
{{/subjects}}

## Daily hours

{{#daily}}
- {{date}}: {{hours}}h
{{/daily}}

## Mood
{{#best_mood}}

Best starting mood: {{{best_mood}}}. Worst: {{{worst_mood}}}.
{{/best_mood}}
{{^best_mood}}

Not enough mood data for a recommendation.
{{/best_mood}}
`

type reportMeta struct {
	Type        string  `yaml:"type"`
	From        string  `yaml:"from"`
	To          string  `yaml:"to"`
	Generated   string  `yaml:"generated"`
	WeekHours   float64 `yaml:"week_hours"`
	TotalHours  float64 `yaml:"total_hours"`
	Streak      int     `yaml:"streak"`
	BestSubject string  `yaml:"best_subject"`
}

// MarkdownReportWriter renders reports into dir, one file per report end date.
// Text outside the managed block of an existing report is kept.
type MarkdownReportWriter struct {
	dir          string
	templatePath string
}

func NewMarkdownReportWriter(dir, templatePath string) analyticsout.ReportWriter {
	return &MarkdownReportWriter{dir: dir, templatePath: templatePath}
}

func (w *MarkdownReportWriter) Write(_ context.Context, report domain.Report) (string, error) {
	tmpl := DefaultReportTemplate
	if w.templatePath != "" {
		raw, err := os.ReadFile(w.templatePath)
		if err != nil {
			return "", fmt.Errorf("read report template: %w", err)
		}
		tmpl = string(raw)
	}
	generated, err := mustache.Render(tmpl, reportView(report))
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	name := slug.Make(report.To.Format(dateLayout)+" weekly report", "weekly-report") + ".md"
	path := filepath.Join(w.dir, name)

	body := ""
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		var old reportMeta
		if body, err = markdown.SplitFrontmatter(string(existing), &old); err != nil {
			return "", fmt.Errorf("parse existing report %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return "", fmt.Errorf("read existing report: %w", err)
	}
	body = markdown.ReplaceManagedBlock(body, reportStart, reportEnd, generated)

	content, err := markdown.RenderFrontmatter(reportMeta{
		Type:        "weekly-report",
		From:        report.From.Format(dateLayout),
		To:          report.To.Format(dateLayout),
		Generated:   report.Generated.Format("2006-01-02T15:04:05Z07:00"),
		WeekHours:   report.Week.TotalHours,
		TotalHours:  report.Overall.TotalHours,
		Streak:      report.Overall.Streak,
		BestSubject: report.Overall.BestSubject,
	}, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func reportView(report domain.Report) map[string]any {
	subjects := make([]map[string]any, 0, len(report.Week.Subjects))
	for _, s := range report.Week.Subjects {
		subjects = append(subjects, map[string]any{
			"subject": s.Subject,
			"hours":   hours(s.Hours),
			"share":   humanize.FtoaWithDigits(s.Share*100, 1),
		})
	}
	daily := make([]map[string]any, 0, len(report.Week.Daily))
	for _, d := range report.Week.Daily {
		daily = append(daily, map[string]any{"date": d.Date.Format(dateLayout), "hours": hours(d.Hours)})
	}
	peak := ""
	if report.Week.HasPeakHour {
		peak = fmt.Sprintf("%02d:00", report.Week.PeakHour)
	}
	best, worst := "", ""
	if report.Week.HasRecommend {
		best, worst = report.Week.Recommendation.Best, report.Week.Recommendation.Worst
	}
	return map[string]any{
		"from":          report.From.Format(dateLayout),
		"to":            report.To.Format(dateLayout),
		"generated":     report.Generated.Format("2006-01-02 15:04"),
		"week_hours":    hours(report.Week.TotalHours),
		"week_sessions": report.Week.Sessions,
		"total_hours":   hours(report.Overall.TotalHours),
		"streak":        report.Overall.Streak,
		"best_subject":  report.Overall.BestSubject,
		"peak_hour":     peak,
		"subjects":      subjects,
		"daily":         daily,
		"best_mood":     best,
		"worst_mood":    worst,
	}
}

func hours(h float64) string {
	return humanize.FtoaWithDigits(h, 2)
}
