package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	analyticsdto "focusflow/internal/modules/analytics/dto"
	"focusflow/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Dashboard(ctx context.Context, today time.Time) (analyticsdto.DashboardOutput, error)
	ExportReport(ctx context.Context, today time.Time) (analyticsdto.ReportOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Dashboard analyticsdto.DashboardOutput
	Err       error
}

// ReportExportedMsg bubbles up to the app for the status bar.
type ReportExportedMsg struct {
	Report analyticsdto.ReportOutput
	Err    error
}

const (
	barWidth  = 28
	dailyDays = 14
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	data    analyticsdto.DashboardOutput
	err     error
	content viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, content: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.content.Width = msg.Width
		m.content.Height = msg.Height
		m.content.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.Dashboard
		}
		m.content.SetContent(m.render())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			cmds = append(cmds, m.Reload())
		case "e":
			cmds = append(cmds, m.ExportReport())
		}
	}

	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading study log…")
	}
	return m.content.View()
}

// Reload fetches the dashboard for the current day.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("analytics not configured")}
		}
		d, err := m.port.Dashboard(context.Background(), time.Time{})
		return LoadedMsg{Dashboard: d, Err: err}
	}
}

func (m Model) ExportReport() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return ReportExportedMsg{Err: fmt.Errorf("analytics not configured")}
		}
		out, err := m.port.ExportReport(context.Background(), time.Time{})
		return ReportExportedMsg{Report: out, Err: err}
	}
}

// ─── rendering ───────────────────────────────────────────────────────────────

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("dashboard: " + m.err.Error())
	}
	d := m.data
	if d.Sessions == 0 {
		return theme.Title.Render("Dashboard") + "\n\n" +
			theme.Muted.Render("No sessions logged yet. Start one on the Timer tab or run `focusflow log`.")
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Dashboard") + theme.Muted.Render("  as of "+d.Today.Format("Mon 2 Jan 2006")) + "\n\n")

	peak := "n/a"
	if d.PeakHour != nil {
		peak = fmt.Sprintf("%02d:00", *d.PeakHour)
	}
	stats := []string{
		stat("Total", hours(d.TotalHours)),
		stat("Sessions", humanize.Comma(int64(d.Sessions))),
		stat("Last 7 days", hours(d.WeekHours)),
		stat("Streak", fmt.Sprintf("%d day(s)", d.Streak)),
		stat("Best subject", d.BestSubject),
		stat("Peak hour", peak),
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stats...) + "\n")

	if d.BestMood != "" {
		sb.WriteString(theme.Good.Render("You study best when starting "+d.BestMood) +
			theme.Muted.Render(" · least productive when "+d.WorstMood) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("Log sessions with at least two starting moods for a mood recommendation.") + "\n")
	}
	if d.Warnings > 0 {
		sb.WriteString(theme.Warn.Render(fmt.Sprintf("%d log row(s) were malformed and read leniently.", d.Warnings)) + "\n")
	}

	sb.WriteString("\n" + theme.Hot.Render("Subjects") + "\n")
	maxSubject := 0.0
	for _, s := range d.Subjects {
		maxSubject = max(maxSubject, s.Hours)
	}
	for _, s := range d.Subjects {
		sb.WriteString(fmt.Sprintf("%-14s %s %s %s\n", truncate(s.Subject, 14), bar(s.Hours, maxSubject),
			hours(s.Hours), theme.Muted.Render(humanize.FtoaWithDigits(s.Share*100, 1)+"%")))
	}

	sb.WriteString("\n" + theme.Hot.Render("Sessions by hour of day") + "\n")
	maxHour := 0
	for _, n := range d.Hourly {
		maxHour = max(maxHour, n)
	}
	if maxHour == 0 {
		sb.WriteString(theme.Muted.Render("No sessions with start and end times.") + "\n")
	} else {
		for h, n := range d.Hourly {
			if n == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("%02d:00          %s %d\n", h, bar(float64(n), float64(maxHour)), n))
		}
	}

	sb.WriteString("\n" + theme.Hot.Render(fmt.Sprintf("Last %d study days", dailyDays)) + "\n")
	daily := d.Daily
	if len(daily) > dailyDays {
		daily = daily[len(daily)-dailyDays:]
	}
	maxDay := 0.0
	for _, day := range daily {
		maxDay = max(maxDay, day.Hours)
	}
	for _, day := range daily {
		sb.WriteString(fmt.Sprintf("%-14s %s %s\n", day.Date.Format("2006-01-02"), bar(day.Hours, maxDay), hours(day.Hours)))
	}
	if n := len(d.Cumulative); n > 0 {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("cumulative since %s: %s", d.Cumulative[0].Date.Format("2006-01-02"), hours(d.Cumulative[n-1].Hours))) + "\n")
	}

	sb.WriteString("\n" + theme.Hot.Render("Productivity by start hour") + "\n")
	for _, h := range d.ByHour {
		sb.WriteString(fmt.Sprintf("%02d:00          %s %.1f %s\n", h.Hour, bar(h.Mean, 10), h.Mean, theme.Muted.Render(fmt.Sprintf("(%d)", h.Sessions))))
	}

	sb.WriteString("\n" + theme.Hot.Render("Productivity by starting mood") + "\n")
	for _, md := range d.ByMood {
		sb.WriteString(fmt.Sprintf("%-14s %s %.1f %s\n", truncate(md.Mood, 14), bar(md.Mean, 10), md.Mean, theme.Muted.Render(fmt.Sprintf("(%d)", md.Sessions))))
	}

	sb.WriteString("\n" + theme.Muted.Render("r: refresh  e: export weekly report  ↑/↓: scroll"))
	return sb.String()
}

func stat(label, value string) string {
	return theme.Stat.Render(theme.Muted.Render(label) + "\n" + theme.Hot.Render(value))
}

func hours(h float64) string {
	return humanize.FtoaWithDigits(h, 2) + "h"
}

func bar(v, maxV float64) string {
	n := 0
	if maxV > 0 {
		n = int(v / maxV * barWidth)
	}
	if v > 0 && n == 0 {
		n = 1
	}
	return theme.Bar.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
